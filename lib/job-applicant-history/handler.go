package jobapplicanthistoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	jobapplicanthistorystore "recruitment-backend/lib/job-applicant-history/store"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
	dbmodels "recruitment-backend/models/db"
)

const systemUserName = "Система"

type Provider interface {
	List(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) ([]jobapplicantapimodels.HistoryView, int64, error)
	// SaveTx пишет историю в транзакции изменения кандидата
	SaveTx(tx *gorm.DB, jobApplicantID, userID string, action dbmodels.ActionType, changes dbmodels.ApplicantChanges) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: jobapplicanthistorystore.NewInstance(DB),
	}
}

type impl struct {
	store jobapplicanthistorystore.Provider
}

func (i impl) List(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) ([]jobapplicantapimodels.HistoryView, int64, error) {
	rowCount, err := i.store.ListCount(jobApplicantID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []jobapplicantapimodels.HistoryView{}, rowCount, nil
	}

	list, err := i.store.List(jobApplicantID, filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка действий")
		return nil, 0, errors.New("ошибка получения списка действий")
	}
	result := make([]jobapplicantapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapplicantapimodels.HistoryConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) SaveTx(tx *gorm.DB, jobApplicantID, userID string, action dbmodels.ActionType, changes dbmodels.ApplicantChanges) error {
	rec := dbmodels.JobApplicantHistory{
		JobApplicantID: jobApplicantID,
		ActionType:     action,
		Changes:        changes,
		UserName:       systemUserName,
	}
	if userID != "" {
		rec.UserID = &userID
		rec.UserName = userID
	}
	_, err := jobapplicanthistorystore.NewInstance(tx).Create(rec)
	if err != nil {
		log.
			WithField("job_applicant_id", jobApplicantID).
			WithField("action", action).
			WithError(err).
			Error("ошибка сохранения истории действий по кандидату")
		return errors.Wrap(err, "ошибка сохранения истории действий по кандидату")
	}
	return nil
}

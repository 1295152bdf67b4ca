package jobapplicanthistorystore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.JobApplicantHistory) (id string, err error)
	ListCount(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) (count int64, err error)
	List(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) (list []dbmodels.JobApplicantHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobApplicantHistory) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListCount(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.JobApplicantHistory{}).
		Where("job_applicant_id = ?", jobApplicantID)
	if filter.ActionType != "" {
		tx = tx.Where("action_type = ?", filter.ActionType)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества действий по кандидату")
		return 0, errors.New("ошибка получения общего количества действий по кандидату")
	}
	return rowCount, nil
}

func (i impl) List(jobApplicantID string, filter jobapplicantapimodels.HistoryFilter) (list []dbmodels.JobApplicantHistory, err error) {
	list = []dbmodels.JobApplicantHistory{}
	tx := i.db.
		Model(dbmodels.JobApplicantHistory{}).
		Where("job_applicant_id = ?", jobApplicantID)
	if filter.ActionType != "" {
		tx = tx.Where("action_type = ?", filter.ActionType)
	}
	page, limit := filter.GetPage()
	tx = i.setPage(tx, page, limit)
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) setPage(tx *gorm.DB, page, limit int) *gorm.DB {
	offset := (page - 1) * limit
	return tx.Limit(limit).Offset(offset)
}

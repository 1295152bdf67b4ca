package interviewstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Interview) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Interview, error)
	List(filter dbmodels.InterviewFilter) ([]dbmodels.Interview, error)
	// HasActiveRound у кандидата есть неотмененное собеседование с тем же раундом
	HasActiveRound(jobApplicantID, interviewRoundID string) (bool, error)
	// HasInternalPass у кандидата есть неотмененное внутреннее собеседование с результатом Pass
	HasInternalPass(jobApplicantID string) (bool, error)
	// HasEmployerFail у кандидата есть другое собеседование с работодателем с результатом Fail
	HasEmployerFail(jobApplicantID, excludeID string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Interview) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Preload("InterviewRound").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dbmodels.InterviewFilter) ([]dbmodels.Interview, error) {
	list := []dbmodels.Interview{}
	tx := i.db.
		Model(&dbmodels.Interview{})
	if filter.JobApplicantID != "" {
		tx = tx.Where("job_applicant_id = ?", filter.JobApplicantID)
	}
	if filter.InterviewRoundID != "" {
		tx = tx.Where("interview_round_id = ?", filter.InterviewRoundID)
	}
	if filter.Level != "" {
		tx = tx.Where("interview_level = ?", filter.Level)
	}
	if filter.Result != "" {
		tx = tx.Where("result = ?", filter.Result)
	}
	if !filter.WithCancelled {
		tx = tx.Where("is_cancelled = ?", false)
	}
	err := tx.
		Preload("InterviewRound").
		Order("interview_date, created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) HasActiveRound(jobApplicantID, interviewRoundID string) (bool, error) {
	return i.exists(i.db.
		Where("job_applicant_id = ?", jobApplicantID).
		Where("interview_round_id = ?", interviewRoundID).
		Where("is_cancelled = ?", false))
}

func (i impl) HasInternalPass(jobApplicantID string) (bool, error) {
	return i.exists(i.db.
		Where("job_applicant_id = ?", jobApplicantID).
		Where("interview_level in ?", []models.InterviewLevel{models.InterviewLevelInternalHR, models.InterviewLevelInternalTechnical}).
		Where("result = ?", models.InterviewResultPass).
		Where("is_cancelled = ?", false))
}

func (i impl) HasEmployerFail(jobApplicantID, excludeID string) (bool, error) {
	return i.exists(i.db.
		Where("job_applicant_id = ?", jobApplicantID).
		Where("id <> ?", excludeID).
		Where("interview_level = ?", models.InterviewLevelEmployer).
		Where("result = ?", models.InterviewResultFail).
		Where("is_cancelled = ?", false))
}

func (i impl) exists(tx *gorm.DB) (bool, error) {
	var rowCount int64
	err := tx.
		Model(&dbmodels.Interview{}).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

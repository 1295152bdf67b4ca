package visaprocessstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.VisaProcess) (id string, err error)
	GetByID(id string) (*dbmodels.VisaProcess, error)
	GetByJobApplicantID(jobApplicantID string) (*dbmodels.VisaProcess, error)
	Update(id string, updMap map[string]interface{}) error
	AddStageRecord(rec dbmodels.VisaStageRecord) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.VisaProcess) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.VisaProcess, error) {
	return i.get(i.db.Where("id = ?", id))
}

func (i impl) GetByJobApplicantID(jobApplicantID string) (*dbmodels.VisaProcess, error) {
	return i.get(i.db.Where("job_applicant_id = ?", jobApplicantID))
}

func (i impl) get(tx *gorm.DB) (*dbmodels.VisaProcess, error) {
	rec := dbmodels.VisaProcess{}
	err := tx.
		Preload("CurrentStage").
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("stage_date, created_at")
		}).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.VisaProcess{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) AddStageRecord(rec dbmodels.VisaStageRecord) error {
	return i.db.
		Create(&rec).
		Error
}

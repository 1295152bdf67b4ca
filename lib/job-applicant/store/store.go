package jobapplicantstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.JobApplicant) (id string, err error)
	GetByID(id string) (*dbmodels.JobApplicant, error)
	GetByIDs(ids []string) ([]dbmodels.JobApplicant, error)
	// UpdateVersioned обновляет запись, только если версия не изменилась с момента чтения
	UpdateVersioned(id string, version int, updMap map[string]interface{}) error
	// Touch поднимает версию без изменения данных: параллельная проверка-и-запись по тому же кандидату получит конфликт
	Touch(id string, version int) error
	List(filter dbmodels.JobApplicantFilter) ([]dbmodels.JobApplicant, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobApplicant) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.JobApplicant, error) {
	rec := dbmodels.JobApplicant{}
	err := i.db.
		Model(&dbmodels.JobApplicant{}).
		Where("id = ?", id).
		Preload("Applicant").
		Preload("Applicant.Documents").
		Preload("CurrentStage").
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

func (i impl) GetByIDs(ids []string) ([]dbmodels.JobApplicant, error) {
	list := []dbmodels.JobApplicant{}
	if len(ids) == 0 {
		return list, nil
	}
	err := i.db.
		Where("id in ?", ids).
		Preload("Applicant").
		Preload("CurrentStage").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateVersioned(id string, version int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(updMap)+1)
	for k, v := range updMap {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.JobApplicant{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(values)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected != 0 {
		return nil
	}
	var exists bool
	err := i.db.
		Model(&dbmodels.JobApplicant{}).
		Select("count(*) > 0").
		Where("id = ?", id).
		Find(&exists).
		Error
	if err != nil {
		return err
	}
	if !exists {
		return models.NewErrNotFound("кандидат", id)
	}
	return models.NewErrConcurrencyConflict("кандидат", id)
}

func (i impl) Touch(id string, version int) error {
	return i.UpdateVersioned(id, version, map[string]interface{}{
		"updated_at": time.Now(),
	})
}

func (i impl) List(filter dbmodels.JobApplicantFilter) ([]dbmodels.JobApplicant, error) {
	list := []dbmodels.JobApplicant{}
	tx := i.db.
		Model(&dbmodels.JobApplicant{})
	if filter.ApplicantID != "" {
		tx = tx.Where("job_applicants.applicant_id = ?", filter.ApplicantID)
	}
	if filter.DemandID != "" {
		tx = tx.Where("job_applicants.demand_id = ?", filter.DemandID)
	}
	if filter.DemandPosition != "" {
		tx = tx.Where("job_applicants.demand_position = ?", filter.DemandPosition)
	}
	if filter.Pipeline != "" {
		tx = tx.Where("job_applicants.pipeline = ?", filter.Pipeline)
	}
	if len(filter.IDs) != 0 {
		tx = tx.Where("job_applicants.id in ?", filter.IDs)
	}
	if filter.StageName != "" {
		tx = tx.
			Joins("join pipeline_stages as ps on ps.id = job_applicants.current_stage_id").
			Where("ps.stage_name = ?", filter.StageName)
	}
	err := tx.
		Preload("Applicant").
		Preload("CurrentStage").
		Order("job_applicants.created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

package pipelinestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	CreatePipeline(rec dbmodels.Pipeline) error
	GetPipeline(name string) (*dbmodels.Pipeline, error)
	ListPipelines() ([]dbmodels.Pipeline, error)
	CreateStage(rec dbmodels.PipelineStage) (id string, err error)
	GetStageByID(id string) (*dbmodels.PipelineStage, error)
	GetStageByName(pipelineName, stageName string) (*dbmodels.PipelineStage, error)
	ListStages(pipelineName string) ([]dbmodels.PipelineStage, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreatePipeline(rec dbmodels.Pipeline) error {
	return i.db.
		Omit("Stages").
		Create(&rec).
		Error
}

func (i impl) GetPipeline(name string) (*dbmodels.Pipeline, error) {
	rec := dbmodels.Pipeline{}
	err := i.db.
		Model(&dbmodels.Pipeline{}).
		Where("name = ?", name).
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

func (i impl) ListPipelines() ([]dbmodels.Pipeline, error) {
	list := []dbmodels.Pipeline{}
	err := i.db.
		Preload("Stages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sequence")
		}).
		Order("created_at, name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateStage(rec dbmodels.PipelineStage) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetStageByID(id string) (*dbmodels.PipelineStage, error) {
	rec := dbmodels.PipelineStage{}
	err := i.db.
		Model(&dbmodels.PipelineStage{}).
		Where("id = ?", id).
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

func (i impl) GetStageByName(pipelineName, stageName string) (*dbmodels.PipelineStage, error) {
	rec := dbmodels.PipelineStage{}
	err := i.db.
		Model(&dbmodels.PipelineStage{}).
		Where("pipeline_name = ?", pipelineName).
		Where("stage_name = ?", stageName).
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

// ListStages этапы воронки по возрастанию порядкового номера
func (i impl) ListStages(pipelineName string) (list []dbmodels.PipelineStage, err error) {
	list = []dbmodels.PipelineStage{}
	err = i.db.
		Where("pipeline_name = ?", pipelineName).
		Order("sequence").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

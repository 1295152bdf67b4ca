package dbmodels

import "time"

// Pipeline справочник воронок, ключ - название
type Pipeline struct {
	Name      string `gorm:"primaryKey;type:varchar(255)"`
	AppliesTo string `gorm:"type:varchar(255)"`
	IsActive  bool
	CreatedAt time.Time
	Stages    []PipelineStage `gorm:"foreignKey:PipelineName;references:Name"`
}

// PipelineStage этап воронки, первый этап - с минимальным Sequence
type PipelineStage struct {
	BaseModel
	PipelineName string `gorm:"type:varchar(255);uniqueIndex:idx_pipeline_stage"`
	StageName    string `gorm:"type:varchar(255);uniqueIndex:idx_pipeline_stage"`
	Sequence     int
	IsTerminal   bool
}

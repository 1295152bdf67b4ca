package dbmodels

import "time"

type VisaProcess struct {
	BaseModel
	JobApplicantID string         `gorm:"type:varchar(36);uniqueIndex"`
	ApplicantID    string         `gorm:"type:varchar(36);index"`
	Pipeline       string         `gorm:"type:varchar(255)"`
	CurrentStageID string         `gorm:"type:varchar(36)"`
	CurrentStage   *PipelineStage `gorm:"foreignKey:CurrentStageID"`
	StartedOn      time.Time
	ClosedOn       *time.Time
	Stages         []VisaStageRecord `gorm:"foreignKey:VisaProcessID"`
}

// VisaStageRecord отметка о прохождении этапа визового процесса
type VisaStageRecord struct {
	BaseModel
	VisaProcessID string `gorm:"type:varchar(36);index"`
	StageName     string `gorm:"type:varchar(255)"`
	StageDate     time.Time
	Status        string `gorm:"type:varchar(100)"`
	Comment       string
}

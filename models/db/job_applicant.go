package dbmodels

import (
	"time"

	"github.com/pkg/errors"
)

// JobApplicant карточка кандидата на позицию, хранит положение в воронке
type JobApplicant struct {
	BaseModel
	ApplicantID             string         `gorm:"type:varchar(36);index"`
	Applicant               *Applicant     `gorm:"foreignKey:ApplicantID"`
	DemandID                string         `gorm:"type:varchar(255);index"`
	DemandPosition          string         `gorm:"type:varchar(255)"`
	JobOpening              string         `gorm:"type:varchar(255)"`
	Pipeline                *string        `gorm:"type:varchar(255)"`
	CurrentStageID          *string        `gorm:"type:varchar(36)"`
	CurrentStage            *PipelineStage `gorm:"foreignKey:CurrentStageID"`
	IsMissingDocuments      bool
	MissingDocumentsName    string
	ReadyForPipeline        bool
	ConvertedToApplication  bool
	CompanySelectionDate    *time.Time
	OfferLetterReceivedDate *time.Time
	OfferLetterAcceptedDate *time.Time
	VisaProcessID           *string `gorm:"type:varchar(36)"`
	Version                 int     `gorm:"not null;default:0"`
}

func (j JobApplicant) GetPipeline() string {
	if j.Pipeline == nil {
		return ""
	}
	return *j.Pipeline
}

func (j JobApplicant) GetCurrentStageID() string {
	if j.CurrentStageID == nil {
		return ""
	}
	return *j.CurrentStageID
}

// CheckStageInvariant этап без воронки - дефект данных
func (j JobApplicant) CheckStageInvariant(stage *PipelineStage) error {
	if j.CurrentStageID == nil {
		return nil
	}
	if j.Pipeline == nil {
		return errors.Errorf("у кандидата %s указан этап без воронки", j.ID)
	}
	if stage == nil || stage.ID != *j.CurrentStageID || stage.PipelineName != *j.Pipeline {
		return errors.Errorf("этап кандидата %s не принадлежит воронке '%s'", j.ID, *j.Pipeline)
	}
	return nil
}

type JobApplicantFilter struct {
	ApplicantID    string
	DemandID       string
	DemandPosition string
	Pipeline       string
	StageName      string
	IDs            []string
}

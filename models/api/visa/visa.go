package visaapimodels

import (
	"time"

	"github.com/pkg/errors"
	dbmodels "recruitment-backend/models/db"
)

const dateFormat = "02.01.2006"

type CompleteStageRequest struct {
	StageDate string `json:"stage_date" validate:"required"` // Дата этапа ДД.ММ.ГГГГ
	Status    string `json:"status"`                         // Статус этапа: Done, Not Required, Allotted, Issued, Booked...
	Comment   string `json:"comment"`
}

func (r CompleteStageRequest) Validate() error {
	_, err := r.GetStageDate()
	if err != nil {
		return errors.New("некоректный формат даты этапа")
	}
	return nil
}

func (r CompleteStageRequest) GetStageDate() (time.Time, error) {
	return time.Parse(dateFormat, r.StageDate)
}

type VisaProcessView struct {
	ID               string          `json:"id"`
	JobApplicantID   string          `json:"job_applicant_id"`
	ApplicantID      string          `json:"applicant_id"`
	Pipeline         string          `json:"pipeline"`
	CurrentStageID   string          `json:"current_stage_id"`
	CurrentStageName string          `json:"current_stage_name"`
	StartedOn        string          `json:"started_on"`
	ClosedOn         string          `json:"closed_on"`
	Stages           []VisaStageView `json:"stages"`
}

type VisaStageView struct {
	StageName string `json:"stage_name"`
	StageDate string `json:"stage_date"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
}

func VisaProcessConvert(rec dbmodels.VisaProcess) VisaProcessView {
	result := VisaProcessView{
		ID:             rec.ID,
		JobApplicantID: rec.JobApplicantID,
		ApplicantID:    rec.ApplicantID,
		Pipeline:       rec.Pipeline,
		CurrentStageID: rec.CurrentStageID,
		StartedOn:      rec.StartedOn.Format(dateFormat),
		Stages:         make([]VisaStageView, 0, len(rec.Stages)),
	}
	if rec.CurrentStage != nil {
		result.CurrentStageName = rec.CurrentStage.StageName
	}
	if rec.ClosedOn != nil {
		result.ClosedOn = rec.ClosedOn.Format(dateFormat)
	}
	for _, stage := range rec.Stages {
		result.Stages = append(result.Stages, VisaStageView{
			StageName: stage.StageName,
			StageDate: stage.StageDate.Format(dateFormat),
			Status:    stage.Status,
			Comment:   stage.Comment,
		})
	}
	return result
}

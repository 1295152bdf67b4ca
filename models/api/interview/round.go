package interviewapimodels

import (
	"github.com/pkg/errors"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type RoundData struct {
	RoundName      string                `json:"round_name" validate:"required"`
	InterviewLevel models.InterviewLevel `json:"interview_level" validate:"required"`
	Description    string                `json:"description"`
}

func (r RoundData) Validate() error {
	if !r.InterviewLevel.IsValid() {
		return errors.Errorf("неизвестный уровень собеседования: %s", r.InterviewLevel)
	}
	return nil
}

type RoundView struct {
	ID string `json:"id"`
	RoundData
}

func RoundConvert(rec dbmodels.InterviewRound) RoundView {
	return RoundView{
		ID: rec.ID,
		RoundData: RoundData{
			RoundName:      rec.RoundName,
			InterviewLevel: rec.InterviewLevel,
			Description:    rec.Description,
		},
	}
}

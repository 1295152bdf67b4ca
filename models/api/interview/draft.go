package interviewapimodels

import (
	"time"

	dbmodels "recruitment-backend/models/db"
)

type DraftRequest struct {
	JobApplicantID   string `json:"job_applicant_id" validate:"required"`
	InterviewRoundID string `json:"interview_round_id"`
}

type DraftView struct {
	Token            string    `json:"token"`
	JobApplicantID   string    `json:"job_applicant_id"`
	InterviewRoundID string    `json:"interview_round_id"`
	ExpiresAt        time.Time `json:"expires_at"`
}

func DraftConvert(rec dbmodels.InterviewDraft) DraftView {
	return DraftView{
		Token:            rec.Token,
		JobApplicantID:   rec.JobApplicantID,
		InterviewRoundID: rec.InterviewRoundID,
		ExpiresAt:        rec.ExpiresAt,
	}
}

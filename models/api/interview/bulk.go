package interviewapimodels

import (
	"recruitment-backend/models"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
)

type BulkRequest struct {
	JobApplicantIDs  []string              `json:"job_applicant_ids" validate:"required,min=1,dive,required"`
	InterviewRoundID string                `json:"interview_round_id" validate:"required"`
	InterviewLevel   models.InterviewLevel `json:"interview_level"`
	InterviewDate    string                `json:"interview_date" validate:"required"` // ГГГГ-ММ-ДД
	StartTime        string                `json:"start_time"`                         // ЧЧ:ММ
	EndTime          string                `json:"end_time"`                           // ЧЧ:ММ
}

func (r BulkRequest) Validate() error {
	return validateSchedule(r.InterviewLevel, r.InterviewDate, r.StartTime, r.EndTime)
}

func (r BulkRequest) GetSchedule() (Schedule, error) {
	return parseSchedule(r.InterviewDate, r.StartTime, r.EndTime)
}

type BulkCreated struct {
	JobApplicantID string `json:"job_applicant_id"`
	InterviewID    string `json:"interview_id"`
}

type BulkFailure struct {
	JobApplicantID string            `json:"job_applicant_id"`
	Reason         models.ReasonCode `json:"reason"`
	Message        string            `json:"message"`
}

type BulkReport struct {
	RoundName    string        `json:"round_name"`
	CreatedCount int           `json:"created_count"`
	FailedCount  int           `json:"failed_count"`
	Created      []BulkCreated `json:"created"`
	Failed       []BulkFailure `json:"failed"`
}

func (r BulkReport) CreatedIDs() []string {
	result := make([]string, 0, len(r.Created))
	for _, item := range r.Created {
		result = append(result, item.JobApplicantID)
	}
	return result
}

type SelectionRequest struct {
	JobApplicantIDs []string `json:"job_applicant_ids" validate:"required,min=1"`
}

// SelectionContext общие заявка и позиция выбранных для массового назначения кандидатов
type SelectionContext struct {
	DemandID       string                                   `json:"demand_id"`
	DemandPosition string                                   `json:"demand_position"`
	JobApplicants  []jobapplicantapimodels.JobApplicantView `json:"job_applicants"`
	Count          int                                      `json:"count"`
}

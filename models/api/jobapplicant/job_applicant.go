package jobapplicantapimodels

import (
	"time"

	dbmodels "recruitment-backend/models/db"
)

type JobApplicantData struct {
	ApplicantID    string `json:"applicant_id" validate:"required"` // Идентификатор карточки человека
	DemandID       string `json:"demand_id"`                        // Идентификатор заявки работодателя
	DemandPosition string `json:"demand_position"`                  // Позиция в заявке
	JobOpening     string `json:"job_opening"`                      // Вакансия
}

type JobApplicantView struct {
	ID                      string `json:"id"`
	ApplicantID             string `json:"applicant_id"`
	ApplicantName           string `json:"applicant_name"`
	CNIC                    string `json:"cnic"`
	DemandID                string `json:"demand_id"`
	DemandPosition          string `json:"demand_position"`
	JobOpening              string `json:"job_opening"`
	Pipeline                string `json:"pipeline"`
	CurrentStageID          string `json:"current_stage_id"`
	CurrentStageName        string `json:"current_stage_name"`
	IsMissingDocuments      bool   `json:"is_missing_documents"`
	MissingDocumentsName    string `json:"missing_documents_name"`
	ReadyForPipeline        bool   `json:"ready_for_pipeline"`
	ConvertedToApplication  bool   `json:"converted_to_application"`
	CompanySelectionDate    string `json:"company_selection_date"`     // ДД.ММ.ГГГГ
	OfferLetterReceivedDate string `json:"offer_letter_received_date"` // ДД.ММ.ГГГГ
	OfferLetterAcceptedDate string `json:"offer_letter_accepted_date"` // ДД.ММ.ГГГГ
	VisaProcessID           string `json:"visa_process_id"`
}

func JobApplicantConvert(rec dbmodels.JobApplicant) JobApplicantView {
	result := JobApplicantView{
		ID:                      rec.ID,
		ApplicantID:             rec.ApplicantID,
		DemandID:                rec.DemandID,
		DemandPosition:          rec.DemandPosition,
		JobOpening:              rec.JobOpening,
		Pipeline:                rec.GetPipeline(),
		CurrentStageID:          rec.GetCurrentStageID(),
		IsMissingDocuments:      rec.IsMissingDocuments,
		MissingDocumentsName:    rec.MissingDocumentsName,
		ReadyForPipeline:        rec.ReadyForPipeline,
		ConvertedToApplication:  rec.ConvertedToApplication,
		CompanySelectionDate:    formatDate(rec.CompanySelectionDate),
		OfferLetterReceivedDate: formatDate(rec.OfferLetterReceivedDate),
		OfferLetterAcceptedDate: formatDate(rec.OfferLetterAcceptedDate),
	}
	if rec.Applicant != nil {
		result.ApplicantName = rec.Applicant.GetFullName()
		result.CNIC = rec.Applicant.CNIC
	}
	if rec.CurrentStage != nil {
		result.CurrentStageName = rec.CurrentStage.StageName
	}
	if rec.VisaProcessID != nil {
		result.VisaProcessID = *rec.VisaProcessID
	}
	return result
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format("02.01.2006")
}

type ListFilter struct {
	DemandID       string `json:"demand_id"`
	DemandPosition string `json:"demand_position"`
	Pipeline       string `json:"pipeline"`
	StageName      string `json:"stage_name"`
}

type AssignPipelineRequest struct {
	Pipeline string `json:"pipeline" validate:"required"` // Название воронки
}

type MoveToStageRequest struct {
	StageName string `json:"stage_name" validate:"required"` // Название этапа текущей воронки
}

type ReadyForPipelineRequest struct {
	Ready *bool `json:"ready" validate:"required"`
}

type PassportExpiryWarning struct {
	HasWarning      bool   `json:"has_warning"`
	Message         string `json:"message,omitempty"`
	ExpiryDate      string `json:"expiry_date,omitempty"`       // ГГГГ-ММ-ДД
	DaysUntilExpiry int    `json:"days_until_expiry,omitempty"` // отрицательное значение - паспорт просрочен
}

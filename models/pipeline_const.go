package models

// Воронки
const (
	PipelineInterviews    = "Interviews"
	PipelineOfferLetter   = "Offer Letter"
	PipelineVisaProcess   = "Visa Process"
	AppliesToJobApplicant = "Job Applicant"
	AppliesToVisaProcess  = "Visa Process"
)

// Этапы, на которые ссылается логика переходов
const (
	StageScreening             = "Screening"
	StageInternalInterviewHeld = "Internal Interview Held"
	StageInternallySelected    = "Internally Selected"
	StageInternalRejected      = "Internal Rejected"
	StageCompanyInterview      = "Company Interview"
	StageCompanySelected       = "Company Selected"
	StageCompanyRejected       = "Company Rejected"
	StageOfferLetterWaited     = "Offer Letter Waited"
	StageOfferLetterReceived   = "Offer Letter Received"
	StageOfferLetterAccepted   = "Offer Letter Accepted"
	StageDeployed              = "Deployed"
)

// RequiredDocumentTypes документы, без которых кандидат не может попасть в воронку
var RequiredDocumentTypes = []string{"Passport", "CNIC", "CV"}

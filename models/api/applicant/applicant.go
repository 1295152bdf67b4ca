package applicantapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	dbmodels "recruitment-backend/models/db"
)

const dateFormat = "02.01.2006"

type ApplicantData struct {
	FirstName          string `json:"first_name" validate:"required"`   // Имя
	LastName           string `json:"last_name"`                        // Фамилия
	MiddleName         string `json:"middle_name"`                      // Отчество
	Email              string `json:"email" validate:"omitempty,email"` // Емайл
	Phone              string `json:"phone"`                            // Телефон
	DateOfBirth        string `json:"date_of_birth"`                    // Дата рождения ДД.ММ.ГГГГ
	CNIC               string `json:"cnic" validate:"required"`         // Национальный идентификатор, 13 цифр
	PassportNumber     string `json:"passport_number"`                  // Номер паспорта, 2 буквы и 7 цифр
	PassportExpiryDate string `json:"passport_expiry_date"`             // Срок действия паспорта ДД.ММ.ГГГГ
}

func (a ApplicantData) Validate() error {
	if _, err := parseDate(a.DateOfBirth); err != nil {
		return errors.New("некоректный формат даты рождения")
	}
	if _, err := parseDate(a.PassportExpiryDate); err != nil {
		return errors.New("некоректный формат срока действия паспорта")
	}
	return nil
}

func (a ApplicantData) GetDateOfBirth() *time.Time {
	date, _ := parseDate(a.DateOfBirth)
	return date
}

func (a ApplicantData) GetPassportExpiryDate() *time.Time {
	date, _ := parseDate(a.PassportExpiryDate)
	return date
}

type ApplicantView struct {
	ApplicantData
	ID        string         `json:"id"`
	FullName  string         `json:"full_name"`
	Documents []DocumentView `json:"documents"`
}

type DocumentData struct {
	ID           string `json:"id"`                                // Идентификатор строки, пусто - новый документ
	DocumentType string `json:"document_type" validate:"required"` // Passport, CNIC, CV, Certificate...
	File         string `json:"file"`                              // Ключ файла в хранилище
	FileName     string `json:"file_name"`
	IssueDate    string `json:"issue_date"`  // ДД.ММ.ГГГГ
	ExpiryDate   string `json:"expiry_date"` // ДД.ММ.ГГГГ
	IsValid      bool   `json:"is_valid"`
	IsVerified   bool   `json:"is_verified"`
}

func (d DocumentData) Validate() error {
	if _, err := parseDate(d.IssueDate); err != nil {
		return errors.Errorf("некоректный формат даты выдачи документа %s", d.DocumentType)
	}
	if _, err := parseDate(d.ExpiryDate); err != nil {
		return errors.Errorf("некоректный формат срока действия документа %s", d.DocumentType)
	}
	return nil
}

func (d DocumentData) ToDB() dbmodels.ApplicantDocument {
	rec := dbmodels.ApplicantDocument{
		DocumentType: strings.TrimSpace(d.DocumentType),
		File:         strings.TrimSpace(d.File),
		FileName:     d.FileName,
		IsValid:      d.IsValid,
		IsVerified:   d.IsVerified,
	}
	rec.ID = d.ID
	rec.IssueDate, _ = parseDate(d.IssueDate)
	rec.ExpiryDate, _ = parseDate(d.ExpiryDate)
	return rec
}

type DocumentsRequest struct {
	Documents []DocumentData `json:"documents" validate:"dive"`
}

func (r DocumentsRequest) Validate() error {
	for _, doc := range r.Documents {
		if err := doc.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type DocumentView struct {
	DocumentData
	HasFile bool `json:"has_file"`
}

func DocumentConvert(rec dbmodels.ApplicantDocument) DocumentView {
	return DocumentView{
		DocumentData: DocumentData{
			ID:           rec.ID,
			DocumentType: rec.DocumentType,
			File:         rec.File,
			FileName:     rec.FileName,
			IssueDate:    formatDate(rec.IssueDate),
			ExpiryDate:   formatDate(rec.ExpiryDate),
			IsValid:      rec.IsValid,
			IsVerified:   rec.IsVerified,
		},
		HasFile: rec.File != "",
	}
}

func ApplicantConvert(rec dbmodels.Applicant) ApplicantView {
	result := ApplicantView{
		ApplicantData: ApplicantData{
			FirstName:          rec.FirstName,
			LastName:           rec.LastName,
			MiddleName:         rec.MiddleName,
			Email:              rec.Email,
			Phone:              rec.Phone,
			DateOfBirth:        formatDate(rec.DateOfBirth),
			CNIC:               rec.CNIC,
			PassportNumber:     rec.GetPassportNumber(),
			PassportExpiryDate: formatDate(rec.PassportExpiryDate),
		},
		ID:        rec.ID,
		FullName:  rec.GetFullName(),
		Documents: make([]DocumentView, 0, len(rec.Documents)),
	}
	for _, doc := range rec.Documents {
		result.Documents = append(result.Documents, DocumentConvert(doc))
	}
	return result
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(dateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format(dateFormat)
}

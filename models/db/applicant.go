package dbmodels

import (
	"strings"
	"time"
)

// Applicant постоянная карточка человека, уникальна по CNIC
type Applicant struct {
	BaseModel
	FirstName          string `gorm:"type:varchar(255)"`
	LastName           string `gorm:"type:varchar(255)"`
	MiddleName         string `gorm:"type:varchar(255)"`
	Email              string `gorm:"type:varchar(255)"`
	Phone              string `gorm:"type:varchar(255)"`
	DateOfBirth        *time.Time
	CNIC               string  `gorm:"column:cnic;type:varchar(13);uniqueIndex:idx_applicant_cnic"`
	PassportNumber     *string `gorm:"type:varchar(9);uniqueIndex:idx_applicant_passport"`
	PassportExpiryDate *time.Time
	Documents          []ApplicantDocument `gorm:"foreignKey:ApplicantID"`
}

func (a Applicant) GetFullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (a Applicant) GetPassportNumber() string {
	if a.PassportNumber == nil {
		return ""
	}
	return *a.PassportNumber
}

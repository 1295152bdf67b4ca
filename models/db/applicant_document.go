package dbmodels

import "time"

type ApplicantDocument struct {
	BaseModel
	ApplicantID  string `gorm:"type:varchar(36);index"`
	DocumentType string `gorm:"type:varchar(255)"`
	File         string // ключ объекта в хранилище, пусто - файл не приложен
	FileName     string
	IssueDate    *time.Time
	ExpiryDate   *time.Time
	IsValid      bool
	IsVerified   bool
}

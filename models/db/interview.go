package dbmodels

import (
	"time"

	"gorm.io/datatypes"
	"recruitment-backend/models"
)

// InterviewRound тип/категория собеседования, задает уровень по умолчанию
type InterviewRound struct {
	BaseModel
	RoundName      string                `gorm:"type:varchar(255);uniqueIndex"`
	InterviewLevel models.InterviewLevel `gorm:"type:varchar(50)"`
	Description    string
}

type Interview struct {
	BaseModel
	JobApplicantID   string                `gorm:"type:varchar(36);index:idx_interview_round"`
	JobApplicant     *JobApplicant         `gorm:"foreignKey:JobApplicantID"`
	InterviewRoundID string                `gorm:"type:varchar(36);index:idx_interview_round"`
	InterviewRound   *InterviewRound       `gorm:"foreignKey:InterviewRoundID"`
	InterviewLevel   models.InterviewLevel `gorm:"type:varchar(50)"`
	InterviewDate    datatypes.Date
	StartTime        *datatypes.Time
	EndTime          *datatypes.Time
	TotalTime        string
	Result           models.InterviewResult `gorm:"type:varchar(20)"`
	ResultDate       *time.Time
	IsCancelled      bool
	Feedback         string
}

type InterviewFilter struct {
	JobApplicantID   string
	InterviewRoundID string
	Level            models.InterviewLevel
	Result           models.InterviewResult
	WithCancelled    bool
}

// InterviewDraft черновик собеседования между шагами формы, живет до ExpiresAt
type InterviewDraft struct {
	Token            string `gorm:"primaryKey;type:varchar(36)"`
	JobApplicantID   string `gorm:"type:varchar(36)"`
	InterviewRoundID string `gorm:"type:varchar(36)"`
	UserID           string `gorm:"type:varchar(36)"`
	CreatedAt        time.Time
	ExpiresAt        time.Time `gorm:"index"`
}

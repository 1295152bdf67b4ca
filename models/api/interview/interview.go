package interviewapimodels

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

type InterviewData struct {
	JobApplicantID   string                `json:"job_applicant_id" validate:"required_without=DraftToken"` // Кандидат
	DraftToken       string                `json:"draft_token"`                                             // Токен черновика вместо кандидата
	InterviewRoundID string                `json:"interview_round_id" validate:"required"`                  // Раунд собеседования
	InterviewLevel   models.InterviewLevel `json:"interview_level"`                                         // Уровень, по умолчанию из раунда
	InterviewDate    string                `json:"interview_date" validate:"required"`                      // ГГГГ-ММ-ДД
	StartTime        string                `json:"start_time"`                                              // ЧЧ:ММ
	EndTime          string                `json:"end_time"`                                                // ЧЧ:ММ
}

func (d InterviewData) Validate() error {
	return validateSchedule(d.InterviewLevel, d.InterviewDate, d.StartTime, d.EndTime)
}

func (d InterviewData) GetSchedule() (Schedule, error) {
	return parseSchedule(d.InterviewDate, d.StartTime, d.EndTime)
}

// Schedule общие для собеседования (или всей пачки) дата и время
type Schedule struct {
	Date      time.Time
	StartTime *datatypes.Time
	EndTime   *datatypes.Time
}

func validateSchedule(level models.InterviewLevel, date, startTime, endTime string) error {
	if level != "" && !level.IsValid() {
		return errors.Errorf("неизвестный уровень собеседования: %s", level)
	}
	if _, err := parseSchedule(date, startTime, endTime); err != nil {
		return err
	}
	return nil
}

func parseSchedule(date, startTime, endTime string) (Schedule, error) {
	result := Schedule{}
	value, err := time.Parse(DateFormat, date)
	if err != nil {
		return Schedule{}, errors.New("некорректный формат даты собеседования")
	}
	result.Date = value
	result.StartTime, err = ParseClock(startTime)
	if err != nil {
		return Schedule{}, errors.New("некорректный формат времени начала")
	}
	result.EndTime, err = ParseClock(endTime)
	if err != nil {
		return Schedule{}, errors.New("некорректный формат времени окончания")
	}
	return result, nil
}

// ParseClock пустая строка - время не указано
func ParseClock(value string) (*datatypes.Time, error) {
	if value == "" {
		return nil, nil
	}
	clock, err := time.Parse(ClockFormat, value)
	if err != nil {
		return nil, err
	}
	result := datatypes.NewTime(clock.Hour(), clock.Minute(), 0, 0)
	return &result, nil
}

type ResultRequest struct {
	Result   models.InterviewResult `json:"result" validate:"required"` // Pass / Fail / Hold
	Feedback string                 `json:"feedback"`
}

type InterviewView struct {
	ID               string                 `json:"id"`
	JobApplicantID   string                 `json:"job_applicant_id"`
	InterviewRoundID string                 `json:"interview_round_id"`
	RoundName        string                 `json:"round_name"`
	InterviewLevel   models.InterviewLevel  `json:"interview_level"`
	InterviewDate    string                 `json:"interview_date"`
	StartTime        string                 `json:"start_time"`
	EndTime          string                 `json:"end_time"`
	TotalTime        string                 `json:"total_time"`
	Result           models.InterviewResult `json:"result"`
	ResultDate       string                 `json:"result_date"`
	IsCancelled      bool                   `json:"is_cancelled"`
	Feedback         string                 `json:"feedback"`
	// заполняется, если результат сохранен, а этап кандидата не изменен
	StageBlockedReason  models.ReasonCode `json:"stage_blocked_reason,omitempty"`
	StageBlockedMessage string            `json:"stage_blocked_message,omitempty"`
}

func InterviewConvert(rec dbmodels.Interview) InterviewView {
	result := InterviewView{
		ID:               rec.ID,
		JobApplicantID:   rec.JobApplicantID,
		InterviewRoundID: rec.InterviewRoundID,
		InterviewLevel:   rec.InterviewLevel,
		InterviewDate:    time.Time(rec.InterviewDate).Format(DateFormat),
		StartTime:        FormatClock(rec.StartTime),
		EndTime:          FormatClock(rec.EndTime),
		TotalTime:        rec.TotalTime,
		Result:           rec.Result,
		IsCancelled:      rec.IsCancelled,
		Feedback:         rec.Feedback,
	}
	if rec.InterviewRound != nil {
		result.RoundName = rec.InterviewRound.RoundName
	}
	if rec.ResultDate != nil {
		result.ResultDate = rec.ResultDate.Format(DateFormat)
	}
	return result
}

func FormatClock(value *datatypes.Time) string {
	if value == nil {
		return ""
	}
	minutes := int(time.Duration(*value) / time.Minute)
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format(ClockFormat)
}

type ListFilter struct {
	JobApplicantID   string                 `json:"job_applicant_id"`
	InterviewRoundID string                 `json:"interview_round_id"`
	Level            models.InterviewLevel  `json:"interview_level"`
	Result           models.InterviewResult `json:"result"`
	WithCancelled    bool                   `json:"with_cancelled"`
}

func (f ListFilter) ToDB() dbmodels.InterviewFilter {
	return dbmodels.InterviewFilter{
		JobApplicantID:   f.JobApplicantID,
		InterviewRoundID: f.InterviewRoundID,
		Level:            f.Level,
		Result:           f.Result,
		WithCancelled:    f.WithCancelled,
	}
}

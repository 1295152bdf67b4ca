package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type JobApplicantHistory struct {
	BaseModel
	JobApplicantID string `gorm:"type:varchar(36);index"`
	UserID         *string
	UserName       string
	ActionType     ActionType       `gorm:"type:varchar(255)"`
	Changes        ApplicantChanges `gorm:"type:jsonb"`
}

func (j ApplicantChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ApplicantChanges) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	case nil:
		return nil
	}
	return errors.Errorf("неподдерживаемый тип данных истории: %T", value)
}

type ApplicantChanges struct {
	Description string            `json:"description"` // Комментарий
	Data        []ApplicantChange `json:"data"`        // Список изменений
}

type ApplicantChange struct {
	Field    string      `json:"field"`     // Измененное поле
	OldValue interface{} `json:"old_value"` // Старое значение
	NewValue interface{} `json:"new_value"` // Новое значение
}

type ActionType string

const (
	HistoryTypeAdded           ActionType = "added"            // Кандидат добавлен
	HistoryTypeUpdate          ActionType = "update"           // Кандидат обновлен
	HistoryTypeStageChange     ActionType = "stage_change"     // Кандидат переведен на другой этап
	HistoryTypePipelineChange  ActionType = "pipeline_change"  // Кандидат переведен в другую воронку
	HistoryTypeInterview       ActionType = "interview"        // Назначено собеседование
	HistoryTypeInterviewResult ActionType = "interview_result" // Получен результат собеседования
	HistoryTypeDocuments       ActionType = "documents"        // Проверка комплекта документов
	HistoryTypeVisa            ActionType = "visa_process"     // Визовый процесс
	HistoryTypeConverted       ActionType = "converted"        // Кандидат переведен в заявку
)

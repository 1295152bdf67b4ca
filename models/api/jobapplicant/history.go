package jobapplicantapimodels

import (
	apimodels "recruitment-backend/models/api"
	dbmodels "recruitment-backend/models/db"
)

type HistoryFilter struct {
	apimodels.Pagination
	ActionType dbmodels.ActionType `json:"action_type"` // Только действия указанного типа
}

type HistoryView struct {
	ID         string                    `json:"id"`
	Date       string                    `json:"date"`        // Дата действия ДД.ММ.ГГГГ ЧЧ:ММ
	UserID     string                    `json:"user_id"`     // Идентификатор сотрудника
	UserName   string                    `json:"user_name"`   // Имя сотрудника
	ActionType dbmodels.ActionType       `json:"action_type"` // Тип действия
	Changes    dbmodels.ApplicantChanges `json:"changes"`     // Изменения
}

func HistoryConvert(rec dbmodels.JobApplicantHistory) HistoryView {
	result := HistoryView{
		ID:         rec.ID,
		Date:       rec.CreatedAt.Format("02.01.2006 15:04"),
		UserName:   rec.UserName,
		ActionType: rec.ActionType,
		Changes:    rec.Changes,
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	return result
}

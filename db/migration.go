package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

func AutoMigrateDB(DB *gorm.DB) error {
	log.Info("Запуск миграций")
	tables := []struct {
		name  string
		model interface{}
	}{
		{"Applicant", &dbmodels.Applicant{}},
		{"ApplicantDocument", &dbmodels.ApplicantDocument{}},
		{"Pipeline", &dbmodels.Pipeline{}},
		{"PipelineStage", &dbmodels.PipelineStage{}},
		{"JobApplicant", &dbmodels.JobApplicant{}},
		{"JobApplicantHistory", &dbmodels.JobApplicantHistory{}},
		{"InterviewRound", &dbmodels.InterviewRound{}},
		{"Interview", &dbmodels.Interview{}},
		{"InterviewDraft", &dbmodels.InterviewDraft{}},
		{"VisaProcess", &dbmodels.VisaProcess{}},
		{"VisaStageRecord", &dbmodels.VisaStageRecord{}},
	}
	for _, table := range tables {
		if err := DB.AutoMigrate(table.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", table.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}

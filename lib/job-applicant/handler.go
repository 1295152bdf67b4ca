package jobapplicant

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	applicantstore "recruitment-backend/lib/applicant/store"
	documentcheck "recruitment-backend/lib/document-check"
	xlsexport "recruitment-backend/lib/export/xls"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	stagetransition "recruitment-backend/lib/stage-transition"
	initchecker "recruitment-backend/lib/utils/init-checker"
	"recruitment-backend/models"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
	dbmodels "recruitment-backend/models/db"
)

// passportWarningMonths паспорт, истекающий раньше, требует внимания до отправки кандидата
const passportWarningMonths = 6

type Provider interface {
	Create(data jobapplicantapimodels.JobApplicantData, userID string) (jobapplicantapimodels.JobApplicantView, error)
	GetByID(id string) (jobapplicantapimodels.JobApplicantView, error)
	List(filter jobapplicantapimodels.ListFilter) ([]jobapplicantapimodels.JobApplicantView, error)
	SetReadyForPipeline(id string, ready bool, userID string) (jobapplicantapimodels.JobApplicantView, error)
	AssignPipeline(id, pipelineName, userID string) (jobapplicantapimodels.JobApplicantView, error)
	ClearPipeline(id, userID string) (jobapplicantapimodels.JobApplicantView, error)
	MoveToStage(id, stageName, userID string) (jobapplicantapimodels.JobApplicantView, error)
	PassportExpiryWarning(id string) (jobapplicantapimodels.PassportExpiryWarning, error)
	ConvertToApplication(id, userID string) (jobapplicantapimodels.JobApplicantView, error)
	// SyncDocumentsTx применяет проверку комплекта документов ко всем активным карточкам человека
	SyncDocumentsTx(tx *gorm.DB, applicantID, userID string) error
	Export(filter jobapplicantapimodels.ListFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"db", db.DB,
		"stagetransition", stagetransition.Instance,
		"xlsexport", xlsexport.Instance,
	)
	Instance = NewInstance(db.DB, stagetransition.Instance, xlsexport.Instance)
}

func NewInstance(DB *gorm.DB, engine stagetransition.Provider, xls xlsexport.Provider) Provider {
	return impl{
		db:      DB,
		store:   jobapplicantstore.NewInstance(DB),
		engine:  engine,
		history: jobapplicanthistoryhandler.NewInstance(DB),
		xls:     xls,
		now:     time.Now,
	}
}

type impl struct {
	db      *gorm.DB
	store   jobapplicantstore.Provider
	engine  stagetransition.Provider
	history jobapplicanthistoryhandler.Provider
	xls     xlsexport.Provider
	now     func() time.Time
}

func (i impl) getLogger(jobApplicantID, userID string) *log.Entry {
	logger := log.WithField("job_applicant_id", jobApplicantID)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) Create(data jobapplicantapimodels.JobApplicantData, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	var id string
	err := i.db.Transaction(func(tx *gorm.DB) error {
		applicant, err := applicantstore.NewInstance(tx).GetByID(data.ApplicantID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения карточки человека")
		}
		if applicant == nil {
			return models.NewErrNotFound("карточка человека", data.ApplicantID)
		}
		rec := dbmodels.JobApplicant{
			ApplicantID:    applicant.ID,
			DemandID:       strings.TrimSpace(data.DemandID),
			DemandPosition: strings.TrimSpace(data.DemandPosition),
			JobOpening:     strings.TrimSpace(data.JobOpening),
		}
		missing, missingTypes := documentcheck.Check(applicant.Documents)
		documentcheck.ApplyPolicy(&rec, missing, missingTypes)

		id, err = jobapplicantstore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания кандидата")
		}
		changes := dbmodels.ApplicantChanges{
			Description: fmt.Sprintf("Кандидат добавлен на позицию %s", rec.DemandPosition),
		}
		if rec.IsMissingDocuments {
			changes.Data = append(changes.Data, dbmodels.ApplicantChange{
				Field:    "missing_documents_name",
				NewValue: rec.MissingDocumentsName,
			})
		}
		return i.history.SaveTx(tx, id, userID, dbmodels.HistoryTypeAdded, changes)
	})
	if err != nil {
		i.getLogger("", userID).
			WithField("applicant_id", data.ApplicantID).
			WithError(err).
			Error("ошибка создания кандидата")
		return jobapplicantapimodels.JobApplicantView{}, err
	}
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (jobapplicantapimodels.JobApplicantView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.getLogger(id, "").WithError(err).Error("ошибка получения кандидата")
		return jobapplicantapimodels.JobApplicantView{}, errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return jobapplicantapimodels.JobApplicantView{}, models.NewErrNotFound("кандидат", id)
	}
	return jobapplicantapimodels.JobApplicantConvert(*rec), nil
}

func (i impl) List(filter jobapplicantapimodels.ListFilter) ([]jobapplicantapimodels.JobApplicantView, error) {
	list, err := i.store.List(dbmodels.JobApplicantFilter{
		DemandID:       filter.DemandID,
		DemandPosition: filter.DemandPosition,
		Pipeline:       filter.Pipeline,
		StageName:      filter.StageName,
	})
	if err != nil {
		log.WithError(err).Error("ошибка получения списка кандидатов")
		return nil, errors.New("ошибка получения списка кандидатов")
	}
	result := make([]jobapplicantapimodels.JobApplicantView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapplicantapimodels.JobApplicantConvert(rec))
	}
	return result, nil
}

func (i impl) SetReadyForPipeline(id string, ready bool, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	var outcome stagetransition.Outcome
	err := stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			rec, err := jobapplicantstore.NewInstance(tx).GetByID(id)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if rec == nil {
				return models.NewErrNotFound("кандидат", id)
			}
			outcome = stagetransition.Outcome{}
			// событие только при изменении признака, повтор не сбрасывает воронку
			if rec.ReadyForPipeline == ready {
				return nil
			}
			var event stagetransition.Event = stagetransition.ReadyForPipelineOff{}
			if ready {
				failed, err := i.readyChecks(tx, *rec)
				if err != nil {
					return err
				}
				if len(failed) != 0 {
					return models.NewErrPreconditionBlockedWithDetails(models.ReasonReadyForPipelineChecks,
						"кандидат не может быть отмечен как готовый к воронке", failed)
				}
				event = stagetransition.ReadyForPipelineOn{}
			}
			outcome, err = i.engine.ApplyTx(tx, *rec, userID, "", event)
			return err
		})
	})
	if err != nil {
		i.engine.ReportRejection(id, err)
		return jobapplicantapimodels.JobApplicantView{}, err
	}
	i.engine.Report(outcome)
	return i.GetByID(id)
}

// readyChecks полный список невыполненных условий, пустой - кандидат может войти в воронку
func (i impl) readyChecks(tx *gorm.DB, rec dbmodels.JobApplicant) ([]string, error) {
	failed := []string{}
	if rec.ApplicantID == "" {
		return append(failed, "не привязана карточка человека"), nil
	}
	applicantStore := applicantstore.NewInstance(tx)
	applicant, err := applicantStore.GetByID(rec.ApplicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения карточки человека")
	}
	if applicant == nil {
		return append(failed, fmt.Sprintf("карточка человека '%s' не существует", rec.ApplicantID)), nil
	}
	if applicant.CNIC == "" {
		failed = append(failed, "не указан CNIC")
	} else {
		duplicate, err := applicantStore.ExistsCNIC(applicant.CNIC, applicant.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка проверки уникальности CNIC")
		}
		if duplicate {
			failed = append(failed, fmt.Sprintf("CNIC '%s' не уникален", applicant.CNIC))
		}
	}
	if applicant.GetPassportNumber() == "" {
		failed = append(failed, "не указан номер паспорта")
	} else if applicant.PassportExpiryDate == nil {
		failed = append(failed, "не указан срок действия паспорта")
	}
	if rec.DemandID == "" || rec.DemandPosition == "" {
		failed = append(failed, "не указаны заявка работодателя и позиция")
	}
	missing := documentcheck.MissingRequired(applicant.Documents, models.RequiredDocumentTypes)
	if len(missing) != 0 {
		failed = append(failed, fmt.Sprintf("не приложены обязательные документы: %s", strings.Join(missing, ", ")))
	}
	return failed, nil
}

func (i impl) AssignPipeline(id, pipelineName, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	return i.apply(id, userID, stagetransition.AssignPipeline{PipelineName: pipelineName})
}

func (i impl) ClearPipeline(id, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	return i.apply(id, userID, stagetransition.ClearPipeline{})
}

func (i impl) MoveToStage(id, stageName, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	return i.apply(id, userID, stagetransition.MoveToStage{StageName: stageName})
}

func (i impl) apply(id, userID string, events ...stagetransition.Event) (jobapplicantapimodels.JobApplicantView, error) {
	_, err := i.engine.Apply(id, userID, events...)
	if err != nil {
		return jobapplicantapimodels.JobApplicantView{}, err
	}
	return i.GetByID(id)
}

func (i impl) PassportExpiryWarning(id string) (jobapplicantapimodels.PassportExpiryWarning, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		i.getLogger(id, "").WithError(err).Error("ошибка получения кандидата")
		return jobapplicantapimodels.PassportExpiryWarning{}, errors.New("ошибка получения кандидата")
	}
	if rec == nil {
		return jobapplicantapimodels.PassportExpiryWarning{}, models.NewErrNotFound("кандидат", id)
	}
	if rec.Applicant == nil {
		return jobapplicantapimodels.PassportExpiryWarning{}, nil
	}
	return passportExpiryWarning(rec.Applicant.PassportExpiryDate, i.now()), nil
}

func passportExpiryWarning(expiry *time.Time, now time.Time) jobapplicantapimodels.PassportExpiryWarning {
	if expiry == nil || expiry.IsZero() {
		return jobapplicantapimodels.PassportExpiryWarning{}
	}
	today := truncateDay(now)
	expiryDay := truncateDay(*expiry)
	if !expiryDay.Before(today.AddDate(0, passportWarningMonths, 0)) {
		return jobapplicantapimodels.PassportExpiryWarning{}
	}
	days := int(expiryDay.Sub(today).Hours() / 24)
	result := jobapplicantapimodels.PassportExpiryWarning{
		HasWarning:      true,
		ExpiryDate:      expiryDay.Format("2006-01-02"),
		DaysUntilExpiry: days,
	}
	if days < 0 {
		result.Message = fmt.Sprintf("Паспорт кандидата просрочен %s, продлите паспорт до продолжения работы",
			expiryDay.Format("02.01.2006"))
	} else {
		result.Message = fmt.Sprintf("Паспорт кандидата истекает через %d дн. (%s), продлите паспорт до отправки",
			days, expiryDay.Format("02.01.2006"))
	}
	return result
}

func truncateDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func (i impl) ConvertToApplication(id, userID string) (jobapplicantapimodels.JobApplicantView, error) {
	err := stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			candidateStore := jobapplicantstore.NewInstance(tx)
			rec, err := candidateStore.GetByID(id)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if rec == nil {
				return models.NewErrNotFound("кандидат", id)
			}
			if rec.ConvertedToApplication {
				return nil
			}
			err = candidateStore.UpdateVersioned(rec.ID, rec.Version, map[string]interface{}{
				"converted_to_application": true,
			})
			if err != nil {
				return err
			}
			return i.history.SaveTx(tx, rec.ID, userID, dbmodels.HistoryTypeConverted, dbmodels.ApplicantChanges{
				Description: "Кандидат переведен в заявку",
				Data: []dbmodels.ApplicantChange{
					{Field: "converted_to_application", OldValue: false, NewValue: true},
				},
			})
		})
	})
	if err != nil {
		i.getLogger(id, userID).WithError(err).Error("ошибка перевода кандидата в заявку")
		return jobapplicantapimodels.JobApplicantView{}, err
	}
	i.getLogger(id, userID).Info("кандидат переведен в заявку")
	return i.GetByID(id)
}

func (i impl) SyncDocumentsTx(tx *gorm.DB, applicantID, userID string) error {
	applicant, err := applicantstore.NewInstance(tx).GetByID(applicantID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения карточки человека")
	}
	if applicant == nil {
		return models.NewErrNotFound("карточка человека", applicantID)
	}
	missing, missingTypes := documentcheck.Check(applicant.Documents)
	if !missing {
		return nil
	}
	candidateStore := jobapplicantstore.NewInstance(tx)
	list, err := candidateStore.List(dbmodels.JobApplicantFilter{ApplicantID: applicantID})
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидатов карточки")
	}
	for _, rec := range list {
		if rec.ConvertedToApplication {
			continue
		}
		before := rec
		if !documentcheck.ApplyPolicy(&rec, missing, missingTypes) {
			continue
		}
		err = candidateStore.UpdateVersioned(rec.ID, rec.Version, map[string]interface{}{
			"is_missing_documents":   rec.IsMissingDocuments,
			"missing_documents_name": rec.MissingDocumentsName,
		})
		if err != nil {
			return err
		}
		changes := dbmodels.ApplicantChanges{Description: "Не хватает документов: " + strings.Join(missingTypes, ", ")}
		if before.IsMissingDocuments != rec.IsMissingDocuments {
			changes.Data = append(changes.Data, dbmodels.ApplicantChange{
				Field: "is_missing_documents", OldValue: before.IsMissingDocuments, NewValue: rec.IsMissingDocuments,
			})
		}
		if before.MissingDocumentsName != rec.MissingDocumentsName {
			changes.Data = append(changes.Data, dbmodels.ApplicantChange{
				Field: "missing_documents_name", OldValue: before.MissingDocumentsName, NewValue: rec.MissingDocumentsName,
			})
		}
		err = i.history.SaveTx(tx, rec.ID, userID, dbmodels.HistoryTypeDocuments, changes)
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) Export(filter jobapplicantapimodels.ListFilter) (*bytes.Buffer, error) {
	list, err := i.List(filter)
	if err != nil {
		return nil, err
	}
	return i.xls.ExportJobApplicants(list)
}

package visaprocess

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"
	"gorm.io/gorm"
	"recruitment-backend/db"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	"recruitment-backend/lib/pipeline"
	stagetransition "recruitment-backend/lib/stage-transition"
	initchecker "recruitment-backend/lib/utils/init-checker"
	visaprocessstore "recruitment-backend/lib/visa-process/store"
	"recruitment-backend/models"
	visaapimodels "recruitment-backend/models/api/visa"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	// Start создает визовый процесс и переводит кандидата на первый этап воронки Visa Process
	Start(jobApplicantID, userID string) (visaapimodels.VisaProcessView, error)
	GetByID(id string) (visaapimodels.VisaProcessView, error)
	// CompleteStage фиксирует дату и статус текущего этапа, завершенный этап переводит процесс и кандидата дальше
	CompleteStage(id string, request visaapimodels.CompleteStageRequest, userID string) (visaapimodels.VisaProcessView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"db", db.DB,
		"pipeline", pipeline.Instance,
		"stagetransition", stagetransition.Instance,
	)
	Instance = NewInstance(db.DB, pipeline.Instance, stagetransition.Instance)
}

func NewInstance(DB *gorm.DB, pipelines pipeline.Provider, engine stagetransition.Provider) Provider {
	return impl{
		db:        DB,
		store:     visaprocessstore.NewInstance(DB),
		pipelines: pipelines,
		engine:    engine,
		history:   jobapplicanthistoryhandler.NewInstance(DB),
		now:       time.Now,
	}
}

type impl struct {
	db        *gorm.DB
	store     visaprocessstore.Provider
	pipelines pipeline.Provider
	engine    stagetransition.Provider
	history   jobapplicanthistoryhandler.Provider
	now       func() time.Time
}

func (i impl) Start(jobApplicantID, userID string) (visaapimodels.VisaProcessView, error) {
	var id string
	var outcome stagetransition.Outcome
	err := stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			candidateStore := jobapplicantstore.NewInstance(tx)
			rec, err := candidateStore.GetByID(jobApplicantID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if rec == nil {
				return models.NewErrNotFound("кандидат", jobApplicantID)
			}
			if rec.VisaProcessID != nil {
				return models.NewErrPreconditionBlocked(models.ReasonVisaProcessNotAllowed,
					"визовый процесс уже создан: %s", *rec.VisaProcessID)
			}
			if rec.CurrentStage == nil || rec.CurrentStage.StageName != models.StageOfferLetterAccepted {
				return models.NewErrPreconditionBlocked(models.ReasonVisaProcessNotAllowed,
					"визовый процесс можно начать только на этапе '%s'", models.StageOfferLetterAccepted)
			}
			outcome, err = i.engine.ApplyTx(tx, *rec, userID, "Начат визовый процесс",
				stagetransition.AssignPipeline{PipelineName: models.PipelineVisaProcess})
			if err != nil {
				return err
			}
			visaStore := visaprocessstore.NewInstance(tx)
			id, err = visaStore.Create(dbmodels.VisaProcess{
				JobApplicantID: rec.ID,
				ApplicantID:    rec.ApplicantID,
				Pipeline:       outcome.After.GetPipeline(),
				CurrentStageID: outcome.After.GetCurrentStageID(),
				StartedOn:      i.now(),
			})
			if err != nil {
				return errors.Wrap(err, "ошибка создания визового процесса")
			}
			err = candidateStore.UpdateVersioned(rec.ID, outcome.After.Version, map[string]interface{}{
				"visa_process_id": id,
			})
			if err != nil {
				return err
			}
			return i.history.SaveTx(tx, rec.ID, userID, dbmodels.HistoryTypeVisa, dbmodels.ApplicantChanges{
				Description: "Создан визовый процесс",
				Data: []dbmodels.ApplicantChange{
					{Field: "visa_process_id", NewValue: id},
				},
			})
		})
	})
	if err != nil {
		i.engine.ReportRejection(jobApplicantID, err)
		return visaapimodels.VisaProcessView{}, err
	}
	i.engine.Report(outcome)
	log.
		WithField("job_applicant_id", jobApplicantID).
		WithField("visa_process_id", id).
		Info("начат визовый процесс")
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (visaapimodels.VisaProcessView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("visa_process_id", id).WithError(err).Error("ошибка получения визового процесса")
		return visaapimodels.VisaProcessView{}, errors.New("ошибка получения визового процесса")
	}
	if rec == nil {
		return visaapimodels.VisaProcessView{}, models.NewErrNotFound("визовый процесс", id)
	}
	return visaapimodels.VisaProcessConvert(*rec), nil
}

func (i impl) CompleteStage(id string, request visaapimodels.CompleteStageRequest, userID string) (visaapimodels.VisaProcessView, error) {
	stageDate, err := request.GetStageDate()
	if err != nil {
		return visaapimodels.VisaProcessView{}, models.NewErrValidation(models.ReasonInvalidParameter, "некоректный формат даты этапа")
	}
	status := strings.TrimSpace(request.Status)
	var outcome stagetransition.Outcome
	var jobApplicantID string
	err = stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			visaStore := visaprocessstore.NewInstance(tx)
			process, err := visaStore.GetByID(id)
			if err != nil {
				return errors.Wrap(err, "ошибка получения визового процесса")
			}
			if process == nil {
				return models.NewErrNotFound("визовый процесс", id)
			}
			jobApplicantID = process.JobApplicantID
			if process.ClosedOn != nil {
				return models.NewErrPreconditionBlocked(models.ReasonVisaProcessNotAllowed, "визовый процесс закрыт")
			}
			if process.CurrentStage == nil {
				return models.NewErrNotFound("этап", process.CurrentStageID)
			}
			stageName := process.CurrentStage.StageName
			completed, ok := i.pipelines.Definitions().CompletedStatuses(process.Pipeline, stageName)
			if !ok {
				return models.NewErrStageNotFound(process.Pipeline, stageName)
			}
			if len(completed) != 0 && !funk.ContainsString(completed, status) {
				return models.NewErrPreconditionBlocked(models.ReasonVisaStageNotCompleted,
					"этап '%s' не завершен: статус '%s', ожидается один из: %s", stageName, status, strings.Join(completed, ", "))
			}
			err = visaStore.AddStageRecord(dbmodels.VisaStageRecord{
				VisaProcessID: process.ID,
				StageName:     stageName,
				StageDate:     stageDate,
				Status:        status,
				Comment:       request.Comment,
			})
			if err != nil {
				return errors.Wrap(err, "ошибка сохранения этапа визового процесса")
			}

			next, err := i.pipelines.WithTx(tx).NextStage(process.Pipeline, process.CurrentStageID)
			if err != nil {
				return err
			}
			if next == nil {
				return visaStore.Update(process.ID, map[string]interface{}{"closed_on": stageDate})
			}
			err = visaStore.Update(process.ID, map[string]interface{}{"current_stage_id": next.ID})
			if err != nil {
				return errors.Wrap(err, "ошибка перевода визового процесса")
			}
			outcome, err = i.syncJobApplicant(tx, process.JobApplicantID, process.Pipeline, next.StageName, userID,
				fmt.Sprintf("Этап визы '%s' завершен (%s)", stageName, status))
			return err
		})
	})
	if err != nil {
		i.engine.ReportRejection(jobApplicantID, err)
		return visaapimodels.VisaProcessView{}, err
	}
	i.engine.Report(outcome)
	return i.GetByID(id)
}

// syncJobApplicant кандидат следует за визовым процессом, даже если его воронку поменяли вручную
func (i impl) syncJobApplicant(tx *gorm.DB, jobApplicantID, pipelineName, stageName, userID, description string) (stagetransition.Outcome, error) {
	rec, err := jobapplicantstore.NewInstance(tx).GetByID(jobApplicantID)
	if err != nil {
		return stagetransition.Outcome{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return stagetransition.Outcome{}, models.NewErrNotFound("кандидат", jobApplicantID)
	}
	events := []stagetransition.Event{stagetransition.MoveToStage{StageName: stageName}}
	if rec.GetPipeline() != pipelineName {
		events = append([]stagetransition.Event{stagetransition.AssignPipeline{PipelineName: pipelineName}}, events...)
	}
	return i.engine.ApplyTx(tx, *rec, userID, description, events...)
}

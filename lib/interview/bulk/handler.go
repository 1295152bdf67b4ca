package interviewbulk

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	interviewhandler "recruitment-backend/lib/interview"
	interviewroundstore "recruitment-backend/lib/interview-round/store"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	"recruitment-backend/lib/metrics"
	stagetransition "recruitment-backend/lib/stage-transition"
	"recruitment-backend/lib/utils/helpers"
	initchecker "recruitment-backend/lib/utils/init-checker"
	"recruitment-backend/lib/utils/lock"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	// CreateBulk собеседование каждому кандидату с общими раундом, датой и временем.
	// Отказ по кандидату попадает в отчет, ошибка возвращается только при неверных общих параметрах.
	CreateBulk(ctx context.Context, request interviewapimodels.BulkRequest, userID string) (interviewapimodels.BulkReport, error)
	SelectionContext(jobApplicantIDs []string) (interviewapimodels.SelectionContext, error)
}

const defaultLockWait = 5 * time.Second

var Instance Provider

func NewHandler(lockWait time.Duration) {
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	initchecker.CheckInit(
		"db", db.DB,
		"interview", interviewhandler.Instance,
		"stagetransition", stagetransition.Instance,
	)
	Instance = NewInstance(db.DB, interviewhandler.Instance, stagetransition.Instance, lockWait)
}

func NewInstance(DB *gorm.DB, interviews interviewhandler.Provider, engine stagetransition.Provider, lockWait time.Duration) Provider {
	return impl{
		db:         DB,
		interviews: interviews,
		engine:     engine,
		rounds:     interviewroundstore.NewInstance(DB),
		candidates: jobapplicantstore.NewInstance(DB),
		lockWait:   lockWait,
	}
}

type impl struct {
	db         *gorm.DB
	interviews interviewhandler.Provider
	engine     stagetransition.Provider
	rounds     interviewroundstore.Provider
	candidates jobapplicantstore.Provider
	lockWait   time.Duration
}

func (i impl) CreateBulk(ctx context.Context, request interviewapimodels.BulkRequest, userID string) (interviewapimodels.BulkReport, error) {
	ids := helpers.UniqueIDs(request.JobApplicantIDs)
	if len(ids) == 0 {
		return interviewapimodels.BulkReport{}, models.NewErrValidation(models.ReasonInvalidParameter, "не выбраны кандидаты")
	}
	schedule, err := request.GetSchedule()
	if err != nil {
		return interviewapimodels.BulkReport{}, models.NewErrValidation(models.ReasonInvalidParameter, "%s", err.Error())
	}
	round, err := i.rounds.GetByID(request.InterviewRoundID)
	if err != nil {
		return interviewapimodels.BulkReport{}, errors.Wrap(err, "ошибка получения раунда собеседования")
	}
	if round == nil {
		return interviewapimodels.BulkReport{}, models.NewErrNotFound("раунд собеседования", request.InterviewRoundID)
	}
	level := request.InterviewLevel
	if level == "" {
		level = round.InterviewLevel
	}
	if !level.IsValid() {
		return interviewapimodels.BulkReport{}, models.NewErrValidation(models.ReasonInvalidParameter, "неизвестный уровень собеседования: %s", level)
	}

	logger := log.
		WithField("interview_round_id", round.ID).
		WithField("candidates", len(ids))
	report := interviewapimodels.BulkReport{
		RoundName: round.RoundName,
		Created:   []interviewapimodels.BulkCreated{},
		Failed:    []interviewapimodels.BulkFailure{},
	}
	for _, jobApplicantID := range ids {
		interview, err := i.createOne(ctx, jobApplicantID, *round, level, schedule, userID)
		if err != nil {
			report.Failed = append(report.Failed, failure(jobApplicantID, err))
			continue
		}
		report.Created = append(report.Created, interviewapimodels.BulkCreated{
			JobApplicantID: jobApplicantID,
			InterviewID:    interview.ID,
		})
	}
	report.CreatedCount = len(report.Created)
	report.FailedCount = len(report.Failed)
	metrics.IncreaseBulkInterviewsMetric(metrics.BulkOutcomeCreated, report.CreatedCount)
	metrics.IncreaseBulkInterviewsMetric(metrics.BulkOutcomeFailed, report.FailedCount)
	logger.
		WithField("created", report.CreatedCount).
		WithField("failed", report.FailedCount).
		Info("массовое назначение собеседований завершено")
	return report, nil
}

// createOne проверка и создание для одного кандидата атомарны: повторная проверка идет в той же транзакции
func (i impl) createOne(ctx context.Context, jobApplicantID string, round dbmodels.InterviewRound, level models.InterviewLevel,
	schedule interviewapimodels.Schedule, userID string) (*dbmodels.Interview, error) {
	var rec *dbmodels.Interview
	var entered, outcome *stagetransition.Outcome
	err := lock.WithDelay(ctx, lock.JobApplicantKey(jobApplicantID), i.lockWait, func() error {
		return stagetransition.RetryOnConflict(func() error {
			return i.db.Transaction(func(tx *gorm.DB) error {
				var err error
				entered, err = i.enterDefaultPipelineTx(tx, jobApplicantID, userID)
				if err != nil {
					return err
				}
				rec, outcome, err = i.interviews.CreateTx(tx, jobApplicantID, round, level, schedule, userID)
				return err
			})
		})
	})
	if err != nil {
		log.
			WithField("job_applicant_id", jobApplicantID).
			WithField("reason", models.ReasonOf(err)).
			WithError(err).
			Warn("собеседование кандидату не назначено")
		return nil, err
	}
	if entered != nil {
		i.engine.Report(*entered)
	}
	rec.InterviewRound = &round
	i.interviews.Scheduled(*rec, outcome)
	return rec, nil
}

// enterDefaultPipelineTx кандидат вне воронки ставится на первый этап Interviews до назначения собеседования
func (i impl) enterDefaultPipelineTx(tx *gorm.DB, jobApplicantID, userID string) (*stagetransition.Outcome, error) {
	candidate, err := jobapplicantstore.NewInstance(tx).GetByID(jobApplicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return nil, models.NewErrNotFound("кандидат", jobApplicantID)
	}
	if candidate.Pipeline != nil {
		return nil, nil
	}
	outcome, err := i.engine.ApplyTx(tx, *candidate, userID, "Кандидат добавлен в воронку при массовом назначении собеседований",
		stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func failure(jobApplicantID string, err error) interviewapimodels.BulkFailure {
	reason := models.ReasonOf(err)
	switch {
	case errors.Is(err, lock.ErrLockTimeout):
		reason = "ConcurrencyConflict"
	case reason == "":
		reason = models.ReasonInternalError
	}
	return interviewapimodels.BulkFailure{
		JobApplicantID: jobApplicantID,
		Reason:         reason,
		Message:        err.Error(),
	}
}

func (i impl) SelectionContext(jobApplicantIDs []string) (interviewapimodels.SelectionContext, error) {
	ids := helpers.UniqueIDs(jobApplicantIDs)
	if len(ids) == 0 {
		return interviewapimodels.SelectionContext{}, models.NewErrValidation(models.ReasonInvalidParameter, "не выбраны кандидаты")
	}
	list, err := i.candidates.GetByIDs(ids)
	if err != nil {
		return interviewapimodels.SelectionContext{}, errors.Wrap(err, "ошибка получения кандидатов")
	}
	byID := make(map[string]dbmodels.JobApplicant, len(list))
	for _, rec := range list {
		byID[rec.ID] = rec
	}
	result := interviewapimodels.SelectionContext{
		JobApplicants: []jobapplicantapimodels.JobApplicantView{},
	}
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			continue
		}
		if rec.DemandID == "" {
			return interviewapimodels.SelectionContext{}, models.NewErrValidation(models.ReasonSelectionMismatch,
				"у кандидата %s не указана заявка, все выбранные должны относиться к одной заявке и позиции", id)
		}
		if len(result.JobApplicants) == 0 {
			result.DemandID = rec.DemandID
			result.DemandPosition = rec.DemandPosition
		} else if rec.DemandID != result.DemandID || rec.DemandPosition != result.DemandPosition {
			return interviewapimodels.SelectionContext{}, models.NewErrValidation(models.ReasonSelectionMismatch,
				"все выбранные кандидаты должны относиться к одной заявке и позиции, кандидат %s отличается", id)
		}
		result.JobApplicants = append(result.JobApplicants, jobapplicantapimodels.JobApplicantConvert(rec))
	}
	if len(result.JobApplicants) == 0 {
		return interviewapimodels.SelectionContext{}, models.NewErrValidation(models.ReasonInvalidParameter, "среди выбранных нет существующих кандидатов")
	}
	result.Count = len(result.JobApplicants)
	return result, nil
}

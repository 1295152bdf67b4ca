package interviewsync

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	interviewstore "recruitment-backend/lib/interview/store"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	"recruitment-backend/lib/pipeline"
	stagetransition "recruitment-backend/lib/stage-transition"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	CheckEligibilityTx(tx *gorm.DB, candidate dbmodels.JobApplicant, interviewRoundID string, level models.InterviewLevel) error
	CheckResultChangeTx(tx *gorm.DB, interview dbmodels.Interview, result models.InterviewResult) (bool, error)
	// OnResultSettledTx переводит кандидата по установленному результату.
	// Отказ перехода не отменяет сохранение результата и возвращается в ResultSync.Blocked.
	OnResultSettledTx(tx *gorm.DB, interview dbmodels.Interview, userID string) (ResultSync, error)
	// OnScheduledTx продвигает кандидата при назначении собеседования, если это включено
	OnScheduledTx(tx *gorm.DB, candidate dbmodels.JobApplicant, level models.InterviewLevel, userID string) (*stagetransition.Outcome, error)
}

// ResultSync итог синхронизации результата: переход, отказ перехода или ничего
type ResultSync struct {
	Outcome *stagetransition.Outcome
	Blocked error
}

type Options struct {
	AdvanceStageOnSchedule bool
}

var Instance Provider

func NewHandler(options Options) {
	Instance = NewInstance(stagetransition.Instance, pipeline.Instance, options)
}

func NewInstance(engine stagetransition.Provider, pipelines pipeline.Provider, options Options) Provider {
	return impl{
		engine:    engine,
		pipelines: pipelines,
		options:   options,
	}
}

type impl struct {
	engine    stagetransition.Provider
	pipelines pipeline.Provider
	options   Options
}

func (i impl) CheckEligibilityTx(tx *gorm.DB, candidate dbmodels.JobApplicant, interviewRoundID string, level models.InterviewLevel) error {
	return CheckEligibility(interviewstore.NewInstance(tx), i.pipelines.WithTx(tx), candidate, interviewRoundID, level)
}

func (i impl) CheckResultChangeTx(tx *gorm.DB, interview dbmodels.Interview, result models.InterviewResult) (bool, error) {
	return CheckResultChange(interviewstore.NewInstance(tx), interview, result)
}

func (i impl) OnResultSettledTx(tx *gorm.DB, interview dbmodels.Interview, userID string) (ResultSync, error) {
	events := ResultEvents(interview.InterviewLevel, interview.Result)
	if len(events) == 0 {
		return ResultSync{}, nil
	}
	candidate, err := i.loadCandidate(tx, interview.JobApplicantID)
	if err != nil {
		return ResultSync{}, err
	}
	if candidate.Pipeline == nil || candidate.CurrentStageID == nil {
		log.
			WithField("job_applicant_id", candidate.ID).
			WithField("interview_id", interview.ID).
			Info("кандидат вне воронки, результат собеседования не меняет этап")
		return ResultSync{}, nil
	}
	description := fmt.Sprintf("Собеседование (%s): результат %s", interview.InterviewLevel, interview.Result)
	outcome, err := i.engine.ApplyTx(tx, *candidate, userID, description, events...)
	if err != nil {
		if models.IsTransitionRejection(err) {
			log.
				WithField("job_applicant_id", candidate.ID).
				WithField("interview_id", interview.ID).
				WithField("pipeline", candidate.GetPipeline()).
				WithField("reason", models.ReasonOf(err)).
				Warn("результат собеседования сохранен без смены этапа")
			return ResultSync{Blocked: err}, nil
		}
		return ResultSync{}, err
	}
	return ResultSync{Outcome: &outcome}, nil
}

func (i impl) OnScheduledTx(tx *gorm.DB, candidate dbmodels.JobApplicant, level models.InterviewLevel, userID string) (*stagetransition.Outcome, error) {
	if !i.options.AdvanceStageOnSchedule {
		return nil, nil
	}
	events, err := ScheduleEvents(i.pipelines.WithTx(tx), candidate, level)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	outcome, err := i.engine.ApplyTx(tx, candidate, userID, "Назначено собеседование", events...)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (i impl) loadCandidate(tx *gorm.DB, jobApplicantID string) (*dbmodels.JobApplicant, error) {
	candidate, err := jobapplicantstore.NewInstance(tx).GetByID(jobApplicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return nil, models.NewErrNotFound("кандидат", jobApplicantID)
	}
	return candidate, nil
}

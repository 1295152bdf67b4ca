package interview

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"recruitment-backend/db"
	pdfexport "recruitment-backend/lib/export/pdf"
	interviewdraft "recruitment-backend/lib/interview-draft"
	interviewroundstore "recruitment-backend/lib/interview-round/store"
	interviewsync "recruitment-backend/lib/interview-sync"
	interviewstore "recruitment-backend/lib/interview/store"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	"recruitment-backend/lib/metrics"
	"recruitment-backend/lib/smtp"
	stagetransition "recruitment-backend/lib/stage-transition"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(data interviewapimodels.InterviewData, userID string) (interviewapimodels.InterviewView, error)
	GetByID(id string) (interviewapimodels.InterviewView, error)
	List(filter interviewapimodels.ListFilter) ([]interviewapimodels.InterviewView, error)
	SetResult(id string, request interviewapimodels.ResultRequest, userID string) (interviewapimodels.InterviewView, error)
	Cancel(id, userID string) error
	Letter(id string) ([]byte, error)
	// CreateTx проверка кандидата и создание собеседования атомарно в транзакции вызывающего
	CreateTx(tx *gorm.DB, jobApplicantID string, round dbmodels.InterviewRound, level models.InterviewLevel,
		schedule interviewapimodels.Schedule, userID string) (*dbmodels.Interview, *stagetransition.Outcome, error)
	// Scheduled действия после фиксации: метрики перехода и уведомление кандидата
	Scheduled(interview dbmodels.Interview, outcome *stagetransition.Outcome)
}

type Options struct {
	NotifyOnSchedule bool
	CompanyName      string
}

var Instance Provider

func NewHandler(options Options) {
	Instance = NewInstance(db.DB, interviewsync.Instance, stagetransition.Instance, interviewdraft.Instance, smtp.Instance, options)
}

func NewInstance(DB *gorm.DB, sync interviewsync.Provider, engine stagetransition.Provider, drafts interviewdraft.Provider,
	mail smtp.Provider, options Options) Provider {
	return impl{
		db:      DB,
		store:   interviewstore.NewInstance(DB),
		rounds:  interviewroundstore.NewInstance(DB),
		sync:    sync,
		engine:  engine,
		drafts:  drafts,
		history: jobapplicanthistoryhandler.NewInstance(DB),
		mail:    mail,
		options: options,
	}
}

type impl struct {
	db      *gorm.DB
	store   interviewstore.Provider
	rounds  interviewroundstore.Provider
	sync    interviewsync.Provider
	engine  stagetransition.Provider
	drafts  interviewdraft.Provider
	history jobapplicanthistoryhandler.Provider
	mail    smtp.Provider
	options Options
}

func (i impl) getLogger(interviewID, jobApplicantID string) *log.Entry {
	logger := log.WithField("interview_id", interviewID)
	if jobApplicantID != "" {
		logger = logger.WithField("job_applicant_id", jobApplicantID)
	}
	return logger
}

func (i impl) Create(data interviewapimodels.InterviewData, userID string) (interviewapimodels.InterviewView, error) {
	schedule, err := data.GetSchedule()
	if err != nil {
		return interviewapimodels.InterviewView{}, models.NewErrValidation(models.ReasonInvalidParameter, "%s", err.Error())
	}
	round, err := i.getRound(data.InterviewRoundID)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	level := data.InterviewLevel
	if level == "" {
		level = round.InterviewLevel
	}
	jobApplicantID := data.JobApplicantID
	var rec *dbmodels.Interview
	var outcome *stagetransition.Outcome
	err = stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			if data.DraftToken != "" {
				draft, err := i.drafts.Resolve(tx, data.DraftToken)
				if err != nil {
					return err
				}
				if jobApplicantID != "" && jobApplicantID != draft.JobApplicantID {
					return models.NewErrValidation(models.ReasonInvalidParameter, "кандидат не совпадает с черновиком собеседования")
				}
				jobApplicantID = draft.JobApplicantID
			}
			var err error
			rec, outcome, err = i.CreateTx(tx, jobApplicantID, *round, level, schedule, userID)
			if err != nil {
				return err
			}
			if data.DraftToken != "" {
				return i.drafts.Delete(tx, data.DraftToken)
			}
			return nil
		})
	})
	if err != nil {
		i.reportRejection(jobApplicantID, err)
		return interviewapimodels.InterviewView{}, err
	}
	rec.InterviewRound = round
	i.Scheduled(*rec, outcome)
	return interviewapimodels.InterviewConvert(*rec), nil
}

func (i impl) CreateTx(tx *gorm.DB, jobApplicantID string, round dbmodels.InterviewRound, level models.InterviewLevel,
	schedule interviewapimodels.Schedule, userID string) (*dbmodels.Interview, *stagetransition.Outcome, error) {
	if !level.IsValid() {
		return nil, nil, models.NewErrValidation(models.ReasonInvalidParameter, "неизвестный уровень собеседования: %s", level)
	}
	candidateStore := jobapplicantstore.NewInstance(tx)
	candidate, err := candidateStore.GetByID(jobApplicantID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return nil, nil, models.NewErrNotFound("кандидат", jobApplicantID)
	}
	err = i.sync.CheckEligibilityTx(tx, *candidate, round.ID, level)
	if err != nil {
		return nil, nil, err
	}
	if err = candidateStore.Touch(candidate.ID, candidate.Version); err != nil {
		return nil, nil, err
	}
	candidate.Version++

	rec := dbmodels.Interview{
		JobApplicantID:   candidate.ID,
		InterviewRoundID: round.ID,
		InterviewLevel:   level,
		InterviewDate:    datatypes.Date(schedule.Date),
		StartTime:        schedule.StartTime,
		EndTime:          schedule.EndTime,
		TotalTime:        TotalTime(schedule.StartTime, schedule.EndTime),
	}
	rec.ID, err = interviewstore.NewInstance(tx).Create(rec)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка создания собеседования")
	}
	rec.JobApplicant = candidate

	changes := dbmodels.ApplicantChanges{
		Description: fmt.Sprintf("Назначено собеседование %s на %s", round.RoundName, schedule.Date.Format(interviewapimodels.DateFormat)),
		Data: []dbmodels.ApplicantChange{
			{Field: "interview", NewValue: rec.ID},
		},
	}
	err = i.history.SaveTx(tx, candidate.ID, userID, dbmodels.HistoryTypeInterview, changes)
	if err != nil {
		return nil, nil, err
	}
	outcome, err := i.sync.OnScheduledTx(tx, *candidate, level, userID)
	if err != nil {
		return nil, nil, err
	}
	return &rec, outcome, nil
}

func (i impl) Scheduled(interview dbmodels.Interview, outcome *stagetransition.Outcome) {
	if outcome != nil {
		i.engine.Report(*outcome)
	}
	i.getLogger(interview.ID, interview.JobApplicantID).Info("собеседование назначено")
	if i.options.NotifyOnSchedule {
		i.notify(interview)
	}
}

func (i impl) GetByID(id string) (interviewapimodels.InterviewView, error) {
	rec, err := i.getInterview(i.db, id)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	return interviewapimodels.InterviewConvert(*rec), nil
}

func (i impl) List(filter interviewapimodels.ListFilter) ([]interviewapimodels.InterviewView, error) {
	list, err := i.store.List(filter.ToDB())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка собеседований")
	}
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.InterviewConvert(rec))
	}
	return result, nil
}

func (i impl) SetResult(id string, request interviewapimodels.ResultRequest, userID string) (interviewapimodels.InterviewView, error) {
	var rec *dbmodels.Interview
	var synced interviewsync.ResultSync
	err := stagetransition.RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			var err error
			rec, err = i.getInterview(tx, id)
			if err != nil {
				return err
			}
			apply, err := i.sync.CheckResultChangeTx(tx, *rec, request.Result)
			if err != nil {
				return err
			}
			synced = interviewsync.ResultSync{}
			if !apply {
				return nil
			}
			candidateStore := jobapplicantstore.NewInstance(tx)
			candidate, err := candidateStore.GetByID(rec.JobApplicantID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if candidate == nil {
				return models.NewErrNotFound("кандидат", rec.JobApplicantID)
			}
			if err = candidateStore.Touch(candidate.ID, candidate.Version); err != nil {
				return err
			}

			now := time.Now()
			oldResult := rec.Result
			updMap := map[string]interface{}{
				"result":      request.Result,
				"result_date": now,
			}
			if request.Feedback != "" {
				updMap["feedback"] = request.Feedback
				rec.Feedback = request.Feedback
			}
			if err = interviewstore.NewInstance(tx).Update(rec.ID, updMap); err != nil {
				return errors.Wrap(err, "ошибка сохранения результата собеседования")
			}
			rec.Result = request.Result
			rec.ResultDate = &now

			changes := dbmodels.ApplicantChanges{
				Description: fmt.Sprintf("Результат собеседования (%s)", rec.InterviewLevel),
				Data: []dbmodels.ApplicantChange{
					{Field: "result", OldValue: oldResult, NewValue: rec.Result},
				},
			}
			err = i.history.SaveTx(tx, rec.JobApplicantID, userID, dbmodels.HistoryTypeInterviewResult, changes)
			if err != nil {
				return err
			}
			synced, err = i.sync.OnResultSettledTx(tx, *rec, userID)
			return err
		})
	})
	if err != nil {
		jobApplicantID := ""
		if rec != nil {
			jobApplicantID = rec.JobApplicantID
		}
		i.reportRejection(jobApplicantID, err)
		return interviewapimodels.InterviewView{}, err
	}
	if synced.Outcome != nil {
		i.engine.Report(*synced.Outcome)
	}
	view := interviewapimodels.InterviewConvert(*rec)
	if synced.Blocked != nil {
		i.reportRejection(rec.JobApplicantID, synced.Blocked)
		view.StageBlockedReason = models.ReasonOf(synced.Blocked)
		view.StageBlockedMessage = synced.Blocked.Error()
	}
	i.getLogger(rec.ID, rec.JobApplicantID).
		WithField("result", rec.Result).
		Info("результат собеседования сохранен")
	return view, nil
}

func (i impl) Cancel(id, userID string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec, err := i.getInterview(tx, id)
		if err != nil {
			return err
		}
		if rec.IsCancelled {
			return nil
		}
		if rec.Result.IsSettled() {
			return models.NewErrPreconditionBlocked(models.ReasonResultAlreadySettled,
				"у собеседования уже есть результат %s, отмена невозможна", rec.Result)
		}
		err = interviewstore.NewInstance(tx).Update(rec.ID, map[string]interface{}{"is_cancelled": true})
		if err != nil {
			return errors.Wrap(err, "ошибка отмены собеседования")
		}
		changes := dbmodels.ApplicantChanges{
			Description: "Собеседование отменено",
			Data: []dbmodels.ApplicantChange{
				{Field: "interview", OldValue: rec.ID},
			},
		}
		return i.history.SaveTx(tx, rec.JobApplicantID, userID, dbmodels.HistoryTypeInterview, changes)
	})
}

func (i impl) Letter(id string) ([]byte, error) {
	rec, err := i.getInterview(i.db, id)
	if err != nil {
		return nil, err
	}
	candidate, err := jobapplicantstore.NewInstance(i.db).GetByID(rec.JobApplicantID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return nil, models.NewErrNotFound("кандидат", rec.JobApplicantID)
	}
	body, err := pdfexport.GenerateInterviewLetter(i.letterData(*rec, *candidate))
	if err != nil {
		i.getLogger(rec.ID, rec.JobApplicantID).WithError(err).Error("ошибка формирования письма-приглашения")
		return nil, errors.New("ошибка формирования письма-приглашения")
	}
	return body, nil
}

func (i impl) letterData(rec dbmodels.Interview, candidate dbmodels.JobApplicant) pdfexport.InterviewLetterData {
	view := interviewapimodels.InterviewConvert(rec)
	data := pdfexport.InterviewLetterData{
		CompanyName:    i.options.CompanyName,
		DemandPosition: candidate.DemandPosition,
		JobOpening:     candidate.JobOpening,
		RoundName:      view.RoundName,
		InterviewLevel: string(rec.InterviewLevel),
		InterviewDate:  view.InterviewDate,
		StartTime:      view.StartTime,
		EndTime:        view.EndTime,
	}
	if candidate.Applicant != nil {
		data.ApplicantName = candidate.Applicant.GetFullName()
		data.CNIC = candidate.Applicant.CNIC
		data.PassportNumber = candidate.Applicant.GetPassportNumber()
	}
	return data
}

func (i impl) notify(rec dbmodels.Interview) {
	if i.mail == nil || !i.mail.IsConfigured() {
		return
	}
	logger := i.getLogger(rec.ID, rec.JobApplicantID)
	candidate := rec.JobApplicant
	if candidate == nil || candidate.Applicant == nil || candidate.Applicant.Email == "" {
		logger.Info("у кандидата не указан email, уведомление не отправлено")
		return
	}
	view := interviewapimodels.InterviewConvert(rec)
	message := fmt.Sprintf("Dear %s,\r\n\r\nYour %s interview is scheduled on %s %s.\r\n\r\n%s",
		candidate.Applicant.GetFullName(), view.RoundName, view.InterviewDate, view.StartTime, i.options.CompanyName)
	if err := i.mail.SendEMail(candidate.Applicant.Email, "Interview scheduled", message); err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления о собеседовании")
	}
}

func (i impl) reportRejection(jobApplicantID string, err error) {
	reason := models.ReasonOf(err)
	metrics.IncreaseTransitionRejectionsMetric(string(reason))
	logger := log.
		WithField("job_applicant_id", jobApplicantID).
		WithError(err)
	if reason == "" {
		logger.Error("ошибка обработки собеседования")
		return
	}
	logger.WithField("reason", reason).Warn("операция с собеседованием отклонена")
}

func (i impl) getRound(id string) (*dbmodels.InterviewRound, error) {
	round, err := i.rounds.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения раунда собеседования")
	}
	if round == nil {
		return nil, models.NewErrNotFound("раунд собеседования", id)
	}
	return round, nil
}

func (i impl) getInterview(tx *gorm.DB, id string) (*dbmodels.Interview, error) {
	rec, err := interviewstore.NewInstance(tx).GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения собеседования")
	}
	if rec == nil {
		return nil, models.NewErrNotFound("собеседование", id)
	}
	return rec, nil
}

package stagetransition

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	"recruitment-backend/lib/metrics"
	"recruitment-backend/lib/pipeline"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	// Apply загружает кандидата, применяет события и сохраняет результат в одной транзакции
	Apply(jobApplicantID, userID string, events ...Event) (*dbmodels.JobApplicant, error)
	// ApplyTx применяет события к уже загруженной записи в транзакции вызывающего
	ApplyTx(tx *gorm.DB, rec dbmodels.JobApplicant, userID, description string, events ...Event) (Outcome, error)
	// Report метрики и лог по результату, вызывается после фиксации транзакции
	Report(outcome Outcome)
	ReportRejection(jobApplicantID string, err error)
}

type Options struct {
	TrackStageDates bool
}

var Instance Provider

func NewHandler(options Options) {
	Instance = NewInstance(db.DB, pipeline.Instance, options)
}

func NewInstance(DB *gorm.DB, pipelines pipeline.Provider, options Options) Provider {
	return impl{
		db:        DB,
		pipelines: pipelines,
		history:   jobapplicanthistoryhandler.NewInstance(DB),
		options:   options,
	}
}

type impl struct {
	db        *gorm.DB
	pipelines pipeline.Provider
	history   jobapplicanthistoryhandler.Provider
	options   Options
}

// Outcome состояние кандидата до и после применения событий
type Outcome struct {
	Before dbmodels.JobApplicant
	After  dbmodels.JobApplicant
	Events []Event
}

func (o Outcome) Changed() bool {
	return o.Before.GetPipeline() != o.After.GetPipeline() ||
		o.Before.GetCurrentStageID() != o.After.GetCurrentStageID() ||
		o.Before.ReadyForPipeline != o.After.ReadyForPipeline
}

func (o Outcome) StageChanged() bool {
	return o.Before.GetPipeline() != o.After.GetPipeline() ||
		o.Before.GetCurrentStageID() != o.After.GetCurrentStageID()
}

func (i impl) Apply(jobApplicantID, userID string, events ...Event) (*dbmodels.JobApplicant, error) {
	var outcome Outcome
	err := RetryOnConflict(func() error {
		return i.db.Transaction(func(tx *gorm.DB) error {
			rec, err := jobapplicantstore.NewInstance(tx).GetByID(jobApplicantID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения кандидата")
			}
			if rec == nil {
				return models.NewErrNotFound("кандидат", jobApplicantID)
			}
			outcome, err = i.ApplyTx(tx, *rec, userID, "", events...)
			return err
		})
	})
	if err != nil {
		i.ReportRejection(jobApplicantID, err)
		return nil, err
	}
	i.Report(outcome)
	return &outcome.After, nil
}

func (i impl) ApplyTx(tx *gorm.DB, rec dbmodels.JobApplicant, userID, description string, events ...Event) (Outcome, error) {
	registry := i.pipelines.WithTx(tx)
	outcome := Outcome{
		Before: rec,
		After:  rec,
		Events: events,
	}
	now := time.Now()
	var err error
	for _, event := range events {
		outcome.After, err = Transition(registry, outcome.After, event)
		if err != nil {
			return Outcome{}, err
		}
		// промежуточный этап тоже проставляет дату: Company Selected перед переводом в Offer Letter
		if i.options.TrackStageDates {
			stampStageDates(&outcome.After, now)
		}
	}
	if !outcome.Changed() {
		return outcome, nil
	}
	updMap := map[string]interface{}{
		"pipeline":                   outcome.After.Pipeline,
		"current_stage_id":           outcome.After.CurrentStageID,
		"ready_for_pipeline":         outcome.After.ReadyForPipeline,
		"company_selection_date":     outcome.After.CompanySelectionDate,
		"offer_letter_received_date": outcome.After.OfferLetterReceivedDate,
		"offer_letter_accepted_date": outcome.After.OfferLetterAcceptedDate,
	}
	err = jobapplicantstore.NewInstance(tx).UpdateVersioned(rec.ID, rec.Version, updMap)
	if err != nil {
		return Outcome{}, err
	}
	outcome.After.Version = rec.Version + 1

	if description == "" {
		description = describeEvents(events)
	}
	changes, err := collectChanges(registry, outcome)
	if err != nil {
		return Outcome{}, err
	}
	changes.Description = description
	err = i.history.SaveTx(tx, rec.ID, userID, historyAction(outcome), changes)
	if err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

func (i impl) Report(outcome Outcome) {
	if !outcome.StageChanged() || outcome.After.CurrentStage == nil {
		return
	}
	metrics.IncreaseStageTransitionsMetric(outcome.After.GetPipeline(), outcome.After.CurrentStage.StageName)
	log.
		WithField("job_applicant_id", outcome.After.ID).
		WithField("pipeline", outcome.After.GetPipeline()).
		WithField("stage", outcome.After.CurrentStage.StageName).
		Info("кандидат переведен на этап")
}

func (i impl) ReportRejection(jobApplicantID string, err error) {
	reason := models.ReasonOf(err)
	metrics.IncreaseTransitionRejectionsMetric(string(reason))
	logger := log.
		WithField("job_applicant_id", jobApplicantID).
		WithError(err)
	if reason == "" {
		logger.Error("ошибка перевода кандидата")
		return
	}
	logger.
		WithField("reason", reason).
		Warn("перевод кандидата отклонен")
}

// stampStageDates даты этапов проставляются один раз и не перезаписываются
func stampStageDates(rec *dbmodels.JobApplicant, now time.Time) {
	if rec.CurrentStage == nil {
		return
	}
	switch rec.CurrentStage.StageName {
	case models.StageCompanySelected:
		if rec.CompanySelectionDate == nil {
			rec.CompanySelectionDate = &now
		}
	case models.StageOfferLetterReceived:
		if rec.OfferLetterReceivedDate == nil {
			rec.OfferLetterReceivedDate = &now
		}
	case models.StageOfferLetterAccepted:
		if rec.OfferLetterReceivedDate == nil {
			rec.OfferLetterReceivedDate = &now
		}
		if rec.OfferLetterAcceptedDate == nil {
			rec.OfferLetterAcceptedDate = &now
		}
	}
}

func describeEvents(events []Event) string {
	names := make([]string, 0, len(events))
	for _, event := range events {
		names = append(names, event.String())
	}
	return strings.Join(names, ", ")
}

func historyAction(outcome Outcome) dbmodels.ActionType {
	switch {
	case outcome.Before.GetPipeline() != outcome.After.GetPipeline():
		return dbmodels.HistoryTypePipelineChange
	case outcome.StageChanged():
		return dbmodels.HistoryTypeStageChange
	}
	return dbmodels.HistoryTypeUpdate
}

func collectChanges(registry pipeline.Registry, outcome Outcome) (dbmodels.ApplicantChanges, error) {
	changes := dbmodels.ApplicantChanges{Data: []dbmodels.ApplicantChange{}}
	before, after := outcome.Before, outcome.After
	if before.GetPipeline() != after.GetPipeline() {
		changes.Data = append(changes.Data, dbmodels.ApplicantChange{
			Field:    "pipeline",
			OldValue: before.GetPipeline(),
			NewValue: after.GetPipeline(),
		})
	}
	if before.GetCurrentStageID() != after.GetCurrentStageID() {
		oldName, err := stageName(registry, before)
		if err != nil {
			return changes, err
		}
		newName, err := stageName(registry, after)
		if err != nil {
			return changes, err
		}
		changes.Data = append(changes.Data, dbmodels.ApplicantChange{
			Field:    "current_stage",
			OldValue: oldName,
			NewValue: newName,
		})
	}
	if before.ReadyForPipeline != after.ReadyForPipeline {
		changes.Data = append(changes.Data, dbmodels.ApplicantChange{
			Field:    "ready_for_pipeline",
			OldValue: before.ReadyForPipeline,
			NewValue: after.ReadyForPipeline,
		})
	}
	return changes, nil
}

func stageName(registry pipeline.Registry, rec dbmodels.JobApplicant) (string, error) {
	if rec.CurrentStageID == nil {
		return "", nil
	}
	if rec.CurrentStage != nil && rec.CurrentStage.ID == *rec.CurrentStageID {
		return rec.CurrentStage.StageName, nil
	}
	stage, err := registry.StageByID(*rec.CurrentStageID)
	if err != nil {
		return "", err
	}
	return stage.StageName, nil
}

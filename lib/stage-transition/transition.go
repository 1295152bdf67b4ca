package stagetransition

import (
	"github.com/pkg/errors"
	"recruitment-backend/lib/pipeline"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

// Transition вычисляет состояние кандидата после события. Исходная запись не изменяется,
// при отказе возвращается ошибка и прежнее состояние.
func Transition(registry pipeline.Registry, rec dbmodels.JobApplicant, event Event) (dbmodels.JobApplicant, error) {
	if rec.ConvertedToApplication {
		return rec, models.NewErrInvalidTransition(models.ReasonApplicantLocked,
			"кандидат %s переведен в заявку, изменение воронки недоступно", rec.ID)
	}
	next := rec
	var err error
	switch e := event.(type) {
	case AssignPipeline:
		next, err = assignPipeline(registry, next, e.PipelineName)
	case ClearPipeline:
		next = clearPipeline(next)
	case MoveToStage:
		next, err = moveToStage(registry, next, e.StageName)
	case ReadyForPipelineOn:
		next, err = assignPipeline(registry, next, models.PipelineInterviews)
		next.ReadyForPipeline = true
	case ReadyForPipelineOff:
		next = clearPipeline(next)
		next.ReadyForPipeline = false
	default:
		return rec, errors.Errorf("неизвестное событие %T", event)
	}
	if err != nil {
		return rec, err
	}
	if err = checkInvariant(registry, next); err != nil {
		return rec, err
	}
	return next, nil
}

func assignPipeline(registry pipeline.Registry, rec dbmodels.JobApplicant, pipelineName string) (dbmodels.JobApplicant, error) {
	first, err := registry.FirstStage(pipelineName)
	if err != nil {
		return rec, err
	}
	name := pipelineName
	stageID := first.ID
	rec.Pipeline = &name
	rec.CurrentStageID = &stageID
	rec.CurrentStage = first
	return rec, nil
}

func clearPipeline(rec dbmodels.JobApplicant) dbmodels.JobApplicant {
	rec.Pipeline = nil
	rec.CurrentStageID = nil
	rec.CurrentStage = nil
	return rec
}

func moveToStage(registry pipeline.Registry, rec dbmodels.JobApplicant, stageName string) (dbmodels.JobApplicant, error) {
	if rec.Pipeline == nil {
		return rec, models.NewErrInvalidTransition(models.ReasonPipelineRequired,
			"кандидат %s не находится в воронке, перевод на этап '%s' невозможен", rec.ID, stageName)
	}
	stage, err := registry.StageByName(*rec.Pipeline, stageName)
	if err != nil {
		var notFound *models.ErrNotFound
		if errors.As(err, &notFound) && notFound.Reason == models.ReasonStageNotFound {
			return rec, models.NewErrStageNotInPipeline(stageName, *rec.Pipeline)
		}
		return rec, err
	}
	stageID := stage.ID
	rec.CurrentStageID = &stageID
	rec.CurrentStage = stage
	return rec, nil
}

// checkInvariant этап либо пуст, либо принадлежит воронке кандидата
func checkInvariant(registry pipeline.Registry, rec dbmodels.JobApplicant) error {
	if rec.CurrentStageID == nil {
		return nil
	}
	if rec.Pipeline == nil {
		return errors.Errorf("нарушена целостность: у кандидата %s этап без воронки", rec.ID)
	}
	ok, err := registry.StageBelongsTo(*rec.Pipeline, *rec.CurrentStageID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("нарушена целостность: этап кандидата %s не принадлежит воронке '%s'", rec.ID, *rec.Pipeline)
	}
	return nil
}

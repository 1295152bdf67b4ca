package interviewsync

import (
	"recruitment-backend/lib/pipeline"
	stagetransition "recruitment-backend/lib/stage-transition"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

// InterviewReader выборки по собеседованиям кандидата, нужные для проверок
type InterviewReader interface {
	HasActiveRound(jobApplicantID, interviewRoundID string) (bool, error)
	HasInternalPass(jobApplicantID string) (bool, error)
	HasEmployerFail(jobApplicantID, excludeID string) (bool, error)
}

// CheckEligibility проверки перед созданием собеседования, одинаковые для одиночного и массового назначения
func CheckEligibility(reader InterviewReader, registry pipeline.Registry, candidate dbmodels.JobApplicant, interviewRoundID string, level models.InterviewLevel) error {
	if candidate.ConvertedToApplication {
		return models.NewErrPreconditionBlocked(models.ReasonApplicantLocked,
			"кандидат %s переведен в заявку, назначение собеседования недоступно", candidate.ID)
	}
	if candidate.CurrentStageID != nil {
		stage := candidate.CurrentStage
		if stage == nil || stage.ID != *candidate.CurrentStageID {
			var err error
			stage, err = registry.StageByID(*candidate.CurrentStageID)
			if err != nil {
				return err
			}
		}
		if stage.IsTerminal {
			return models.NewErrPreconditionBlocked(models.ReasonStageBlocksInterview,
				"кандидат на этапе '%s', назначение собеседования невозможно", stage.StageName)
		}
	}
	if level == models.InterviewLevelEmployer {
		passed, err := reader.HasInternalPass(candidate.ID)
		if err != nil {
			return err
		}
		if !passed {
			return models.NewErrPreconditionBlocked(models.ReasonInternalRequired,
				"для собеседования с работодателем нужно пройденное внутреннее собеседование")
		}
	}
	duplicate, err := reader.HasActiveRound(candidate.ID, interviewRoundID)
	if err != nil {
		return err
	}
	if duplicate {
		return models.NewErrPreconditionBlocked(models.ReasonDuplicateRound,
			"у кандидата уже есть собеседование этого раунда")
	}
	return nil
}

// CheckResultChange apply=false - значение уже установлено, повторная синхронизация не нужна
func CheckResultChange(reader InterviewReader, interview dbmodels.Interview, result models.InterviewResult) (apply bool, err error) {
	if !result.IsValid() {
		return false, models.NewErrValidation(models.ReasonInvalidParameter, "неизвестный результат собеседования: %s", result)
	}
	if interview.IsCancelled {
		return false, models.NewErrPreconditionBlocked(models.ReasonInterviewCancelled, "собеседование отменено")
	}
	if interview.Result == result {
		return false, nil
	}
	if interview.Result.IsSettled() {
		return false, models.NewErrPreconditionBlocked(models.ReasonResultAlreadySettled,
			"результат собеседования уже установлен: %s", interview.Result)
	}
	if result == models.InterviewResultHold && interview.InterviewLevel == models.InterviewLevelEmployer {
		failed, err := reader.HasEmployerFail(interview.JobApplicantID, interview.ID)
		if err != nil {
			return false, err
		}
		if failed {
			return false, models.NewErrPreconditionBlocked(models.ReasonEmployerHoldAfterFail,
				"у кандидата уже есть проваленное собеседование с работодателем, Hold недоступен")
		}
	}
	return true, nil
}

// ResultEvents события движка для установленного результата, Hold и пустой результат этап не меняют
func ResultEvents(level models.InterviewLevel, result models.InterviewResult) []stagetransition.Event {
	switch {
	case level.IsInternal() && result == models.InterviewResultPass:
		return []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageInternallySelected}}
	case level.IsInternal() && result == models.InterviewResultFail:
		return []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageInternalRejected}}
	case level == models.InterviewLevelEmployer && result == models.InterviewResultPass:
		return []stagetransition.Event{
			stagetransition.MoveToStage{StageName: models.StageCompanySelected},
			stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter},
		}
	case level == models.InterviewLevelEmployer && result == models.InterviewResultFail:
		return []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageCompanyRejected}}
	}
	return nil
}

// ScheduleEvents продвижение по этапам при назначении собеседования:
// Screening -> следующий этап, Internally Selected + работодатель -> Company Interview
func ScheduleEvents(registry pipeline.Registry, candidate dbmodels.JobApplicant, level models.InterviewLevel) ([]stagetransition.Event, error) {
	if candidate.GetPipeline() != models.PipelineInterviews || candidate.CurrentStageID == nil {
		return nil, nil
	}
	stage, err := registry.StageByID(*candidate.CurrentStageID)
	if err != nil {
		return nil, err
	}
	switch {
	case stage.StageName == models.StageScreening:
		next, err := registry.NextStage(models.PipelineInterviews, stage.ID)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		return []stagetransition.Event{stagetransition.MoveToStage{StageName: next.StageName}}, nil
	case stage.StageName == models.StageInternallySelected && level == models.InterviewLevelEmployer:
		return []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageCompanyInterview}}, nil
	}
	return nil, nil
}

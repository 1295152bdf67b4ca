package interviewsync_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	interviewsync "recruitment-backend/lib/interview-sync"
	pipelinehandler "recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	stagetransition "recruitment-backend/lib/stage-transition"
	testdb "recruitment-backend/lib/utils/test-db"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type fakeReader struct {
	activeRound  bool
	internalPass bool
	employerFail bool
}

func (f fakeReader) HasActiveRound(_, _ string) (bool, error) {
	return f.activeRound, nil
}

func (f fakeReader) HasInternalPass(_ string) (bool, error) {
	return f.internalPass, nil
}

func (f fakeReader) HasEmployerFail(_, _ string) (bool, error) {
	return f.employerFail, nil
}

func newRegistry(t *testing.T) pipelinehandler.Provider {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	return pipelinehandler.NewInstance(DB, defs)
}

func candidateAt(t *testing.T, registry pipelinehandler.Registry, pipelineName, stageName string) dbmodels.JobApplicant {
	stage, err := registry.StageByName(pipelineName, stageName)
	require.NoError(t, err)
	rec := dbmodels.JobApplicant{Pipeline: &pipelineName, CurrentStageID: &stage.ID, CurrentStage: stage}
	rec.ID = "ja-1"
	return rec
}

func TestCheckEligibility(t *testing.T) {
	registry := newRegistry(t)

	t.Run(`терминальный этап блокирует собеседование`, func(t *testing.T) {
		for _, stageName := range []string{models.StageInternalRejected, models.StageCompanyRejected} {
			candidate := candidateAt(t, registry, models.PipelineInterviews, stageName)
			err := interviewsync.CheckEligibility(fakeReader{}, registry, candidate, "round-1", models.InterviewLevelInternalHR)
			require.Error(t, err)
			require.Equal(t, models.ReasonStageBlocksInterview, models.ReasonOf(err))
		}
	})
	t.Run(`этап без предзагрузки берется из справочника`, func(t *testing.T) {
		candidate := candidateAt(t, registry, models.PipelineVisaProcess, "Deployed")
		candidate.CurrentStage = nil
		err := interviewsync.CheckEligibility(fakeReader{}, registry, candidate, "round-1", models.InterviewLevelInternalHR)
		require.Equal(t, models.ReasonStageBlocksInterview, models.ReasonOf(err))
	})
	t.Run(`работодатель без внутреннего Pass`, func(t *testing.T) {
		candidate := candidateAt(t, registry, models.PipelineInterviews, models.StageInternallySelected)
		err := interviewsync.CheckEligibility(fakeReader{}, registry, candidate, "round-1", models.InterviewLevelEmployer)
		require.Error(t, err)
		require.Equal(t, models.ReasonInternalRequired, models.ReasonOf(err))

		err = interviewsync.CheckEligibility(fakeReader{internalPass: true}, registry, candidate, "round-1", models.InterviewLevelEmployer)
		require.NoError(t, err)
	})
	t.Run(`повтор раунда`, func(t *testing.T) {
		candidate := candidateAt(t, registry, models.PipelineInterviews, models.StageScreening)
		err := interviewsync.CheckEligibility(fakeReader{activeRound: true}, registry, candidate, "round-1", models.InterviewLevelInternalHR)
		require.Equal(t, models.ReasonDuplicateRound, models.ReasonOf(err))
	})
	t.Run(`кандидат вне воронки`, func(t *testing.T) {
		candidate := dbmodels.JobApplicant{}
		err := interviewsync.CheckEligibility(fakeReader{}, registry, candidate, "round-1", models.InterviewLevelInternalTechnical)
		require.NoError(t, err)
	})
	t.Run(`переведенный в заявку`, func(t *testing.T) {
		candidate := dbmodels.JobApplicant{ConvertedToApplication: true}
		err := interviewsync.CheckEligibility(fakeReader{}, registry, candidate, "round-1", models.InterviewLevelInternalHR)
		require.Equal(t, models.ReasonApplicantLocked, models.ReasonOf(err))
	})
}

func TestCheckResultChange(t *testing.T) {
	interview := dbmodels.Interview{JobApplicantID: "ja-1", InterviewLevel: models.InterviewLevelEmployer}
	interview.ID = "int-1"

	t.Run(`первый результат`, func(t *testing.T) {
		apply, err := interviewsync.CheckResultChange(fakeReader{}, interview, models.InterviewResultPass)
		require.NoError(t, err)
		require.True(t, apply)
	})
	t.Run(`повтор того же результата`, func(t *testing.T) {
		settled := interview
		settled.Result = models.InterviewResultPass
		apply, err := interviewsync.CheckResultChange(fakeReader{}, settled, models.InterviewResultPass)
		require.NoError(t, err)
		require.False(t, apply)
	})
	t.Run(`смена установленного результата`, func(t *testing.T) {
		settled := interview
		settled.Result = models.InterviewResultFail
		_, err := interviewsync.CheckResultChange(fakeReader{}, settled, models.InterviewResultPass)
		require.Equal(t, models.ReasonResultAlreadySettled, models.ReasonOf(err))
	})
	t.Run(`Hold после Fail у работодателя`, func(t *testing.T) {
		_, err := interviewsync.CheckResultChange(fakeReader{employerFail: true}, interview, models.InterviewResultHold)
		require.Equal(t, models.ReasonEmployerHoldAfterFail, models.ReasonOf(err))

		internal := interview
		internal.InterviewLevel = models.InterviewLevelInternalHR
		apply, err := interviewsync.CheckResultChange(fakeReader{employerFail: true}, internal, models.InterviewResultHold)
		require.NoError(t, err)
		require.True(t, apply)
	})
	t.Run(`Hold меняется на Pass`, func(t *testing.T) {
		held := interview
		held.Result = models.InterviewResultHold
		apply, err := interviewsync.CheckResultChange(fakeReader{}, held, models.InterviewResultPass)
		require.NoError(t, err)
		require.True(t, apply)
	})
	t.Run(`отмененное собеседование`, func(t *testing.T) {
		cancelled := interview
		cancelled.IsCancelled = true
		_, err := interviewsync.CheckResultChange(fakeReader{}, cancelled, models.InterviewResultPass)
		require.Equal(t, models.ReasonInterviewCancelled, models.ReasonOf(err))
	})
	t.Run(`неизвестный результат`, func(t *testing.T) {
		_, err := interviewsync.CheckResultChange(fakeReader{}, interview, "Maybe")
		require.Equal(t, models.ReasonInvalidParameter, models.ReasonOf(err))
	})
}

func TestResultEvents(t *testing.T) {
	require.Equal(t,
		[]stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageInternallySelected}},
		interviewsync.ResultEvents(models.InterviewLevelInternalHR, models.InterviewResultPass))
	require.Equal(t,
		[]stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageInternalRejected}},
		interviewsync.ResultEvents(models.InterviewLevelInternalTechnical, models.InterviewResultFail))
	require.Equal(t,
		[]stagetransition.Event{
			stagetransition.MoveToStage{StageName: models.StageCompanySelected},
			stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter},
		},
		interviewsync.ResultEvents(models.InterviewLevelEmployer, models.InterviewResultPass))
	require.Equal(t,
		[]stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageCompanyRejected}},
		interviewsync.ResultEvents(models.InterviewLevelEmployer, models.InterviewResultFail))
	require.Empty(t, interviewsync.ResultEvents(models.InterviewLevelEmployer, models.InterviewResultHold))
	require.Empty(t, interviewsync.ResultEvents(models.InterviewLevelInternalHR, models.InterviewResultUnset))
}

func TestScheduleEvents(t *testing.T) {
	registry := newRegistry(t)

	events, err := interviewsync.ScheduleEvents(registry, candidateAt(t, registry, models.PipelineInterviews, models.StageScreening), models.InterviewLevelInternalHR)
	require.NoError(t, err)
	require.Equal(t, []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageInternalInterviewHeld}}, events)

	events, err = interviewsync.ScheduleEvents(registry, candidateAt(t, registry, models.PipelineInterviews, models.StageInternallySelected), models.InterviewLevelEmployer)
	require.NoError(t, err)
	require.Equal(t, []stagetransition.Event{stagetransition.MoveToStage{StageName: models.StageCompanyInterview}}, events)

	events, err = interviewsync.ScheduleEvents(registry, candidateAt(t, registry, models.PipelineInterviews, models.StageInternallySelected), models.InterviewLevelInternalHR)
	require.NoError(t, err)
	require.Empty(t, events)

	events, err = interviewsync.ScheduleEvents(registry, candidateAt(t, registry, models.PipelineOfferLetter, models.StageOfferLetterWaited), models.InterviewLevelEmployer)
	require.NoError(t, err)
	require.Empty(t, events)
}

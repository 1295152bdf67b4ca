package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	testdb "recruitment-backend/lib/utils/test-db"
	"recruitment-backend/models"
)

func newRegistry(t *testing.T) pipeline.Provider {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	return pipeline.NewInstance(DB, defs)
}

func TestRegistry(t *testing.T) {
	registry := newRegistry(t)

	t.Run(`этап входа с минимальным номером`, func(t *testing.T) {
		stage, err := registry.FirstStage(models.PipelineInterviews)
		require.NoError(t, err)
		require.Equal(t, "Screening", stage.StageName)
	})
	t.Run(`неизвестная воронка`, func(t *testing.T) {
		_, err := registry.FirstStage("Unknown")
		require.Error(t, err)
		require.Equal(t, models.ReasonPipelineNotFound, models.ReasonOf(err))
	})
	t.Run(`этап по названию и принадлежность`, func(t *testing.T) {
		stage, err := registry.StageByName(models.PipelineOfferLetter, "Offer Letter Received")
		require.NoError(t, err)

		ok, err := registry.StageBelongsTo(models.PipelineOfferLetter, stage.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = registry.StageBelongsTo(models.PipelineInterviews, stage.ID)
		require.NoError(t, err)
		require.False(t, ok)

		_, err = registry.StageByName(models.PipelineInterviews, "Offer Letter Received")
		require.Equal(t, models.ReasonStageNotFound, models.ReasonOf(err))
	})
	t.Run(`следующий этап`, func(t *testing.T) {
		ticket, err := registry.StageByName(models.PipelineVisaProcess, "Ticket")
		require.NoError(t, err)
		next, err := registry.NextStage(models.PipelineVisaProcess, ticket.ID)
		require.NoError(t, err)
		require.Equal(t, "Deployed", next.StageName)

		closed, err := registry.StageByName(models.PipelineVisaProcess, "Closed")
		require.NoError(t, err)
		next, err = registry.NextStage(models.PipelineVisaProcess, closed.ID)
		require.NoError(t, err)
		require.Nil(t, next)

		_, err = registry.NextStage(models.PipelineInterviews, ticket.ID)
		require.Equal(t, models.ReasonStageNotInPipeline, models.ReasonOf(err))
	})
	t.Run(`этап по идентификатору`, func(t *testing.T) {
		first, err := registry.FirstStage(models.PipelineVisaProcess)
		require.NoError(t, err)
		stage, err := registry.StageByID(first.ID)
		require.NoError(t, err)
		require.Equal(t, "Medical", stage.StageName)
	})
}

func TestList(t *testing.T) {
	registry := newRegistry(t)
	list, err := registry.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		require.NotEmpty(t, p.Stages)
	}
}

package stagetransition_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	pipelinehandler "recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	stagetransition "recruitment-backend/lib/stage-transition"
	testdb "recruitment-backend/lib/utils/test-db"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

func newEngine(t *testing.T, options stagetransition.Options) (*gorm.DB, stagetransition.Provider) {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	return DB, stagetransition.NewInstance(DB, pipelinehandler.NewInstance(DB, defs), options)
}

func TestApply(t *testing.T) {
	t.Run(`изменение сохраняется с историей и новой версией`, func(t *testing.T) {
		DB, engine := newEngine(t, stagetransition.Options{})
		applicant := testdb.NewApplicant(t, DB, "3520212345671")
		ja := testdb.NewJobApplicant(t, DB, applicant.ID)

		rec, err := engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
		require.NoError(t, err)
		require.Equal(t, 1, rec.Version)

		saved, err := jobapplicantstore.NewInstance(DB).GetByID(ja.ID)
		require.NoError(t, err)
		require.Equal(t, models.PipelineInterviews, saved.GetPipeline())
		require.Equal(t, models.StageScreening, saved.CurrentStage.StageName)
		require.Equal(t, 1, saved.Version)

		history := []dbmodels.JobApplicantHistory{}
		require.NoError(t, DB.Where("job_applicant_id = ?", ja.ID).Find(&history).Error)
		require.Len(t, history, 1)
		require.Equal(t, dbmodels.HistoryTypePipelineChange, history[0].ActionType)
		require.Equal(t, "Система", history[0].UserName)
		require.Len(t, history[0].Changes.Data, 2)
	})
	t.Run(`повторное применение не меняет версию`, func(t *testing.T) {
		DB, engine := newEngine(t, stagetransition.Options{})
		applicant := testdb.NewApplicant(t, DB, "3520212345672")
		ja := testdb.NewJobApplicant(t, DB, applicant.ID)

		_, err := engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
		require.NoError(t, err)
		rec, err := engine.Apply(ja.ID, "", stagetransition.MoveToStage{StageName: models.StageScreening})
		require.NoError(t, err)
		require.Equal(t, 1, rec.Version)

		var count int64
		require.NoError(t, DB.Model(&dbmodels.JobApplicantHistory{}).Where("job_applicant_id = ?", ja.ID).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
	t.Run(`отказ не меняет запись`, func(t *testing.T) {
		DB, engine := newEngine(t, stagetransition.Options{})
		applicant := testdb.NewApplicant(t, DB, "3520212345673")
		ja := testdb.NewJobApplicant(t, DB, applicant.ID)

		_, err := engine.Apply(ja.ID, "", stagetransition.MoveToStage{StageName: models.StageInternallySelected})
		require.Error(t, err)
		require.Equal(t, models.ReasonPipelineRequired, models.ReasonOf(err))

		saved, err := jobapplicantstore.NewInstance(DB).GetByID(ja.ID)
		require.NoError(t, err)
		require.Nil(t, saved.Pipeline)
		require.Equal(t, 0, saved.Version)
	})
	t.Run(`кандидат не найден`, func(t *testing.T) {
		_, engine := newEngine(t, stagetransition.Options{})
		_, err := engine.Apply("missing", "", stagetransition.ClearPipeline{})
		require.Error(t, err)
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
	t.Run(`устаревшая версия - конфликт`, func(t *testing.T) {
		DB, engine := newEngine(t, stagetransition.Options{})
		applicant := testdb.NewApplicant(t, DB, "3520212345674")
		ja := testdb.NewJobApplicant(t, DB, applicant.ID)
		stale, err := jobapplicantstore.NewInstance(DB).GetByID(ja.ID)
		require.NoError(t, err)

		_, err = engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
		require.NoError(t, err)

		err = DB.Transaction(func(tx *gorm.DB) error {
			_, err := engine.ApplyTx(tx, *stale, "", "", stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter})
			return err
		})
		require.Error(t, err)
		require.True(t, models.IsConcurrencyConflict(err))

		saved, err := jobapplicantstore.NewInstance(DB).GetByID(ja.ID)
		require.NoError(t, err)
		require.Equal(t, models.PipelineInterviews, saved.GetPipeline())
	})
	t.Run(`даты этапов оффера`, func(t *testing.T) {
		DB, engine := newEngine(t, stagetransition.Options{TrackStageDates: true})
		applicant := testdb.NewApplicant(t, DB, "3520212345675")
		ja := testdb.NewJobApplicant(t, DB, applicant.ID)

		_, err := engine.Apply(ja.ID, "user-1",
			stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter},
			stagetransition.MoveToStage{StageName: models.StageOfferLetterAccepted})
		require.NoError(t, err)

		saved, err := jobapplicantstore.NewInstance(DB).GetByID(ja.ID)
		require.NoError(t, err)
		require.NotNil(t, saved.OfferLetterReceivedDate)
		require.NotNil(t, saved.OfferLetterAcceptedDate)
		require.Nil(t, saved.CompanySelectionDate)
	})
}

func TestRetryOnConflict(t *testing.T) {
	t.Run(`один конфликт - повтор`, func(t *testing.T) {
		calls := 0
		err := stagetransition.RetryOnConflict(func() error {
			calls++
			if calls == 1 {
				return models.NewErrConcurrencyConflict("кандидат", "1")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})
	t.Run(`повторный конфликт возвращается`, func(t *testing.T) {
		calls := 0
		err := stagetransition.RetryOnConflict(func() error {
			calls++
			return models.NewErrConcurrencyConflict("кандидат", "1")
		})
		require.True(t, models.IsConcurrencyConflict(err))
		require.Equal(t, 2, calls)
	})
	t.Run(`прочие ошибки не повторяются`, func(t *testing.T) {
		calls := 0
		err := stagetransition.RetryOnConflict(func() error {
			calls++
			return models.NewErrPipelineNotFound("x")
		})
		require.Error(t, err)
		require.Equal(t, 1, calls)
	})
}

package visaprocess_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	pipelinehandler "recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	stagetransition "recruitment-backend/lib/stage-transition"
	testdb "recruitment-backend/lib/utils/test-db"
	visaprocess "recruitment-backend/lib/visa-process"
	"recruitment-backend/models"
	visaapimodels "recruitment-backend/models/api/visa"
)

type fixture struct {
	DB      *gorm.DB
	engine  stagetransition.Provider
	handler visaprocess.Provider
}

func newFixture(t *testing.T) fixture {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	pipelines := pipelinehandler.NewInstance(DB, defs)
	engine := stagetransition.NewInstance(DB, pipelines, stagetransition.Options{TrackStageDates: true})
	return fixture{
		DB:      DB,
		engine:  engine,
		handler: visaprocess.NewInstance(DB, pipelines, engine),
	}
}

// offerAccepted кандидат, принявший предложение работодателя
func (f fixture) offerAccepted(t *testing.T, cnic string) string {
	applicant := testdb.NewApplicant(t, f.DB, cnic)
	ja := testdb.NewJobApplicant(t, f.DB, applicant.ID)
	_, err := f.engine.Apply(ja.ID, "",
		stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter},
		stagetransition.MoveToStage{StageName: models.StageOfferLetterAccepted})
	require.NoError(t, err)
	return ja.ID
}

func TestStart(t *testing.T) {
	t.Run(`процесс создается один раз`, func(t *testing.T) {
		f := newFixture(t)
		jaID := f.offerAccepted(t, "3520200000701")

		view, err := f.handler.Start(jaID, "")
		require.NoError(t, err)
		require.Equal(t, models.PipelineVisaProcess, view.Pipeline)
		require.Equal(t, "Medical", view.CurrentStageName)
		require.Equal(t, jaID, view.JobApplicantID)

		rec, err := jobapplicantstore.NewInstance(f.DB).GetByID(jaID)
		require.NoError(t, err)
		require.Equal(t, models.PipelineVisaProcess, rec.GetPipeline())
		require.Equal(t, "Medical", rec.CurrentStage.StageName)
		require.NotNil(t, rec.VisaProcessID)
		require.Equal(t, view.ID, *rec.VisaProcessID)
		require.NotNil(t, rec.OfferLetterAcceptedDate)

		_, err = f.handler.Start(jaID, "")
		require.Equal(t, models.ReasonVisaProcessNotAllowed, models.ReasonOf(err))
	})
	t.Run(`только после принятия предложения`, func(t *testing.T) {
		f := newFixture(t)
		applicant := testdb.NewApplicant(t, f.DB, "3520200000702")
		ja := testdb.NewJobApplicant(t, f.DB, applicant.ID)
		_, err := f.engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter})
		require.NoError(t, err)

		_, err = f.handler.Start(ja.ID, "")
		require.Equal(t, models.ReasonVisaProcessNotAllowed, models.ReasonOf(err))

		rec, err := jobapplicantstore.NewInstance(f.DB).GetByID(ja.ID)
		require.NoError(t, err)
		require.Nil(t, rec.VisaProcessID)
		require.Equal(t, models.PipelineOfferLetter, rec.GetPipeline())
	})
	t.Run(`кандидат не найден`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Start("missing", "")
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
}

func TestCompleteStage(t *testing.T) {
	f := newFixture(t)
	jaID := f.offerAccepted(t, "3520200000801")
	process, err := f.handler.Start(jaID, "")
	require.NoError(t, err)

	stageOf := func(t *testing.T) string {
		rec, err := jobapplicantstore.NewInstance(f.DB).GetByID(jaID)
		require.NoError(t, err)
		return rec.CurrentStage.StageName
	}

	t.Run(`незавершенный статус не двигает этап`, func(t *testing.T) {
		_, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{
			StageDate: "10.03.2026",
			Status:    "Pending",
		}, "")
		require.Equal(t, models.ReasonVisaStageNotCompleted, models.ReasonOf(err))
		require.Equal(t, "Medical", stageOf(t))
	})
	t.Run(`завершенный этап переводит процесс и кандидата`, func(t *testing.T) {
		view, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{
			StageDate: "11.03.2026",
			Status:    "Not Required",
		}, "")
		require.NoError(t, err)
		require.Equal(t, "Takamul", view.CurrentStageName)
		require.Len(t, view.Stages, 1)
		require.Equal(t, "Medical", view.Stages[0].StageName)
		require.Equal(t, "11.03.2026", view.Stages[0].StageDate)
		require.Equal(t, "Takamul", stageOf(t))
	})
	t.Run(`кандидат следует за процессом после ручной смены воронки`, func(t *testing.T) {
		_, err := f.engine.Apply(jaID, "", stagetransition.ClearPipeline{})
		require.NoError(t, err)
		view, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{
			StageDate: "12.03.2026",
			Status:    "Done",
		}, "")
		require.NoError(t, err)
		require.Equal(t, "Embassy Documentation", view.CurrentStageName)
		require.Equal(t, "Embassy Documentation", stageOf(t))
	})
	t.Run(`процесс закрывается после последнего этапа`, func(t *testing.T) {
		steps := []string{"Done", "Done", "Allotted", "Issued", "Done", "Booked", "Deployed"}
		for _, status := range steps {
			_, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{StageDate: "20.03.2026", Status: status}, "")
			require.NoError(t, err, status)
		}
		require.Equal(t, "Closed", stageOf(t))

		view, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{StageDate: "21.03.2026"}, "")
		require.NoError(t, err)
		require.Equal(t, "21.03.2026", view.ClosedOn)

		_, err = f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{StageDate: "22.03.2026", Status: "Done"}, "")
		require.Equal(t, models.ReasonVisaProcessNotAllowed, models.ReasonOf(err))
	})
	t.Run(`некорректная дата`, func(t *testing.T) {
		_, err := f.handler.CompleteStage(process.ID, visaapimodels.CompleteStageRequest{StageDate: "2026-03-22"}, "")
		require.Equal(t, models.ReasonInvalidParameter, models.ReasonOf(err))
	})
}

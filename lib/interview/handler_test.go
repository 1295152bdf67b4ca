package interview_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	interviewhandler "recruitment-backend/lib/interview"
	interviewdraft "recruitment-backend/lib/interview-draft"
	interviewsync "recruitment-backend/lib/interview-sync"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	pipelinehandler "recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	"recruitment-backend/lib/smtp"
	stagetransition "recruitment-backend/lib/stage-transition"
	testdb "recruitment-backend/lib/utils/test-db"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	dbmodels "recruitment-backend/models/db"
)

type fixture struct {
	db            *gorm.DB
	engine        stagetransition.Provider
	drafts        interviewdraft.Provider
	handler       interviewhandler.Provider
	hrRound       dbmodels.InterviewRound
	technical     dbmodels.InterviewRound
	employerRound dbmodels.InterviewRound
	cnic          int
}

func newFixture(t *testing.T, advanceOnSchedule bool) *fixture {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	pipelines := pipelinehandler.NewInstance(DB, defs)
	engine := stagetransition.NewInstance(DB, pipelines, stagetransition.Options{TrackStageDates: true})
	sync := interviewsync.NewInstance(engine, pipelines, interviewsync.Options{AdvanceStageOnSchedule: advanceOnSchedule})
	drafts := interviewdraft.NewInstance(DB, time.Hour)
	f := &fixture{
		db:      DB,
		engine:  engine,
		drafts:  drafts,
		handler: interviewhandler.NewInstance(DB, sync, engine, drafts, smtp.NewInstance(smtp.Config{}), interviewhandler.Options{NotifyOnSchedule: true}),
		cnic:    3520200000001,
	}
	f.hrRound = f.newRound(t, "HR Round", models.InterviewLevelInternalHR)
	f.technical = f.newRound(t, "Technical Round", models.InterviewLevelInternalTechnical)
	f.employerRound = f.newRound(t, "Employer Round", models.InterviewLevelEmployer)
	return f
}

func (f *fixture) newRound(t *testing.T, name string, level models.InterviewLevel) dbmodels.InterviewRound {
	rec := dbmodels.InterviewRound{RoundName: name, InterviewLevel: level}
	require.NoError(t, f.db.Create(&rec).Error)
	return rec
}

// newCandidate кандидат на этапе Screening воронки Interviews
func (f *fixture) newCandidate(t *testing.T) string {
	f.cnic++
	applicant := testdb.NewApplicant(t, f.db, strconv.Itoa(f.cnic))
	ja := testdb.NewJobApplicant(t, f.db, applicant.ID)
	_, err := f.engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
	require.NoError(t, err)
	return ja.ID
}

func (f *fixture) schedule(jobApplicantID string, round dbmodels.InterviewRound) (interviewapimodels.InterviewView, error) {
	return f.handler.Create(interviewapimodels.InterviewData{
		JobApplicantID:   jobApplicantID,
		InterviewRoundID: round.ID,
		InterviewDate:    "2026-03-01",
		StartTime:        "10:00",
		EndTime:          "11:30",
	}, "user-1")
}

func (f *fixture) candidate(t *testing.T, id string) dbmodels.JobApplicant {
	rec, err := jobapplicantstore.NewInstance(f.db).GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return *rec
}

func (f *fixture) historyCount(t *testing.T, id string) int64 {
	var count int64
	require.NoError(t, f.db.Model(&dbmodels.JobApplicantHistory{}).Where("job_applicant_id = ?", id).Count(&count).Error)
	return count
}

func TestCreate(t *testing.T) {
	t.Run(`собеседование создается с общим временем`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		view, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		require.Equal(t, models.InterviewLevelInternalHR, view.InterviewLevel)
		require.Equal(t, "2026-03-01", view.InterviewDate)
		require.Equal(t, "1 hour 30 minutes", view.TotalTime)
		require.Equal(t, "HR Round", view.RoundName)
		require.Equal(t, models.StageScreening, f.candidate(t, jaID).CurrentStage.StageName)
	})
	t.Run(`повтор раунда отклоняется, после отмены разрешен`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		view, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)

		_, err = f.schedule(jaID, f.hrRound)
		require.Error(t, err)
		require.Equal(t, models.ReasonDuplicateRound, models.ReasonOf(err))

		require.NoError(t, f.handler.Cancel(view.ID, "user-1"))
		_, err = f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
	})
	t.Run(`работодатель только после внутреннего Pass`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		_, err := f.schedule(jaID, f.employerRound)
		require.Error(t, err)
		require.Equal(t, models.ReasonInternalRequired, models.ReasonOf(err))

		internal, err := f.schedule(jaID, f.technical)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "user-1")
		require.NoError(t, err)

		_, err = f.schedule(jaID, f.employerRound)
		require.NoError(t, err)
	})
	t.Run(`терминальный этап блокирует назначение`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultFail}, "")
		require.NoError(t, err)
		require.Equal(t, models.StageInternalRejected, f.candidate(t, jaID).CurrentStage.StageName)

		_, err = f.schedule(jaID, f.technical)
		require.Error(t, err)
		require.Equal(t, models.ReasonStageBlocksInterview, models.ReasonOf(err))
	})
	t.Run(`продвижение этапа при назначении`, func(t *testing.T) {
		f := newFixture(t, true)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		require.Equal(t, models.StageInternalInterviewHeld, f.candidate(t, jaID).CurrentStage.StageName)

		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		_, err = f.schedule(jaID, f.employerRound)
		require.NoError(t, err)
		require.Equal(t, models.StageCompanyInterview, f.candidate(t, jaID).CurrentStage.StageName)
	})
	t.Run(`по токену черновика`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		draft, err := f.drafts.Create(interviewapimodels.DraftRequest{JobApplicantID: jaID}, "user-1")
		require.NoError(t, err)

		view, err := f.handler.Create(interviewapimodels.InterviewData{
			DraftToken:       draft.Token,
			InterviewRoundID: f.hrRound.ID,
			InterviewDate:    "2026-03-02",
		}, "user-1")
		require.NoError(t, err)
		require.Equal(t, jaID, view.JobApplicantID)

		_, err = f.drafts.Get(draft.Token)
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
	t.Run(`неизвестный раунд`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		_, err := f.schedule(jaID, dbmodels.InterviewRound{})
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
}

func TestSetResult(t *testing.T) {
	t.Run(`внутренний Pass идемпотентен`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)

		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		candidate := f.candidate(t, jaID)
		require.Equal(t, models.StageInternallySelected, candidate.CurrentStage.StageName)
		history := f.historyCount(t, jaID)

		view, err := f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultPass, view.Result)
		require.Equal(t, history, f.historyCount(t, jaID))
		require.Equal(t, candidate.Version, f.candidate(t, jaID).Version)
	})
	t.Run(`Hold не меняет этап`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultHold}, "")
		require.NoError(t, err)
		require.Equal(t, models.StageScreening, f.candidate(t, jaID).CurrentStage.StageName)
	})
	t.Run(`установленный результат не меняется`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultFail}, "")
		require.Error(t, err)
		require.Equal(t, models.ReasonResultAlreadySettled, models.ReasonOf(err))
		require.Equal(t, models.StageInternallySelected, f.candidate(t, jaID).CurrentStage.StageName)
	})
	t.Run(`работодатель Pass - Company Selected и воронка Offer Letter`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		employer, err := f.schedule(jaID, f.employerRound)
		require.NoError(t, err)

		_, err = f.handler.SetResult(employer.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass, Feedback: "good"}, "user-1")
		require.NoError(t, err)
		candidate := f.candidate(t, jaID)
		require.Equal(t, models.PipelineOfferLetter, candidate.GetPipeline())
		require.Equal(t, models.StageOfferLetterWaited, candidate.CurrentStage.StageName)
		require.NotNil(t, candidate.CompanySelectionDate)
	})
	t.Run(`работодатель Fail и Hold после Fail`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		first, err := f.schedule(jaID, f.employerRound)
		require.NoError(t, err)
		second := f.newRound(t, "Employer Round 2", models.InterviewLevelEmployer)
		secondView, err := f.schedule(jaID, second)
		require.NoError(t, err)

		_, err = f.handler.SetResult(first.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultFail}, "")
		require.NoError(t, err)
		require.Equal(t, models.StageCompanyRejected, f.candidate(t, jaID).CurrentStage.StageName)

		_, err = f.handler.SetResult(secondView.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultHold}, "")
		require.Error(t, err)
		require.Equal(t, models.ReasonEmployerHoldAfterFail, models.ReasonOf(err))
	})
	t.Run(`отказ перехода сохраняет результат без смены этапа`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		internal, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		_, err = f.engine.Apply(jaID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineOfferLetter})
		require.NoError(t, err)

		view, err := f.handler.SetResult(internal.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultPass, view.Result)
		require.Equal(t, models.ReasonStageNotInPipeline, view.StageBlockedReason)
		require.NotEmpty(t, view.StageBlockedMessage)

		stored, err := f.handler.GetByID(internal.ID)
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultPass, stored.Result)
		candidate := f.candidate(t, jaID)
		require.Equal(t, models.PipelineOfferLetter, candidate.GetPipeline())
		require.Equal(t, models.StageOfferLetterWaited, candidate.CurrentStage.StageName)
	})
	t.Run(`поздний результат технического собеседования после Offer Letter`, func(t *testing.T) {
		f := newFixture(t, false)
		jaID := f.newCandidate(t)
		hr, err := f.schedule(jaID, f.hrRound)
		require.NoError(t, err)
		technical, err := f.schedule(jaID, f.technical)
		require.NoError(t, err)
		_, err = f.handler.SetResult(hr.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		employer, err := f.schedule(jaID, f.employerRound)
		require.NoError(t, err)
		_, err = f.handler.SetResult(employer.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)

		view, err := f.handler.SetResult(technical.ID, interviewapimodels.ResultRequest{Result: models.InterviewResultFail}, "")
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultFail, view.Result)
		require.Equal(t, models.ReasonStageNotInPipeline, view.StageBlockedReason)

		stored, err := f.handler.GetByID(technical.ID)
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultFail, stored.Result)
		candidate := f.candidate(t, jaID)
		require.Equal(t, models.PipelineOfferLetter, candidate.GetPipeline())
		require.Equal(t, models.StageOfferLetterWaited, candidate.CurrentStage.StageName)
	})
	t.Run(`собеседование не найдено`, func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.handler.SetResult("missing", interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
}

func TestLetter(t *testing.T) {
	f := newFixture(t, false)
	jaID := f.newCandidate(t)
	view, err := f.schedule(jaID, f.hrRound)
	require.NoError(t, err)
	body, err := f.handler.Letter(view.ID)
	require.NoError(t, err)
	require.NotEmpty(t, body)
}

package interviewbulk_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	interviewhandler "recruitment-backend/lib/interview"
	interviewdraft "recruitment-backend/lib/interview-draft"
	interviewsync "recruitment-backend/lib/interview-sync"
	interviewbulk "recruitment-backend/lib/interview/bulk"
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
	db         *gorm.DB
	engine     stagetransition.Provider
	interviews interviewhandler.Provider
	bulk       interviewbulk.Provider
	hrRound    dbmodels.InterviewRound
	employer   dbmodels.InterviewRound
	cnic       int
}

func newFixture(t *testing.T) *fixture {
	DB := testdb.New(t)
	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	pipelines := pipelinehandler.NewInstance(DB, defs)
	engine := stagetransition.NewInstance(DB, pipelines, stagetransition.Options{})
	sync := interviewsync.NewInstance(engine, pipelines, interviewsync.Options{})
	interviews := interviewhandler.NewInstance(DB, sync, engine, interviewdraft.NewInstance(DB, time.Hour),
		smtp.NewInstance(smtp.Config{}), interviewhandler.Options{})
	f := &fixture{
		db:         DB,
		engine:     engine,
		interviews: interviews,
		bulk:       interviewbulk.NewInstance(DB, interviews, engine, time.Second),
		cnic:       3520200000001,
	}
	f.hrRound = dbmodels.InterviewRound{RoundName: "HR Round", InterviewLevel: models.InterviewLevelInternalHR}
	require.NoError(t, DB.Create(&f.hrRound).Error)
	f.employer = dbmodels.InterviewRound{RoundName: "Employer Round", InterviewLevel: models.InterviewLevelEmployer}
	require.NoError(t, DB.Create(&f.employer).Error)
	return f
}

func (f *fixture) newCandidate(t *testing.T, demandPosition string) string {
	f.cnic++
	applicant := testdb.NewApplicant(t, f.db, strconv.Itoa(f.cnic))
	ja := testdb.NewJobApplicant(t, f.db, applicant.ID)
	if demandPosition != "" {
		require.NoError(t, f.db.Model(&dbmodels.JobApplicant{}).Where("id = ?", ja.ID).Update("demand_position", demandPosition).Error)
	}
	_, err := f.engine.Apply(ja.ID, "", stagetransition.AssignPipeline{PipelineName: models.PipelineInterviews})
	require.NoError(t, err)
	return ja.ID
}

func (f *fixture) request(ids []string, round dbmodels.InterviewRound) interviewapimodels.BulkRequest {
	return interviewapimodels.BulkRequest{
		JobApplicantIDs:  ids,
		InterviewRoundID: round.ID,
		InterviewDate:    "2026-03-05",
		StartTime:        "09:00",
		EndTime:          "09:30",
	}
}

func TestCreateBulk(t *testing.T) {
	t.Run(`5 кандидатов, у третьего уже есть раунд`, func(t *testing.T) {
		f := newFixture(t)
		ids := []string{}
		for k := 0; k < 5; k++ {
			ids = append(ids, f.newCandidate(t, ""))
		}
		_, err := f.interviews.Create(interviewapimodels.InterviewData{
			JobApplicantID:   ids[2],
			InterviewRoundID: f.hrRound.ID,
			InterviewDate:    "2026-03-01",
		}, "")
		require.NoError(t, err)

		report, err := f.bulk.CreateBulk(context.Background(), f.request(ids, f.hrRound), "user-1")
		require.NoError(t, err)
		require.Equal(t, []string{ids[0], ids[1], ids[3], ids[4]}, report.CreatedIDs())
		require.Equal(t, 4, report.CreatedCount)
		require.Len(t, report.Failed, 1)
		require.Equal(t, ids[2], report.Failed[0].JobApplicantID)
		require.Equal(t, models.ReasonDuplicateRound, report.Failed[0].Reason)

		interviews := []dbmodels.Interview{}
		require.NoError(t, f.db.Where("job_applicant_id in ?", report.CreatedIDs()).Find(&interviews).Error)
		require.Len(t, interviews, 4)
		for _, rec := range interviews {
			require.Equal(t, f.hrRound.ID, rec.InterviewRoundID)
			require.Equal(t, "2026-03-05", time.Time(rec.InterviewDate).Format("2006-01-02"))
			require.Equal(t, "30 minutes", rec.TotalTime)
		}
	})
	t.Run(`отказы по кандидатам не прерывают пачку`, func(t *testing.T) {
		f := newFixture(t)
		ok := f.newCandidate(t, "")
		rejected := f.newCandidate(t, "")
		_, err := f.engine.Apply(rejected, "", stagetransition.MoveToStage{StageName: models.StageInternalRejected})
		require.NoError(t, err)

		report, err := f.bulk.CreateBulk(context.Background(), f.request([]string{rejected, "missing", ok, ok}, f.hrRound), "")
		require.NoError(t, err)
		require.Equal(t, []string{ok}, report.CreatedIDs())
		require.Len(t, report.Failed, 2)
		require.Equal(t, models.ReasonStageBlocksInterview, report.Failed[0].Reason)
		require.Equal(t, "missing", report.Failed[1].JobApplicantID)
		require.Equal(t, models.ReasonRecordNotFound, report.Failed[1].Reason)
	})
	t.Run(`работодатель без внутреннего Pass`, func(t *testing.T) {
		f := newFixture(t)
		id := f.newCandidate(t, "")
		report, err := f.bulk.CreateBulk(context.Background(), f.request([]string{id}, f.employer), "")
		require.NoError(t, err)
		require.Empty(t, report.Created)
		require.Equal(t, models.ReasonInternalRequired, report.Failed[0].Reason)
	})
	t.Run(`кандидат вне воронки ставится на Screening`, func(t *testing.T) {
		f := newFixture(t)
		f.cnic++
		applicant := testdb.NewApplicant(t, f.db, strconv.Itoa(f.cnic))
		ja := testdb.NewJobApplicant(t, f.db, applicant.ID)

		report, err := f.bulk.CreateBulk(context.Background(), f.request([]string{ja.ID}, f.hrRound), "")
		require.NoError(t, err)
		require.Equal(t, []string{ja.ID}, report.CreatedIDs())

		candidate := dbmodels.JobApplicant{}
		require.NoError(t, f.db.Preload("CurrentStage").Where("id = ?", ja.ID).First(&candidate).Error)
		require.Equal(t, models.PipelineInterviews, candidate.GetPipeline())
		require.Equal(t, models.StageScreening, candidate.CurrentStage.StageName)

		_, err = f.interviews.SetResult(report.Created[0].InterviewID, interviewapimodels.ResultRequest{Result: models.InterviewResultPass}, "")
		require.NoError(t, err)
		require.NoError(t, f.db.Preload("CurrentStage").Where("id = ?", ja.ID).First(&candidate).Error)
		require.Equal(t, models.StageInternallySelected, candidate.CurrentStage.StageName)
	})
	t.Run(`отказ по кандидату вне воронки не оставляет его в воронке`, func(t *testing.T) {
		f := newFixture(t)
		f.cnic++
		applicant := testdb.NewApplicant(t, f.db, strconv.Itoa(f.cnic))
		ja := testdb.NewJobApplicant(t, f.db, applicant.ID)

		report, err := f.bulk.CreateBulk(context.Background(), f.request([]string{ja.ID}, f.employer), "")
		require.NoError(t, err)
		require.Equal(t, models.ReasonInternalRequired, report.Failed[0].Reason)

		candidate := dbmodels.JobApplicant{}
		require.NoError(t, f.db.Where("id = ?", ja.ID).First(&candidate).Error)
		require.Nil(t, candidate.Pipeline)
	})
	t.Run(`неверные общие параметры прерывают до записи`, func(t *testing.T) {
		f := newFixture(t)
		id := f.newCandidate(t, "")

		_, err := f.bulk.CreateBulk(context.Background(), f.request([]string{id}, dbmodels.InterviewRound{}), "")
		require.Error(t, err)
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))

		request := f.request([]string{id}, f.hrRound)
		request.InterviewDate = "05.03.2026"
		_, err = f.bulk.CreateBulk(context.Background(), request, "")
		require.Equal(t, models.ReasonInvalidParameter, models.ReasonOf(err))

		_, err = f.bulk.CreateBulk(context.Background(), f.request([]string{" "}, f.hrRound), "")
		require.Equal(t, models.ReasonInvalidParameter, models.ReasonOf(err))

		var count int64
		require.NoError(t, f.db.Model(&dbmodels.Interview{}).Count(&count).Error)
		require.EqualValues(t, 0, count)
	})
}

func TestSelectionContext(t *testing.T) {
	f := newFixture(t)
	first := f.newCandidate(t, "Electrician")
	second := f.newCandidate(t, "Electrician")
	other := f.newCandidate(t, "Plumber")

	t.Run(`общая заявка и позиция`, func(t *testing.T) {
		result, err := f.bulk.SelectionContext([]string{first, "missing", second})
		require.NoError(t, err)
		require.Equal(t, "DEM-0001", result.DemandID)
		require.Equal(t, "Electrician", result.DemandPosition)
		require.Equal(t, 2, result.Count)
	})
	t.Run(`разные позиции`, func(t *testing.T) {
		_, err := f.bulk.SelectionContext([]string{first, other})
		require.Equal(t, models.ReasonSelectionMismatch, models.ReasonOf(err))
	})
	t.Run(`пустой выбор`, func(t *testing.T) {
		_, err := f.bulk.SelectionContext([]string{"missing"})
		require.Equal(t, models.ReasonInvalidParameter, models.ReasonOf(err))
	})
}

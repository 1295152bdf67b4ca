package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"recruitment-backend/config"
	"recruitment-backend/fiberlog"
	"recruitment-backend/lib/applicant"
	xlsexport "recruitment-backend/lib/export/xls"
	"recruitment-backend/lib/interview"
	interviewdraft "recruitment-backend/lib/interview-draft"
	interviewround "recruitment-backend/lib/interview-round"
	interviewsync "recruitment-backend/lib/interview-sync"
	interviewbulk "recruitment-backend/lib/interview/bulk"
	jobapplicant "recruitment-backend/lib/job-applicant"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	"recruitment-backend/lib/pipeline"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	stagetransition "recruitment-backend/lib/stage-transition"
	visaprocess "recruitment-backend/lib/visa-process"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()

	defs, err := pipelinedefinitions.Load(config.Conf.Pipeline.DefinitionsFile)
	if err != nil {
		panic(err.Error())
	}
	features := config.Conf.Features
	log.
		WithField("advance_stage_on_schedule", *features.AdvanceStageOnSchedule).
		WithField("track_stage_dates", *features.TrackStageDates).
		WithField("notify_on_schedule", *features.NotifyOnSchedule).
		Info("признаки поведения движка переходов")

	pipeline.NewHandler(defs)
	jobapplicanthistoryhandler.NewHandler()
	xlsexport.NewHandler()
	stagetransition.NewHandler(stagetransition.Options{
		TrackStageDates: *features.TrackStageDates,
	})
	interviewsync.NewHandler(interviewsync.Options{
		AdvanceStageOnSchedule: *features.AdvanceStageOnSchedule,
	})
	interviewround.NewHandler()
	interviewdraft.NewHandler(time.Duration(config.Conf.Interview.DraftTTLMin) * time.Minute)
	interview.NewHandler(interview.Options{
		NotifyOnSchedule: *features.NotifyOnSchedule,
		CompanyName:      config.Conf.App.CompanyName,
	})
	interviewbulk.NewHandler(time.Duration(config.Conf.Interview.BulkLockWaitSec) * time.Second)
	jobapplicant.NewHandler()
	applicant.NewHandler()
	visaprocess.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача удаления просроченных черновиков собеседований
	interviewdraft.Instance.StartCleanup(ctx, time.Duration(config.Conf.Interview.CleanupIntervalMin)*time.Minute)
}

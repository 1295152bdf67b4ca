package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		CompanyName string `default:"Recruitment" env:"APP_COMPANY_NAME"`
	}
	Log struct {
		Level        string `default:"info" env:"LOG_LEVEL"`
		RequestLevel string `default:"debug" env:"LOG_REQUEST_LEVEL"` // уровень логгера запросов api
	}
	Database struct {
		Type           string `default:"postgres" env:"DB_TYPE"`
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"recruitment" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"applicant-documents" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	// Features признаки поведения, читаются один раз при старте
	Features struct {
		AdvanceStageOnSchedule *bool `default:"true" env:"FEATURE_ADVANCE_STAGE_ON_SCHEDULE"`
		TrackStageDates        *bool `default:"true" env:"FEATURE_TRACK_STAGE_DATES"`
		NotifyOnSchedule       *bool `default:"false" env:"FEATURE_NOTIFY_ON_SCHEDULE"`
	}
	Interview struct {
		DraftTTLMin        int `default:"30" env:"INTERVIEW_DRAFT_TTL_MIN"`
		CleanupIntervalMin int `default:"10" env:"INTERVIEW_DRAFT_CLEANUP_INTERVAL_MIN"`
		BulkLockWaitSec    int `default:"5" env:"INTERVIEW_BULK_LOCK_WAIT_SEC"`
	}
	Pipeline struct {
		DefinitionsFile string `default:"" env:"PIPELINE_DEFINITIONS_FILE"`
	}
}

// File путь к файлу конфигурации, задается флагом --config
var File = "config.yml"

func configFiles() []string {
	return []string{File}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

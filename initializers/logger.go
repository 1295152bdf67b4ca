package initializers

import (
	log "github.com/sirupsen/logrus"
	"recruitment-backend/config"
	"recruitment-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func parseLevel(value string, fallback log.Level) log.Level {
	level, err := log.ParseLevel(value)
	if err != nil {
		log.WithField("level", value).Warn("неизвестный уровень логирования, используется значение по умолчанию")
		return fallback
	}
	return level
}

// InitLogger настраивает общий логгер и отдельный логгер запросов api, вызывается после загрузки конфигурации
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(parseLevel(config.Conf.Log.Level, log.InfoLevel))

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(parseLevel(config.Conf.Log.RequestLevel, log.DebugLevel))
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagRoute,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
			fiberlog.TagUserID,
		},
	}
}

package db

import (
	log "github.com/sirupsen/logrus"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
)

func InitPreload(definitionsFile string) {
	fillPipelines(definitionsFile)
}

func fillPipelines(definitionsFile string) {
	defs, err := pipelinedefinitions.Load(definitionsFile)
	if err != nil {
		log.WithError(err).Error("ошибка загрузки описания воронок")
		return
	}
	result, err := pipelinedefinitions.Setup(DB, defs)
	if err != nil {
		log.WithError(err).Error("ошибка заполнения справочника воронок")
		return
	}
	log.
		WithField("created_pipelines", result.CreatedPipelines).
		WithField("created_stages", result.CreatedStages).
		Info("справочник воронок готов")
}

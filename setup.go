package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"recruitment-backend/config"
	"recruitment-backend/db"
	"recruitment-backend/initializers"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
)

var setupPipelinesCmd = &cobra.Command{
	Use:   "setup-pipelines",
	Short: "Create missing pipelines and stages",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.InitConfig()
		initializers.InitLogger()

		DB, err := db.Open(db.ConnectParams{
			Type:      config.Conf.Database.Type,
			Host:      config.Conf.Database.Host,
			Port:      config.Conf.Database.Port,
			Name:      config.Conf.Database.Name,
			User:      config.Conf.Database.User,
			Password:  config.Conf.Database.Password,
			DebugMode: *config.Conf.Database.DebugMode,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка подключения к БД")
		}
		if err = db.AutoMigrateDB(DB); err != nil {
			return err
		}
		defs, err := pipelinedefinitions.Load(config.Conf.Pipeline.DefinitionsFile)
		if err != nil {
			return err
		}
		result, err := pipelinedefinitions.Setup(DB, defs)
		if err != nil {
			return err
		}
		log.
			WithField("created_pipelines", result.CreatedPipelines).
			WithField("created_stages", result.CreatedStages).
			Info("справочник воронок готов")
		return nil
	},
}

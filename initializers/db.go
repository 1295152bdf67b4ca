package initializers

import (
	"recruitment-backend/config"
	"recruitment-backend/db"
)

func InitDBConnection() {
	err := db.Connect(db.ConnectParams{
		Type:      config.Conf.Database.Type,
		Host:      config.Conf.Database.Host,
		Port:      config.Conf.Database.Port,
		Name:      config.Conf.Database.Name,
		User:      config.Conf.Database.User,
		Password:  config.Conf.Database.Password,
		DebugMode: *config.Conf.Database.DebugMode,
		Migrate:   *config.Conf.Database.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload(config.Conf.Pipeline.DefinitionsFile)
}

package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	TypePostgres = "postgres"
	TypeSqlite   = "sqlite"
)

type ConnectParams struct {
	Type      string
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func Connect(params ConnectParams) (err error) {
	if DB != nil {
		return nil
	}
	db, err := Open(params)
	if err != nil {
		return err
	}
	DB = db
	if params.Migrate {
		if err = AutoMigrateDB(DB); err != nil {
			return err
		}
	}
	log.WithField("db_type", params.Type).Info("Сервис успешно подключен к БД")
	return nil
}

// Open открывает соединение без записи в глобальный DB, используется и в тестах
func Open(params ConnectParams) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch params.Type {
	case TypeSqlite:
		dialector = sqlite.Open(params.Name)
	case TypePostgres, "":
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			params.Host, params.Port, params.User, params.Name, params.Password)
		dialector = postgres.Open(dbConnString)
	default:
		return nil, errors.Errorf("неизвестный тип БД: %s", params.Type)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Ошибка подключения к БД")
	}
	if params.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		db = db.Debug()
	}
	return db, nil
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}

package initializers

import (
	log "github.com/sirupsen/logrus"
	"recruitment-backend/config"
	"recruitment-backend/lib/smtp"
)

func InitSmtp() {
	smtp.Connect(smtp.Config{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		From:       config.Conf.Smtp.From,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
	})
	if !smtp.Instance.IsConfigured() {
		log.Warn("smtp не настроен, уведомления о собеседованиях отправляться не будут")
	}
}

package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// SendEMail без настроенного smtp письмо не отправляется, ошибки нет
	SendEMail(to, subject, message string) error
	IsConfigured() bool
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	From       string
	TLSEnabled bool
}

func Connect(config Config) {
	Instance = NewInstance(config)
}

func NewInstance(config Config) Provider {
	return &impl{
		config: config,
	}
}

type impl struct {
	config Config
}

func (i impl) IsConfigured() bool {
	return i.config.User != "" && i.config.Host != "" && i.config.Port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.
		WithField("receiver", to).
		WithField("subject", subject)
	if !i.IsConfigured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	if to == "" {
		logger.Warn("Письмо не отправлено, не указан адрес получателя")
		return nil
	}
	from := i.config.From
	if from == "" {
		from = i.config.User
	}
	auth := sasl.NewPlainClient("", i.config.User, i.config.Password)
	body := strings.NewReader(buildMessage(from, to, subject, message))
	addr := i.config.Host + ":" + i.config.Port
	if i.config.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, from, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, from, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		from, to, subject, message)
}

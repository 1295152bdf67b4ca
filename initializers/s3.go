package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"recruitment-backend/config"
	filestorage "recruitment-backend/lib/file-storage"
	s3client "recruitment-backend/s3"
)

// InitS3 без endpoint хранилище документов не подключается, загрузка файлов вернет ошибку
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, загрузка документов недоступна")
		return
	}
	client, err := s3client.NewClient(s3client.Config{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	if err = client.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, bucket недоступен")
	}

	filestorage.NewHandler(client.Client(), client.BucketName())
	log.Info("S3 клиент успешно инициализирован")
}

package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider хранилище файлов документов кандидатов
type Provider interface {
	UploadDocument(ctx context.Context, applicantID, documentID, fileName string, fileReader io.Reader, fileSize int64, contentType string) (key string, err error)
	GetFile(ctx context.Context, key string) ([]byte, error)
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadDocument(ctx context.Context, applicantID, documentID, fileName string, fileReader io.Reader, fileSize int64, contentType string) (string, error) {
	key := DocumentKey(applicantID, documentID, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, fileReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.
			WithField("applicant_id", applicantID).
			WithField("key", key).
			WithError(err).
			Error("ошибка загрузки файла в хранилище")
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	return key, nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла из хранилища")
	}
	return body, nil
}

// DocumentKey applicants/<кандидат>/<документ>/<имя файла>
func DocumentKey(applicantID, documentID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("applicants/%s/%s/%s", applicantID, documentID, name)
}

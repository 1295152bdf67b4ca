package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	Client() *minio.Client
	BucketName() string
}

type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Location        string
}

type s3client struct {
	minioClient *minio.Client
	config      Config
}

func (s s3client) Client() *minio.Client {
	return s.minioClient
}

func (s s3client) BucketName() string {
	return s.config.BucketName
}

func (s s3client) MakeBucket(ctx context.Context) error {
	exists, err := s.minioClient.BucketExists(ctx, s.config.BucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	location := s.config.Location
	if location == "" {
		location = "us-east-1"
	}
	err = s.minioClient.MakeBucket(ctx, s.config.BucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	log.WithField("bucket", s.config.BucketName).Info("создан bucket для документов")
	return nil
}

func NewClient(config Config) (Provider, error) {
	minioClient, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{minioClient: minioClient, config: config}, nil
}

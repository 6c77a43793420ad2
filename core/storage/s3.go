package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"plansync/core/config"
	"plansync/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore uploads generated exports (ICS files) and hands out presigned
// download URLs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type s3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Store(cfg config.S3Config) (ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is not configured")
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: creds,
		BaseEndpoint: func() *string {
			if cfg.Endpoint != "" {
				return aws.String(cfg.Endpoint)
			}
			return nil
		}(),
	})

	logger.Info("S3 store initialized", "bucket", cfg.Bucket, "region", cfg.Region)

	return &s3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, key string, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("S3Store:Upload:Error:", err)
		return err
	}
	return nil
}

func (s *s3Store) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		logger.Error("S3Store:PresignGet:Error:", err)
		return "", err
	}
	return req.URL, nil
}

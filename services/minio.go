package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService stores badge icon assets. Icons are referenced by object
// name in the badge catalog and served through presigned URLs.
type MinIOService struct {
	appContext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *appContext.Context) error {
	svc.endpoint = envOr("MINIO_ENDPOINT", "localhost:9000")
	svc.accessKey = envOr("MINIO_ACCESS_KEY", "admin")
	svc.secretKey = envOr("MINIO_SECRET_KEY", "password123")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	svc.bucketName = envOr("MINIO_BUCKET_NAME", "lumen-badges")

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.WithField("endpoint", svc.endpoint).Info("MinIO service started")
	return nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.WithField("bucket", svc.bucketName).Info("Created MinIO bucket")
	}

	return nil
}

func (svc *MinIOService) UploadIcon(objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error) {
	ctx := context.Background()

	uploadInfo, err := svc.client.PutObject(ctx, svc.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload icon to MinIO: %v", err)
	}

	return &uploadInfo, nil
}

func (svc *MinIOService) IconURL(objectName string, expiry time.Duration) (string, error) {
	ctx := context.Background()

	presignedURL, err := svc.client.PresignedGetObject(ctx, svc.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}

	return presignedURL.String(), nil
}

func (svc *MinIOService) DeleteIcon(objectName string) error {
	ctx := context.Background()

	err := svc.client.RemoveObject(ctx, svc.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete icon from MinIO: %v", err)
	}

	return nil
}

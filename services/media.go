package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/shared"
)

// MediaService handles the badge icon assets referenced by the badge
// catalog. Icon bytes live in MinIO; only the object name is stored on
// the badge itself.
type MediaService struct {
	context.DefaultService

	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

var allowedIconTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

func (svc *MediaService) UploadBadgeIcon(file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	contentType := file.Header.Get("Content-Type")
	if !allowedIconTypes[contentType] {
		return nil, shared.NewBadRequestError(
			fmt.Errorf("content type %q", contentType),
			"Badge icons must be PNG, JPEG or SVG")
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	defer src.Close()

	id, _ := uuid.NewV7()
	objectName := fmt.Sprintf("badges/%s%s", id.String(), strings.ToLower(filepath.Ext(file.Filename)))

	info, err := svc.minioSvc.UploadIcon(objectName, src, file.Size, contentType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to store badge icon")
	}

	url, err := svc.minioSvc.IconURL(objectName, 24*time.Hour)
	if err != nil {
		log.WithError(err).WithField("object", objectName).Warn("Failed to presign icon URL")
		url = ""
	}

	return &dto.MediaUploadResponse{
		ObjectName: objectName,
		URL:        url,
		Size:       info.Size,
	}, nil
}

// BadgeIconURL resolves a stored icon object name to a presigned URL.
func (svc *MediaService) BadgeIconURL(objectName string) (string, error) {
	if objectName == "" {
		return "", nil
	}
	return svc.minioSvc.IconURL(objectName, 24*time.Hour)
}

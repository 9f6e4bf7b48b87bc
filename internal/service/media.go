package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"schoolcomm/internal/config"
	"schoolcomm/internal/model"
)

// StorageClient is the subset of the S3 API the media service uses.
type StorageClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaService stores uploads in S3-compatible object storage and hands the
// public URL string back to whichever entity carries the attachment.
type MediaService struct {
	client    StorageClient
	bucket    string
	publicURL string
}

// attachmentTypes are the content types accepted for chat/announcement/
// homework attachments.
var attachmentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// NewMediaService constructs an S3-compatible client for the configured
// storage account.
func NewMediaService(ctx context.Context, cfg *config.Config) (*MediaService, error) {
	if cfg.StorageAccountID == "" || cfg.StorageAccessKeyID == "" || cfg.StorageSecretAccessKey == "" ||
		cfg.StorageBucketName == "" || cfg.StoragePublicURL == "" {
		return nil, fmt.Errorf("missing object storage configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StorageAccessKeyID, cfg.StorageSecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.StorageAccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &MediaService{
		client:    client,
		bucket:    cfg.StorageBucketName,
		publicURL: strings.TrimSuffix(cfg.StoragePublicURL, "/"),
	}, nil
}

// UploadAttachment validates and stores an attachment, returning its public
// URL.
func (s *MediaService) UploadAttachment(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	data, contentType, err := readUpload(file, header, model.MaxAttachmentSizeBytes)
	if err != nil {
		return "", err
	}

	ext, ok := attachmentTypes[contentType]
	if !ok {
		return "", model.ErrUnsupportedFileType
	}

	key := path.Join("attachments", uuid.NewString()+ext)
	if err := s.putObject(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

// Put stores already-processed bytes under a folder with a generated key.
func (s *MediaService) Put(ctx context.Context, folder string, data []byte, contentType, ext string) (string, error) {
	key := path.Join(folder, uuid.NewString()+ext)
	if err := s.putObject(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *MediaService) putObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// readUpload loads an upload into memory with size and type checks.
func readUpload(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if header.Size > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	limited := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(len(data), 512)])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return data, contentType, nil
}

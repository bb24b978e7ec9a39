// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/config"
)

// StorageService archives export artifacts (the issued-code CSV log) to S3
// so the label/export tooling can fetch them without access to the server's
// filesystem.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	Key    string `json:"key"`
	Bucket string `json:"bucket"`
	Size   int64  `json:"size"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// UploadCodeLog pushes the CSV log at path to S3 under a timestamped key.
func (s *StorageService) UploadCodeLog(path string) (*UploadResult, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("code log not found, no codes issued yet")
		}
		return nil, fmt.Errorf("failed to read code log: %w", err)
	}

	key := fmt.Sprintf("exports/issued-codes-%s.csv", time.Now().UTC().Format("20060102-150405"))
	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.config.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload code log: %w", err)
	}

	return &UploadResult{
		Key:    key,
		Bucket: s.config.AWS.S3Bucket,
		Size:   int64(len(data)),
	}, nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"inkblog/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, prefix, ext string, file io.Reader, size int64, contentType string) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	bucket string
	// publicURL is the base the bucket is reachable under from browsers.
	publicURL string
}

const publicReadPolicy = `{
	"Version": "2012-10-17",
	"Statement": [{
		"Effect": "Allow",
		"Principal": {"AWS": ["*"]},
		"Action": ["s3:GetObject"],
		"Resource": ["arn:aws:s3:::%s/*"]
	}]
}`

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", cfg.MinIO.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", cfg.MinIO.BucketName, err)
		}

		policy := fmt.Sprintf(publicReadPolicy, cfg.MinIO.BucketName)
		if err := client.SetBucketPolicy(ctx, cfg.MinIO.BucketName, policy); err != nil {
			return nil, fmt.Errorf("error setting bucket policy: %w", err)
		}

		log.Printf("Created bucket %s", cfg.MinIO.BucketName)
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.MinIO.BucketName,
		publicURL: strings.TrimSuffix(cfg.MinIO.PublicURL, "/"),
	}, nil
}

// ObjectName lays uploads out as <prefix>/<yyyy>/<mm>/<uuid><ext>.
func ObjectName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s",
		strings.Trim(prefix, "/"),
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext)
}

// PublicURL joins the public base, bucket and object name.
func PublicURL(base, bucket, objectName string) string {
	return strings.TrimSuffix(base, "/") + "/" + path.Join(bucket, objectName)
}

func (m *MinIOClient) UploadImage(ctx context.Context, prefix, ext string, file io.Reader, size int64, contentType string) (string, string, error) {
	now := time.Now().UTC()
	objectName := ObjectName(prefix, ext, now)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("error uploading to MinIO: %w", err)
	}

	return objectName, PublicURL(m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("error removing from MinIO: %w", err)
	}
	return nil
}

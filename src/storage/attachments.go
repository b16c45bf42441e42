// Package storage keeps request attachments in a MinIO bucket. The engine
// only ever stores the object key on the request; serving the bytes back is
// plain object storage plumbing.
package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/scopetrack/scopetrack-go/src/config"
)

type AttachmentStore struct {
	client *minioSDK.Client
	bucket string
}

// NewAttachmentStore connects to MinIO and ensures the bucket exists.
func NewAttachmentStore() (*AttachmentStore, error) {
	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		log.Printf("Bucket created: %s", config.MinioBucket)
	}

	return &AttachmentStore{client: client, bucket: config.MinioBucket}, nil
}

// Upload stores the file under a key derived from the request identity and
// returns the key.
func (s *AttachmentStore) Upload(ctx context.Context, projectID, requestID uuid.UUID, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s/%s", projectID, requestID, file.Filename)
	contentType := file.Header.Get("Content-Type")

	_, err = s.client.PutObject(ctx, s.bucket, key, src, file.Size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload attachment: %w", err)
	}
	return key, nil
}

// Download fetches an attachment by object key.
func (s *AttachmentStore) Download(ctx context.Context, key string) (*minioSDK.Object, error) {
	return s.client.GetObject(ctx, s.bucket, key, minioSDK.GetObjectOptions{})
}

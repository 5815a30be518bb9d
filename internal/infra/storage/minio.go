package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

type MinioStore struct {
	client        *minio.Client
	bucketName    string
	region        string
	publicBaseURL string
}

// NewMinio buat koneksi MinIO dan pastikan bucket ada
func NewMinio(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool, publicBaseURL string) (*MinioStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: cli, bucketName: bucket, region: region, publicBaseURL: publicBaseURL}, nil
}

// Upload implementasi ObjectStore
func (s *MinioStore) Upload(ctx context.Context, obj files.Object) (string, error) {
	if err := checkObject(obj); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, s.bucketName, obj.Key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType: obj.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: minio put %s: %v", files.ErrStorage, obj.Key, err)
	}

	// URL publik (bucket harus public-read), kalau private harus generate presigned URL
	if s.publicBaseURL != "" {
		return joinURL(s.publicBaseURL, obj.Key), nil
	}
	endpoint := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, s.bucketName, obj.Key), nil
}

func (s *MinioStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s not found", s.bucketName)
	}
	return nil
}

// Package storage holds the object store backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ctrlKshav/feedy-backend/internal/config"
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// New builds the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (files.ObjectStore, error) {
	st := cfg.Storage
	switch st.Backend {
	case config.StorageCloudinary:
		c := st.Cloudinary
		s, err := NewCloudinary(c.CloudName, c.APIKey, c.APISecret, c.Folder)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageMinio:
		m := st.Minio
		s, err := NewMinio(ctx, m.Endpoint, m.Region, m.BucketName, m.AccessKey, m.SecretKey, m.UseSSL, m.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StorageS3:
		o := st.S3
		s, err := NewS3(S3Options{
			Endpoint:        o.Endpoint,
			Region:          o.Region,
			Bucket:          o.Bucket,
			AccessKeyID:     o.AccessKeyID,
			SecretAccessKey: o.SecretAccessKey,
			PathStyle:       o.PathStyle,
			PublicBaseURL:   o.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", st.Backend)
}

// checkObject runs before any network call.
func checkObject(obj files.Object) error {
	if _, err := files.Classify(obj.Name); err != nil {
		return err
	}
	if obj.Key == "" || obj.Body == nil {
		return errors.New("storage: object key and body are required")
	}
	return nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

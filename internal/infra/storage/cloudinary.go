package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// cloudinaryAPI is the two calls the store needs from the SDK.
type cloudinaryAPI interface {
	upload(ctx context.Context, obj files.Object, folder string) (*uploader.UploadResult, error)
	ping(ctx context.Context) error
}

type sdkCloudinary struct {
	cld *cloudinary.Cloudinary
}

func (s sdkCloudinary) upload(ctx context.Context, obj files.Object, folder string) (*uploader.UploadResult, error) {
	publicID := strings.TrimSuffix(obj.Key, path.Ext(obj.Key))
	if folder != "" {
		publicID = path.Join(folder, publicID)
	}
	return s.cld.Upload.Upload(ctx, obj.Body, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "auto",
	})
}

func (s sdkCloudinary) ping(ctx context.Context) error {
	_, err := s.cld.Admin.Ping(ctx)
	return err
}

type CloudinaryStore struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{api: sdkCloudinary{cld: cld}, folder: strings.Trim(folder, "/")}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, obj files.Object) (string, error) {
	if err := checkObject(obj); err != nil {
		return "", err
	}

	res, err := s.api.upload(ctx, obj, s.folder)
	if err != nil {
		return "", fmt.Errorf("%w: cloudinary: %v", files.ErrStorage, err)
	}
	if res == nil {
		return "", fmt.Errorf("%w: cloudinary returned no result", files.ErrStorage)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: cloudinary: %s", files.ErrStorage, res.Error.Message)
	}
	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	if url == "" {
		return "", fmt.Errorf("%w: cloudinary returned an empty url", files.ErrStorage)
	}
	return url, nil
}

func (s *CloudinaryStore) Ping(ctx context.Context) error {
	return s.api.ping(ctx)
}

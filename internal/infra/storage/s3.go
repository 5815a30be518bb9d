package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// S3Options mirrors the storage.s3 config block.
type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
	PublicBaseURL   string
}

// s3API is the subset of the SDK client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type S3Store struct {
	api        s3API
	bucket     string
	publicBase string
}

func NewS3(opts S3Options) (*S3Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" || strings.TrimSpace(opts.Region) == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket and region are required")
	}
	// requests are always signed with static keys
	if strings.TrimSpace(opts.AccessKeyID) == "" || strings.TrimSpace(opts.SecretAccessKey) == "" {
		return nil, fmt.Errorf("incomplete s3 config: access key id and secret access key are required")
	}

	s3opts := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyle,
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
	}
	if ep := strings.TrimSpace(opts.Endpoint); ep != "" {
		if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
			ep = "https://" + ep
		}
		s3opts.BaseEndpoint = aws.String(strings.TrimRight(ep, "/"))
	}

	publicBase := strings.TrimSpace(opts.PublicBaseURL)
	if publicBase == "" {
		if s3opts.BaseEndpoint != nil {
			publicBase = *s3opts.BaseEndpoint + "/" + opts.Bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
	}

	return &S3Store{api: s3.New(s3opts), bucket: opts.Bucket, publicBase: publicBase}, nil
}

func (s *S3Store) Upload(ctx context.Context, obj files.Object) (string, error) {
	if err := checkObject(obj); err != nil {
		return "", err
	}

	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	}
	if obj.Size > 0 {
		in.ContentLength = aws.Int64(obj.Size)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("%w: s3 put %s: %v", files.ErrStorage, obj.Key, err)
	}
	return joinURL(s.publicBase, obj.Key), nil
}

func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

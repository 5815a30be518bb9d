package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/ctrlKshav/feedy-backend/internal/config"
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

type fakeCloudinary struct {
	res    *uploader.UploadResult
	err    error
	calls  int
	folder string
}

func (f *fakeCloudinary) upload(ctx context.Context, obj files.Object, folder string) (*uploader.UploadResult, error) {
	f.calls++
	f.folder = folder
	return f.res, f.err
}

func (f *fakeCloudinary) ping(ctx context.Context) error { return f.err }

type fakeS3 struct {
	put   *s3.PutObjectInput
	err   error
	calls int
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.put = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.err
}

func sampleObject(name string) files.Object {
	return files.Object{
		Key:         "uploads/2026/10/14/abc" + strings.ToLower(name[strings.LastIndex(name, "."):]),
		Name:        name,
		ContentType: files.ContentType(name),
		Size:        4,
		Body:        strings.NewReader("data"),
	}
}

func TestCloudinaryStore_Upload(t *testing.T) {
	fake := &fakeCloudinary{res: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/abc.jpg", URL: "http://res.cloudinary.com/demo/image/upload/abc.jpg"}}
	s := &CloudinaryStore{api: fake, folder: "feedy"}

	url, err := s.Upload(context.Background(), sampleObject("design.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://res.cloudinary.com/demo/image/upload/abc.jpg" {
		t.Fatalf("expected secure url, got %s", url)
	}
	if fake.folder != "feedy" {
		t.Fatalf("folder not forwarded: %q", fake.folder)
	}
}

func TestCloudinaryStore_FallsBackToPlainURL(t *testing.T) {
	s := &CloudinaryStore{api: &fakeCloudinary{res: &uploader.UploadResult{URL: "http://res.cloudinary.com/demo/raw/upload/abc.pdf"}}}

	url, err := s.Upload(context.Background(), sampleObject("brief.pdf"))
	if err != nil || url != "http://res.cloudinary.com/demo/raw/upload/abc.pdf" {
		t.Fatalf("got %q, %v", url, err)
	}
}

func TestCloudinaryStore_Failures(t *testing.T) {
	cases := map[string]*fakeCloudinary{
		"sdk error":  {err: errors.New("network down")},
		"api error":  {res: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid Signature"}}},
		"empty url":  {res: &uploader.UploadResult{}},
		"nil result": {},
	}
	for name, fake := range cases {
		t.Run(name, func(t *testing.T) {
			s := &CloudinaryStore{api: fake}
			_, err := s.Upload(context.Background(), sampleObject("design.png"))
			if !errors.Is(err, files.ErrStorage) {
				t.Fatalf("expected ErrStorage, got %v", err)
			}
		})
	}
}

func TestStores_RejectUnsupportedBeforeNetwork(t *testing.T) {
	cl := &fakeCloudinary{res: &uploader.UploadResult{SecureURL: "https://x"}}
	s3fake := &fakeS3{}
	stores := map[string]files.ObjectStore{
		"cloudinary": &CloudinaryStore{api: cl},
		"s3":         &S3Store{api: s3fake, bucket: "b", publicBase: "https://b.example.com"},
	}
	for name, st := range stores {
		_, err := st.Upload(context.Background(), sampleObject("anim.gif"))
		if !errors.Is(err, files.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
	if cl.calls != 0 || s3fake.calls != 0 {
		t.Fatalf("no backend call expected, got cloudinary=%d s3=%d", cl.calls, s3fake.calls)
	}
}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Store{api: fake, bucket: "designs", publicBase: "https://designs.s3.eu-west-1.amazonaws.com/"}

	obj := sampleObject("hero.webp")
	url, err := s.Upload(context.Background(), obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://designs.s3.eu-west-1.amazonaws.com/"+obj.Key {
		t.Fatalf("unexpected url %s", url)
	}
	if *fake.put.Bucket != "designs" || *fake.put.Key != obj.Key || *fake.put.ContentType != "image/webp" {
		t.Fatalf("unexpected put input %+v", fake.put)
	}

	fake.err = errors.New("access denied")
	if _, err := s.Upload(context.Background(), sampleObject("hero.webp")); !errors.Is(err, files.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestNewS3_PublicBase(t *testing.T) {
	s, err := NewS3(S3Options{Region: "eu-west-1", Bucket: "designs", AccessKeyID: "AKID", SecretAccessKey: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.publicBase != "https://designs.s3.eu-west-1.amazonaws.com" {
		t.Fatalf("unexpected public base %s", s.publicBase)
	}

	s, err = NewS3(S3Options{Region: "auto", Bucket: "designs", Endpoint: "r2.example.com/", PathStyle: true, AccessKeyID: "AKID", SecretAccessKey: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.publicBase != "https://r2.example.com/designs" {
		t.Fatalf("unexpected public base %s", s.publicBase)
	}

	if _, err := NewS3(S3Options{Region: "eu-west-1"}); err == nil {
		t.Fatal("expected error without bucket")
	}
	if _, err := NewS3(S3Options{Region: "eu-west-1", Bucket: "designs"}); err == nil {
		t.Fatal("expected error without access keys")
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Backend = "ftp"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestJoinURL(t *testing.T) {
	if got := joinURL("https://cdn.example.com/", "/uploads/a.png"); got != "https://cdn.example.com/uploads/a.png" {
		t.Fatalf("unexpected %s", got)
	}
}

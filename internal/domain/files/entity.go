package files

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileType enum
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
)

// allowed extensions and the file type each one maps to
var allowedExtensions = map[string]FileType{
	".png":  FileTypeImage,
	".jpg":  FileTypeImage,
	".jpeg": FileTypeImage,
	".webp": FileTypeImage,
	".pdf":  FileTypePDF,
}

// UploadedFile is what the upload endpoint hands back to the client.
// The client resubmits it (as an analysis item) later; nothing is persisted.
type UploadedFile struct {
	SourceName    string   `json:"image_name"`
	FileType      FileType `json:"file_type"`
	StoredURL     string   `json:"image_url"`
	ExtractedText string   `json:"pdf_text,omitempty"`
}

// Classify maps a file name to its FileType using the extension allow-list.
func Classify(name string) (FileType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	ft, ok := allowedExtensions[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return "", fmt.Errorf("%w: please upload PNG, JPG, WEBP or PDF files, got %s", ErrUnsupportedFormat, ext)
	}
	return ft, nil
}

// ContentType returns a best-effort MIME type for an allowed file name.
func ContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}

// ParseFileType reads the optional file_type field of an analysis item.
// Empty means image, like the upload endpoint's default.
func ParseFileType(raw string) (FileType, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FileTypeImage:
		return FileTypeImage, nil
	case FileTypePDF:
		return FileTypePDF, nil
	}
	return "", fmt.Errorf("%w: unknown file_type %q", ErrUnsupportedFormat, raw)
}

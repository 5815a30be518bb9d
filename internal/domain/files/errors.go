package files

import "errors"

var (
	// ErrUnsupportedFormat is a client error: the extension is not on the allow-list.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrStorage indicates the object store rejected the upload or returned no URL.
	ErrStorage = errors.New("file upload failed")

	// ErrExtraction indicates the PDF could not be parsed.
	ErrExtraction = errors.New("pdf text extraction failed")
)

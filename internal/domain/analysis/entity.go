package analysis

import (
	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// Status enum
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Item is one file reference inside an analysis request.
type Item struct {
	URL      string         `json:"image_url"`
	Name     string         `json:"image_name"`
	FileType files.FileType `json:"file_type,omitempty"`
	Text     string         `json:"pdf_text,omitempty"`
}

// Request drives one analysis call. PersonaOverride wins over the default
// persona when it is not blank.
type Request struct {
	Items           []Item
	Question        string
	PersonaOverride string
}

// Result is produced once per input item, in input order.
type Result struct {
	ImageName    string         `json:"image_name"`
	ImageURL     string         `json:"image_url"`
	FileType     files.FileType `json:"file_type"`
	ResponseText string         `json:"response"`
	Status       Status         `json:"status"`
}

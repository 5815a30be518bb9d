package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// PageSeparator sits between the text of consecutive pages.
const PageSeparator = "\n\n"

// Extractor pulls the plain text layer out of a PDF. It has no state.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// ExtractText reads every page in order and joins their text with PageSeparator.
func (Extractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: %v", files.ErrExtraction, rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", files.ErrExtraction, err)
	}

	n := doc.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", files.ErrExtraction, i, err)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, PageSeparator), nil
}

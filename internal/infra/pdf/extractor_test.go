package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()
	n := len(pageTexts)
	// objects: 1 catalog, 2 pages, 3 font, then (page, content) per page
	var objs []string
	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtractor_PagesInOrder(t *testing.T) {
	data := buildPDF(t, "Alpha page", "Beta page", "Gamma page")

	text, err := NewExtractor().ExtractText(context.Background(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := strings.Index(text, "Alpha page")
	b := strings.Index(text, "Beta page")
	c := strings.Index(text, "Gamma page")
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("missing page text: %q", text)
	}
	if !(a < b && b < c) {
		t.Fatalf("pages out of order: %q", text)
	}
	if !strings.Contains(text[a:c], PageSeparator) {
		t.Fatalf("pages should be separated by a blank line: %q", text)
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	data := buildPDF(t, "Same text")
	ex := NewExtractor()

	first, err := ex.ExtractText(context.Background(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := ex.ExtractText(context.Background(), bytes.NewReader(data), int64(len(data)))
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}

func TestExtractor_InvalidDocument(t *testing.T) {
	junk := []byte(strings.Repeat("this is not a pdf document ", 10))

	_, err := NewExtractor().ExtractText(context.Background(), bytes.NewReader(junk), int64(len(junk)))
	if !errors.Is(err, files.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

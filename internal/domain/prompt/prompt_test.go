package prompt

import (
	"strings"
	"testing"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

func TestBuildAnalysisPrompt_ContainsPersonaAndQuestion(t *testing.T) {
	persona := "You are a 100% pragmatic brand designer."
	question := "Is the CTA visible?"

	for _, ft := range []files.FileType{files.FileTypeImage, files.FileTypePDF} {
		got := BuildAnalysisPrompt(persona, question, ft)
		if !strings.Contains(got, persona) {
			t.Fatalf("%s prompt missing persona: %s", ft, got)
		}
		if !strings.Contains(got, "**Specific Focus**: "+question) {
			t.Fatalf("%s prompt missing question: %s", ft, got)
		}
		if !strings.Contains(got, "Never qualify statements with AI references") {
			t.Fatalf("%s prompt missing voice directive", ft)
		}
		if strings.Contains(got, "%!") {
			t.Fatalf("%s prompt has formatting artifacts: %s", ft, got)
		}
	}
}

func TestBuildAnalysisPrompt_ImageVsDocumentFraming(t *testing.T) {
	image := BuildAnalysisPrompt("p", "q", files.FileTypeImage)
	doc := BuildAnalysisPrompt("p", "q", files.FileTypePDF)

	if !strings.Contains(image, "4. **Expert Considerations**") {
		t.Fatal("image prompt should include expert considerations")
	}
	if strings.Contains(doc, "Expert Considerations") {
		t.Fatal("document prompt should not include expert considerations")
	}
	if !strings.Contains(doc, "Document structure assessment") {
		t.Fatal("document prompt should use document framing")
	}
	if strings.Contains(image, "PDF") {
		t.Fatal("image prompt should not mention PDFs")
	}
}

func TestBuildDocumentPrompt(t *testing.T) {
	got := BuildDocumentPrompt("persona", "question", "Quarterly report\n\nPage two")
	if !strings.HasSuffix(strings.TrimSpace(got), "Quarterly report\n\nPage two") {
		t.Fatalf("extracted text should close the prompt: %q", got)
	}

	empty := BuildDocumentPrompt("persona", "question", "  ")
	if !strings.Contains(empty, NoTextPlaceholder) {
		t.Fatalf("expected placeholder for empty text: %q", empty)
	}
}

func TestBuildPersonaRefinementPrompt(t *testing.T) {
	got := BuildPersonaRefinementPrompt("friendly mentor")
	if !strings.HasPrefix(got, "Input Persona: friendly mentor\n") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	for _, h := range []string{"## Persona Overview", "## Core Competencies", "## Interaction Framework", "## Visual Identity Guidelines", "## Example Scenarios"} {
		if !strings.Contains(got, h) {
			t.Fatalf("missing section %q", h)
		}
	}
}

package prompt

import (
	"fmt"
	"strings"

	"github.com/ctrlKshav/feedy-backend/internal/domain/files"
)

const voiceDirective = `IMPORTANT: Present as first-person expert analysis using "I recommend"/"My assessment shows". Never qualify statements with AI references. Fully own your professional perspective.`

const evaluationSection = `2. **Detailed Evaluation** (Use bullet points)
[✔] **Strengths**:
{{bullet points highlighting exemplary elements}}

[⚠️] **Opportunities**:
{{bullet points proposing targeted improvements}}

3. **Professional Recommendations**
- Critical revisions (urgent needs)
- Value-add refinements (strategic improvements)
- Testing opportunities (proven optimization approaches)`

const imageTemplate = `Adopt this professional persona:
%s

Using your expertise, conduct a thorough analysis of the provided design. Follow this structure:

**ANALYSIS FRAMEWORK**
1. **First Impressions**
- Share your immediate professional assessment
- Brand alignment evaluation
- Functional clarity assessment

%s

4. **Expert Considerations**
- Accessibility audit (WCAG 2.1+ compliance)
- Responsive design integrity
- Cross-platform performance
- Cognitive ergonomics

**FORMATTING REQUIREMENTS**
- Maintain authoritative yet collaborative tone
- Cite relevant design methodologies from your expertise
- Flag implementation effort (Low/Medium/High)
- Use markdown bolding for section headers

**Specific Focus**: %s

%s`

const documentTemplate = `Adopt this professional persona:
%s

I'm going to provide you with text extracted from a PDF document. Please analyze this as a document design expert, focusing on:

- Document structure assessment
- Information architecture and hierarchy
- Typography and readability
- Content organization
- Clarity and effectiveness of communication

Using your expertise, conduct a thorough analysis of the provided document. Follow this structure:

**ANALYSIS FRAMEWORK**
1. **First Impressions**
- Share your professional assessment of the document
- Purpose clarity assessment
- Overall effectiveness evaluation

%s

**FORMATTING REQUIREMENTS**
- Maintain authoritative yet collaborative tone
- Cite relevant document design methodologies from your expertise
- Flag implementation effort (Low/Medium/High)
- Use markdown bolding for section headers

**Specific Focus**: %s

%s`

// NoTextPlaceholder stands in for a PDF whose text layer is empty.
const NoTextPlaceholder = "(no extractable text was found in this document)"

// BuildAnalysisPrompt renders the image or document framework around persona and question.
// For PDFs the extracted text is appended separately by BuildDocumentPrompt.
func BuildAnalysisPrompt(persona, question string, fileType files.FileType) string {
	if fileType == files.FileTypePDF {
		return fmt.Sprintf(documentTemplate, persona, evaluationSection, question, voiceDirective)
	}
	return fmt.Sprintf(imageTemplate, persona, evaluationSection, question, voiceDirective)
}

// BuildDocumentPrompt is the document framework followed by the extracted PDF text.
func BuildDocumentPrompt(persona, question, text string) string {
	if strings.TrimSpace(text) == "" {
		text = NoTextPlaceholder
	}
	var b strings.Builder
	b.WriteString(BuildAnalysisPrompt(persona, question, files.FileTypePDF))
	b.WriteString("\n\nHere's the extracted text from the PDF:\n\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}

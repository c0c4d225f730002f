package prompt

import (
	"fmt"
	"strings"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
)

// GetSystemPrompt returns the fixed risk-extraction instruction. The line
// format it mandates is what the response parser recognizes, so wording
// changes here must stay in sync with the parser.
func GetSystemPrompt() string {
	return "You are a legal document assistant. Analyze the document below and extract ONLY the clauses that include penalties/penalty, " +
		"fees, user obligations, personal data usage, disqualification, or legal consequences.\n" +
		"Ignore general descriptions or unrelated content.\n" +
		"Format your response as follows:\n" +
		"Title: [Your Title Here]\n" +
		"- [High Risk] Clause in plain English\n" +
		"- [Moderate Risk] Another clause...\n" +
		"- [Informational] Mild clauses, optional duties, or user advice\n\n" +
		"If no risks are found, return:\n" +
		"Title: No risks detected\n" +
		"- [Informational] No legal risks or obligations were found in this document.\n"
}

// GetAskPrompt builds the retrieval-augmented question prompt from the
// extracted risk clauses and the full document text.
func GetAskPrompt(question, fullText string, risks []analysis.RiskEntry) string {
	var context strings.Builder
	if len(risks) > 0 {
		context.WriteString("Key Risk Clauses:\n")
		for _, r := range risks {
			fmt.Fprintf(&context, "- [%s] %s\n", r.Severity, r.Text)
		}
	}
	if fullText != "" {
		context.WriteString("\n---\nFull Document Content:\n")
		context.WriteString(fullText)
	}

	return fmt.Sprintf(`You are a helpful legal assistant. Use the information below to answer the user's legal question accurately and clearly.
If the answer is not found, respond honestly with "I'm not sure based on this document".

### Document Context:
%s

### User Question:
%s

### Answer:
`, context.String(), question)
}

// AskSystemPrompt is the system message for the question endpoint.
const AskSystemPrompt = "You are a legal reasoning assistant."

package documents

import (
	"context"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
)

// TextExtractor produces plain text from PDF bytes.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// ImageExtractor produces plain text from image bytes (OCR).
type ImageExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, toLang string) (string, error)
}

// Narrator renders a summary and its risk clauses as audio.
type Narrator interface {
	Narrate(ctx context.Context, summary string, risks []analysis.RiskEntry, targetLang string) ([]byte, error)
}

// RiskAnalyzer is the completion client: Analyze for structured extraction,
// Complete for free-form question answering over the same provider chain.
type RiskAnalyzer interface {
	Analyze(ctx context.Context, text, filename string) analysis.Result
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

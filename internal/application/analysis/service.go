package analysis

import (
	"context"

	"github.com/phuslu/log"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/ai"
	domanalysis "github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/ai/prompt"
)

// maxTextLength bounds the document text submitted to a completion
// provider. Truncation is silent: content past the boundary is not analyzed.
const maxTextLength = 12000

// Analyzer is the risk completion client. It walks an ordered chain of
// completion providers and parses the first successful completion; when the
// chain is exhausted it degrades to the fixed failure result instead of
// returning an error.
type Analyzer struct {
	providers []ai.Provider
	logger    log.Logger
}

func NewAnalyzer(providers []ai.Provider, logger log.Logger) *Analyzer {
	return &Analyzer{providers: providers, logger: logger}
}

// Analyze turns document text into a parsed analysis result. The returned
// result is not yet normalized; callers apply domanalysis.Normalize before
// exposing it.
func (a *Analyzer) Analyze(ctx context.Context, text, filename string) domanalysis.Result {
	processed := truncate(text, maxTextLength)
	system := prompt.GetSystemPrompt()

	var lastErr error
	for _, p := range a.providers {
		if !p.Configured() {
			continue
		}
		output, err := p.Complete(ctx, system, processed)
		if err != nil {
			a.logger.Error().Err(err).Str("provider", p.Name()).Msg("completion provider failed")
			lastErr = err
			continue
		}
		return domanalysis.ParseCompletion(output, text, filename)
	}

	if lastErr != nil {
		return domanalysis.FailedResult(lastErr.Error())
	}
	return domanalysis.FailedResult(domanalysis.NoAPIKeyMessage)
}

// Complete runs a raw question prompt through the same provider chain. Used
// by the document Q&A flow, which needs the answer text rather than a parsed
// risk list.
func (a *Analyzer) Complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for _, p := range a.providers {
		if !p.Configured() {
			continue
		}
		answer, err := p.Complete(ctx, system, user)
		if err != nil {
			a.logger.Error().Err(err).Str("provider", p.Name()).Msg("completion provider failed")
			lastErr = err
			continue
		}
		return answer, nil
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", ai.ErrNotConfigured
}

// truncate cuts text to at most limit characters, counted in runes so a
// multi-byte document is not cut mid-character.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

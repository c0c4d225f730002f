package speech

import (
	"context"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
)

// Synthesizer narrates an analysis result: it renders the SSML script and
// sends it to the speech service.
type Synthesizer struct {
	client *Client
}

func NewSynthesizer(client *Client) *Synthesizer {
	return &Synthesizer{client: client}
}

func (s *Synthesizer) Narrate(ctx context.Context, summary string, risks []analysis.RiskEntry, targetLang string) ([]byte, error) {
	return s.client.Synthesize(ctx, BuildSSML(summary, risks, targetLang))
}

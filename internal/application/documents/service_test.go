package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/agents"
	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	return s.text, s.err
}

type stubAnalyzer struct {
	result   analysis.Result
	answer   string
	err      error
	lastText string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, text, filename string) analysis.Result {
	s.lastText = text
	return s.result
}

func (s *stubAnalyzer) Complete(ctx context.Context, system, user string) (string, error) {
	return s.answer, s.err
}

type stubTranslator struct {
	prefix string
	err    error
}

func (s *stubTranslator) Translate(ctx context.Context, text, toLang string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.prefix + text, nil
}

type stubNarrator struct {
	audio []byte
	err   error
}

func (s *stubNarrator) Narrate(ctx context.Context, summary string, risks []analysis.RiskEntry, targetLang string) ([]byte, error) {
	return s.audio, s.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(analyzer *stubAnalyzer, translator *stubTranslator, narrator *stubNarrator) *Service {
	return NewService(
		&stubExtractor{text: "pdf text"},
		&stubExtractor{text: "ocr text"},
		analyzer,
		translator,
		narrator,
		fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		log.Logger{Level: log.PanicLevel},
	)
}

func TestServiceBootstrapsDefaultTeam(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{}, &stubNarrator{})

	all := svc.Registry().All()
	require.Len(t, all, 6)
	assert.Equal(t, "MainManager", all[0].Name)
	assert.Equal(t, agents.RoleManager, all[0].Role)

	wantRoles := []agents.Role{
		agents.RolePDF, agents.RoleOCR, agents.RoleRisk,
		agents.RoleTranslation, agents.RoleSpeech,
	}
	team := svc.Manager().Team()
	require.Len(t, team, len(wantRoles))
	for i, id := range team {
		a, err := svc.Registry().Get(id)
		require.NoError(t, err)
		assert.Equal(t, wantRoles[i], a.Role)
		assert.Equal(t, svc.Manager().ID, a.ManagerID)
		assert.Equal(t, agents.StatusIdle, a.Status())
	}
}

func TestSubmitDocumentPlainText(t *testing.T) {
	analyzerStub := &stubAnalyzer{result: analysis.Result{
		Title: "Rental Risks",
		Risks: []analysis.RiskEntry{{Text: "Late fee applies", Severity: analysis.SeverityHigh}},
	}}
	svc := newTestService(analyzerStub, &stubTranslator{}, &stubNarrator{})

	result, fullText, err := svc.SubmitDocument(context.Background(), []byte("lease body"), "lease.txt")
	require.NoError(t, err)

	assert.Equal(t, "lease body", fullText)
	assert.Equal(t, "lease body", analyzerStub.lastText)
	assert.Equal(t, "Rental Risks", result.Summary)
	require.Len(t, result.Risks, 1)
}

func TestSubmitDocumentRoutesByExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantText string
	}{
		{"PDF", "contract.PDF", "pdf text"},
		{"Image", "scan.jpeg", "ocr text"},
		{"Unknown Extension Treated As Text", "notes.csv", "raw bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzerStub := &stubAnalyzer{result: analysis.Result{Title: "T"}}
			svc := newTestService(analyzerStub, &stubTranslator{}, &stubNarrator{})

			_, fullText, err := svc.SubmitDocument(context.Background(), []byte("raw bytes"), tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, fullText)
		})
	}
}

func TestRegenerateNormalizesResult(t *testing.T) {
	analyzerStub := &stubAnalyzer{result: analysis.Result{
		Title: "Rental Risks",
		Risks: []analysis.RiskEntry{
			{Text: "Keep a copy", Severity: analysis.SeverityInfo},
			{Text: "Late fee applies", Severity: analysis.SeverityHigh},
			{Text: "Late fee applies", Severity: analysis.SeverityHigh},
		},
	}}
	svc := newTestService(analyzerStub, &stubTranslator{}, &stubNarrator{})

	result, err := svc.Regenerate(context.Background(), "lease body", "lease.txt")
	require.NoError(t, err)

	assert.Equal(t, "Rental Risks", result.Summary)
	assert.Equal(t, []analysis.RiskEntry{
		{Text: "Late fee applies", Severity: analysis.SeverityHigh},
		{Text: "Keep a copy", Severity: analysis.SeverityInfo},
	}, result.Risks)
}

func TestRegenerateEmptyFindingsGetSentinel(t *testing.T) {
	svc := newTestService(&stubAnalyzer{result: analysis.Result{Title: "Lease"}}, &stubTranslator{}, &stubNarrator{})

	result, err := svc.Regenerate(context.Background(), "lease body", "lease.txt")
	require.NoError(t, err)

	assert.Equal(t, analysis.NoRisksSummary, result.Summary)
	assert.Equal(t, []analysis.RiskEntry{{Text: analysis.NoRiskText, Severity: analysis.SeverityInfo}}, result.Risks)
}

func TestTranslateResultKeepsSeverities(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{prefix: "es:"}, &stubNarrator{})

	in := analysis.Result{
		Summary: "Rental Risks",
		Risks: []analysis.RiskEntry{
			{Text: "Late fee applies", Severity: analysis.SeverityHigh},
			{Text: "Keep a copy", Severity: analysis.SeverityInfo},
		},
	}

	got := svc.TranslateResult(context.Background(), in, "es")

	assert.Equal(t, "es:Rental Risks", got.Summary)
	assert.Equal(t, []analysis.RiskEntry{
		{Text: "es:Late fee applies", Severity: analysis.SeverityHigh},
		{Text: "es:Keep a copy", Severity: analysis.SeverityInfo},
	}, got.Risks)
	// Input untouched.
	assert.Equal(t, "Rental Risks", in.Summary)
}

func TestTranslateFailureKeepsOriginalText(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{err: errors.New("service down")}, &stubNarrator{})

	in := analysis.Result{
		Summary: "Rental Risks",
		Risks:   []analysis.RiskEntry{{Text: "Late fee applies", Severity: analysis.SeverityHigh}},
	}

	got := svc.TranslateResult(context.Background(), in, "es")
	assert.Equal(t, in, got)
}

func TestNarrate(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{}, &stubNarrator{audio: []byte("mp3 bytes")})

	audio, err := svc.Narrate(context.Background(), analysis.Result{Summary: "Rental Risks"}, "en")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3 bytes"), audio)
}

func TestNarrateEmptyAudioIsError(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{}, &stubNarrator{})

	_, err := svc.Narrate(context.Background(), analysis.Result{Summary: "Rental Risks"}, "en")
	assert.Error(t, err)
}

func TestAskTranslatesAnswer(t *testing.T) {
	svc := newTestService(&stubAnalyzer{answer: "the late fee is 5%"}, &stubTranslator{prefix: "es:"}, &stubNarrator{})

	answer, err := svc.Ask(context.Background(), "what is the late fee?", "lease body", nil, "es")
	require.NoError(t, err)
	assert.Equal(t, "es:the late fee is 5%", answer)

	answer, err = svc.Ask(context.Background(), "what is the late fee?", "lease body", nil, "en")
	require.NoError(t, err)
	assert.Equal(t, "the late fee is 5%", answer)
}

func TestAskPropagatesProviderFailure(t *testing.T) {
	svc := newTestService(&stubAnalyzer{err: errors.New("rate limited")}, &stubTranslator{}, &stubNarrator{})

	_, err := svc.Ask(context.Background(), "question", "lease body", nil, "en")
	assert.Error(t, err)
}

func TestDelegationUnavailablePropagates(t *testing.T) {
	svc := newTestService(&stubAnalyzer{}, &stubTranslator{}, &stubNarrator{})

	// Occupy the only risk analysis agent.
	var riskAgent *agents.Agent
	for _, a := range svc.Registry().All() {
		if a.Role == agents.RoleRisk {
			riskAgent = a
		}
	}
	require.NotNil(t, riskAgent)
	require.True(t, riskAgent.TryAcquire())

	_, err := svc.Regenerate(context.Background(), "lease body", "lease.txt")
	require.Error(t, err)

	var unavailable *agents.UnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.EqualError(t, err, "No idle risk_analysis agent available")
}

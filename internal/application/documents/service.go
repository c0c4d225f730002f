package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/agents"
	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/ai/prompt"
)

// Clock abstraction so tests can pin time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Task payloads. Handlers type-assert on these; a mismatched payload is a
// task failure, not a panic.

type RiskTask struct {
	Text     string
	Filename string
}

type TranslateTask struct {
	Text   string
	ToLang string
}

type SpeechTask struct {
	Summary    string
	Risks      []analysis.RiskEntry
	TargetLang string
}

// Service implements the document use-cases: upload, regeneration,
// translation, narration and Q&A. Every flow goes through the delegation
// router; the service owns the dispatch table binding each role to its
// adapter.
type Service struct {
	registry *agents.Registry
	manager  *agents.Manager
	router   *agents.Router
	analyzer RiskAnalyzer
	clock    Clock
	logger   log.Logger
}

// NewService builds the default agent team and wires the role handlers.
func NewService(
	pdf TextExtractor,
	ocr ImageExtractor,
	analyzer RiskAnalyzer,
	translator Translator,
	narrator Narrator,
	clock Clock,
	logger log.Logger,
) *Service {
	registry := agents.NewRegistry()
	manager := bootstrapTeam(registry)

	s := &Service{
		registry: registry,
		manager:  manager,
		analyzer: analyzer,
		clock:    clock,
		logger:   logger,
	}

	handlers := map[agents.Role]agents.TaskHandler{
		agents.RolePDF: func(ctx context.Context, payload any) (any, error) {
			data, ok := payload.([]byte)
			if !ok {
				return nil, fmt.Errorf("pdf task expects []byte, got %T", payload)
			}
			return pdf.ExtractText(ctx, data)
		},
		agents.RoleOCR: func(ctx context.Context, payload any) (any, error) {
			data, ok := payload.([]byte)
			if !ok {
				return nil, fmt.Errorf("ocr task expects []byte, got %T", payload)
			}
			return ocr.ExtractText(ctx, data)
		},
		agents.RoleRisk: func(ctx context.Context, payload any) (any, error) {
			task, ok := payload.(RiskTask)
			if !ok {
				return nil, fmt.Errorf("risk task expects RiskTask, got %T", payload)
			}
			return analyzer.Analyze(ctx, task.Text, task.Filename), nil
		},
		agents.RoleTranslation: func(ctx context.Context, payload any) (any, error) {
			task, ok := payload.(TranslateTask)
			if !ok {
				return nil, fmt.Errorf("translation task expects TranslateTask, got %T", payload)
			}
			translated, err := translator.Translate(ctx, task.Text, task.ToLang)
			if err != nil {
				// Degrade to the original text rather than failing the request.
				logger.Warn().Err(err).Msg("translation failed, keeping original text")
				return task.Text, nil
			}
			return translated, nil
		},
		agents.RoleSpeech: func(ctx context.Context, payload any) (any, error) {
			task, ok := payload.(SpeechTask)
			if !ok {
				return nil, fmt.Errorf("speech task expects SpeechTask, got %T", payload)
			}
			return narrator.Narrate(ctx, task.Summary, task.Risks, task.TargetLang)
		},
	}
	s.router = agents.NewRouter(registry, handlers, logger)
	return s
}

// bootstrapTeam creates the fixed default roster: one manager and one agent
// per role, teamed in registration order.
func bootstrapTeam(registry *agents.Registry) *agents.Manager {
	manager := agents.NewManager("MainManager")
	registry.Register(manager.Agent)

	for _, m := range []struct {
		name string
		role agents.Role
	}{
		{"PDFParser", agents.RolePDF},
		{"OCRScanner", agents.RoleOCR},
		{"RiskAnalyzer", agents.RoleRisk},
		{"Translator", agents.RoleTranslation},
		{"SpeechSynthesizer", agents.RoleSpeech},
	} {
		a := agents.NewAgent(m.name, m.role)
		registry.Register(a)
		manager.AddTeamMember(a)
	}
	return manager
}

// Registry exposes the agent store for the observability endpoint.
func (s *Service) Registry() *agents.Registry { return s.registry }

// Manager returns the team manager snapshot source.
func (s *Service) Manager() *agents.Manager { return s.manager }

// SubmitDocument extracts text from the uploaded file (by extension), runs
// risk analysis and returns the normalized result together with the full
// extracted text.
func (s *Service) SubmitDocument(ctx context.Context, data []byte, filename string) (analysis.Result, string, error) {
	started := s.clock.Now()

	var text string
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".") {
	case "pdf":
		res := s.router.Delegate(ctx, s.manager, agents.RolePDF, data)
		if res.Failed() {
			return analysis.Result{}, "", res.Err
		}
		text = res.Value.(string)
	case "png", "jpg", "jpeg":
		res := s.router.Delegate(ctx, s.manager, agents.RoleOCR, data)
		if res.Failed() {
			return analysis.Result{}, "", res.Err
		}
		text = res.Value.(string)
	default:
		text = string(data)
	}

	result, err := s.Regenerate(ctx, text, filename)
	if err != nil {
		return analysis.Result{}, "", err
	}

	s.logger.Info().
		Str("filename", filename).
		Int("risks", len(result.Risks)).
		Dur("duration", s.clock.Now().Sub(started)).
		Msg("document analyzed")
	return result, text, nil
}

// Regenerate re-runs risk analysis over previously extracted text.
func (s *Service) Regenerate(ctx context.Context, fullText, filename string) (analysis.Result, error) {
	res := s.router.Delegate(ctx, s.manager, agents.RoleRisk, RiskTask{Text: fullText, Filename: filename})
	if res.Failed() {
		return analysis.Result{}, res.Err
	}
	result, ok := res.Value.(analysis.Result)
	if !ok {
		return analysis.Result{}, fmt.Errorf("unexpected risk analysis result type %T", res.Value)
	}
	return analysis.Normalize(result), nil
}

// TranslateResult maps the summary and every clause through the translation
// agent. Severity tags are untouched and a failed translation keeps the
// original text, so the normalization invariants still hold.
func (s *Service) TranslateResult(ctx context.Context, result analysis.Result, targetLang string) analysis.Result {
	translated := result
	translated.Summary = s.translate(ctx, result.Summary, targetLang)
	translated.Risks = make([]analysis.RiskEntry, len(result.Risks))
	for i, r := range result.Risks {
		translated.Risks[i] = analysis.RiskEntry{
			Text:     s.translate(ctx, r.Text, targetLang),
			Severity: r.Severity,
		}
	}
	return translated
}

func (s *Service) translate(ctx context.Context, text, targetLang string) string {
	res := s.router.Delegate(ctx, s.manager, agents.RoleTranslation, TranslateTask{Text: text, ToLang: targetLang})
	if res.Failed() {
		s.logger.Warn().Err(res.Err).Msg("translation delegation failed, keeping original text")
		return text
	}
	return res.Value.(string)
}

// Narrate synthesizes the result as audio in the target language.
func (s *Service) Narrate(ctx context.Context, result analysis.Result, targetLang string) ([]byte, error) {
	res := s.router.Delegate(ctx, s.manager, agents.RoleSpeech, SpeechTask{
		Summary:    result.Summary,
		Risks:      result.Risks,
		TargetLang: targetLang,
	})
	if res.Failed() {
		return nil, res.Err
	}
	audio, ok := res.Value.([]byte)
	if !ok || len(audio) == 0 {
		return nil, fmt.Errorf("speech synthesis produced no audio")
	}
	return audio, nil
}

// Ask answers a free-form question about the document, grounded on the
// extracted clauses and the full text. The completion call goes straight to
// the provider chain; only the answer translation is delegated.
func (s *Service) Ask(ctx context.Context, question, fullText string, risks []analysis.RiskEntry, targetLang string) (string, error) {
	answer, err := s.analyzer.Complete(ctx, prompt.AskSystemPrompt, prompt.GetAskPrompt(question, fullText, risks))
	if err != nil {
		return "", fmt.Errorf("question answering failed: %w", err)
	}
	if targetLang != "" && targetLang != "en" {
		answer = s.translate(ctx, answer, targetLang)
	}
	return answer, nil
}

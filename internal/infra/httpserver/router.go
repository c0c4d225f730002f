package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	appdocs "github.com/selvicim45/LegalEagleEyeAI/internal/application/documents"
	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/agents"
	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/analysis"
	"github.com/selvicim45/LegalEagleEyeAI/internal/middleware"
)

type Router struct {
	docs *appdocs.Service
}

func NewRouter(docs *appdocs.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{docs: docs}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/agents", r.wrap(r.handleAgents))

	mux.Post("/upload", r.wrap(r.handleUpload))
	mux.Post("/regenerate", r.wrap(r.handleRegenerate))
	mux.Post("/translate", r.wrap(r.handleTranslate))
	mux.Post("/speak", r.wrap(r.handleSpeak))
	mux.Post("/ask", r.wrap(r.handleAsk))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var unavailable *agents.UnavailableError
			status := http.StatusInternalServerError
			if errors.As(err, &unavailable) {
				status = http.StatusServiceUnavailable
			}
			writeError(w, status, err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// analysisResponse is the wire shape shared by upload and regenerate.
type analysisResponse struct {
	Summary     string               `json:"summary"`
	RiskFactors []analysis.RiskEntry `json:"risk_factors"`
	FullText    string               `json:"full_text"`
}

// handleUpload accepts a multipart form with a "file" part and returns the
// normalized analysis together with the extracted text.
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, middleware.MaxUploadBytes)
	file, header, err := req.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return nil
	}
	defer file.Close()

	if err := middleware.ValidateFilename(header.Filename); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	middleware.IncrementAnalyses()
	result, fullText, err := r.docs.SubmitDocument(req.Context(), data, header.Filename)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	return writeJSON(w, analysisResponse{
		Summary:     result.Summary,
		RiskFactors: result.Risks,
		FullText:    fullText,
	})
}

// handleRegenerate re-runs risk analysis over previously extracted text.
func (r *Router) handleRegenerate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FullText string `json:"full_text"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if body.Filename == "" {
		body.Filename = "document.txt"
	}

	middleware.IncrementAnalyses()
	result, err := r.docs.Regenerate(req.Context(), body.FullText, body.Filename)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	return writeJSON(w, analysisResponse{
		Summary:     result.Summary,
		RiskFactors: result.Risks,
		FullText:    body.FullText,
	})
}

// handleTranslate maps a normalized result into the target language.
func (r *Router) handleTranslate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Summary     string               `json:"summary"`
		RiskFactors []analysis.RiskEntry `json:"risk_factors"`
		TargetLang  string               `json:"target_lang"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if err := middleware.ValidateTargetLang(body.TargetLang); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	if body.TargetLang == "" {
		body.TargetLang = "en"
	}

	middleware.IncrementTranslations()
	translated := r.docs.TranslateResult(req.Context(), analysis.Result{
		Summary: body.Summary,
		Risks:   body.RiskFactors,
	}, body.TargetLang)

	return writeJSON(w, map[string]any{
		"summary":      translated.Summary,
		"risk_factors": translated.Risks,
	})
}

// handleSpeak narrates a result as MP3 audio.
func (r *Router) handleSpeak(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Summary     string               `json:"summary"`
		RiskFactors []analysis.RiskEntry `json:"risk_factors"`
		TargetLang  string               `json:"target_lang"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if err := middleware.ValidateTargetLang(body.TargetLang); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	if body.TargetLang == "" {
		body.TargetLang = "en"
	}

	middleware.IncrementNarrations()
	audio, err := r.docs.Narrate(req.Context(), analysis.Result{
		Summary: body.Summary,
		Risks:   body.RiskFactors,
	}, body.TargetLang)
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `inline; filename="speech.mp3"`)
	_, err = w.Write(audio)
	return err
}

// handleAsk answers a question about the analyzed document.
func (r *Router) handleAsk(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Question    string               `json:"question"`
		RiskFactors []analysis.RiskEntry `json:"risk_factors"`
		FullText    string               `json:"full_text"`
		TargetLang  string               `json:"target_lang"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil
	}
	if body.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return nil
	}

	answer, err := r.docs.Ask(req.Context(), body.Question, body.FullText, body.RiskFactors, body.TargetLang)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"answer": answer})
}

// handleAgents returns a registry snapshot for observability.
func (r *Router) handleAgents(w http.ResponseWriter, req *http.Request) error {
	manager := r.docs.Manager()
	snapshots := make([]agents.Snapshot, 0)
	for _, a := range r.docs.Registry().All() {
		if a.ID == manager.ID {
			snapshots = append(snapshots, manager.Snapshot())
			continue
		}
		snapshots = append(snapshots, a.Snapshot())
	}
	return writeJSON(w, map[string]any{"agents": snapshots})
}

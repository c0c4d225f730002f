package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/phuslu/log"

	appanalysis "github.com/selvicim45/LegalEagleEyeAI/internal/application/analysis"
	appdocs "github.com/selvicim45/LegalEagleEyeAI/internal/application/documents"
	"github.com/selvicim45/LegalEagleEyeAI/internal/config"
	"github.com/selvicim45/LegalEagleEyeAI/internal/domain/ai"
	anthropicai "github.com/selvicim45/LegalEagleEyeAI/internal/infra/ai/anthropic"
	openaiai "github.com/selvicim45/LegalEagleEyeAI/internal/infra/ai/openai"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/extract"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/httpserver"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/speech"
	"github.com/selvicim45/LegalEagleEyeAI/internal/infra/translate"
	"github.com/selvicim45/LegalEagleEyeAI/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	logger := log.Logger{
		Level:      log.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}

	// Completion providers, in fallback order.
	providers := []ai.Provider{
		openaiai.NewAzureClient(cfg.AzureOpenAI.Key, cfg.AzureOpenAI.Endpoint, cfg.AzureOpenAI.Deployment),
		openaiai.NewClient(cfg.OpenAI.Key, cfg.OpenAI.Model),
		anthropicai.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model),
	}
	analyzer := appanalysis.NewAnalyzer(providers, logger)

	pdf := extract.NewPDFExtractor(logger)
	ocr := extract.NewOCRClient(cfg.Vision.Endpoint, cfg.Vision.Key)
	translator := translate.NewClient(cfg.Translator.Key, cfg.Translator.Region)
	narrator := speech.NewSynthesizer(speech.NewClient(cfg.Speech.Key, cfg.Speech.Region))

	docs := appdocs.NewService(pdf, ocr, analyzer, translator, narrator, appdocs.SystemClock{}, logger)

	checkers := map[string]middleware.HealthChecker{
		"completion": middleware.CheckerFunc(func(ctx context.Context) error {
			for _, p := range providers {
				if p.Configured() {
					return nil
				}
			}
			return fmt.Errorf("no completion provider configured")
		}),
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Mount("/", httpserver.NewRouter(docs, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/analyzer"
	"github.com/spigell/smart-ats/internal/analyzer/gemini"
	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/download"
	"github.com/spigell/smart-ats/internal/logger"
	"github.com/spigell/smart-ats/internal/pdftext"
	"github.com/spigell/smart-ats/internal/render"
	"github.com/spigell/smart-ats/internal/secrets"
	"github.com/spigell/smart-ats/internal/session"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

// newLogger builds the logger of one client run from the bound flags.
func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:    viper.GetBool("json"),
		Debug:   viper.GetBool("debug"),
		Color:   !viper.GetBool("no-color"),
		Session: uuid.NewString(),
	})
}

// newController wires a fresh session to the configured backend.
func newController(ctx context.Context, config *Config, log *zap.Logger) (*session.Controller, error) {
	a, err := newAnalyzer(ctx, config, log)
	if err != nil {
		return nil, err
	}

	return session.NewController(
		session.New(),
		&session.Config{Timeout: config.Timeout},
		session.Deps{
			Analyzer: a,
			Saver:    download.NewDir(config.OutputDir),
			Logger:   log,
		},
	), nil
}

func newAnalyzer(ctx context.Context, config *Config, log *zap.Logger) (analyzer.Analyzer, error) {
	switch backend := strings.ToLower(strings.TrimSpace(config.Backend)); backend {
	case "", "http":
		client := analyzer.NewHTTP(logger.WithFields(log, logger.BackendFields("http", config.Endpoint)...), config.Endpoint)
		if config.UserAgent != "" {
			client.UserAgent = config.UserAgent
		}
		return client, nil
	case "gemini":
		return newGeminiAnalyzer(ctx, config.Gemini, log)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", config.Backend)
	}
}

func newGeminiAnalyzer(ctx context.Context, cfg *GeminiConfig, log *zap.Logger) (analyzer.Analyzer, error) {
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewAnalyzer(generator, log, cfg.MaxLogLength), nil
}

// selectResume loads the PDF at path into the session.
func selectResume(ctrl *session.Controller, path string, log *zap.Logger) error {
	resume, err := ats.LoadResume(path)
	if err != nil {
		return err
	}

	fields := []zap.Field{zap.String(logger.FieldResume, resume.Name), zap.Int("bytes", len(resume.Data))}
	if doc, err := pdftext.Extract(resume.Data); err != nil {
		log.Warn("resume text is not readable locally", append(fields, zap.Error(err))...)
	} else {
		log.Info("resume selected", append(fields, zap.Int("pages", doc.PageCount))...)
	}

	ctrl.SelectFile(resume)
	return nil
}

// printState writes the current result view, followed by the error banner
// when the last trigger failed.
func printState(w io.Writer, state session.State, opts render.Options) error {
	if state.LastError == "" || state.Result != nil {
		if err := render.Fprint(w, render.Render(state.Result, state.Active), opts); err != nil {
			return err
		}
		if state.Active == ats.ExportPDF && state.Artifact != "" && state.LastError == "" {
			if _, err := fmt.Fprintf(w, "saved to %s\n", state.Artifact); err != nil {
				return err
			}
		}
	}

	if state.LastError != "" {
		return render.Banner(w, state.LastError, opts)
	}

	return nil
}

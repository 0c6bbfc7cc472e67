package gemini

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/analyzer"
	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/logger"
	"github.com/spigell/smart-ats/internal/pdftext"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// textExtractor pulls resume text out of the uploaded PDF.
type textExtractor func(data []byte) (*pdftext.Document, error)

//go:embed prompts/*.md
var prompts embed.FS

const defaultMaxLogLength = 200

// Analyzer answers analysis requests by prompting Gemini directly, without the
// analysis service in between.
type Analyzer struct {
	generator contentGenerator
	extract   textExtractor
	logger    *zap.Logger
	maxLogLen int
}

func NewAnalyzer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Analyzer{
		generator: generator,
		extract:   pdftext.Extract,
		logger:    logger.WithFields(log, logger.BackendFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (a *Analyzer) Name() string { return "gemini" }

func (a *Analyzer) Analyze(ctx context.Context, req *analyzer.Request) (*analyzer.Response, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}

	if req.Action.Binary() {
		return nil, fmt.Errorf("%s: %w", req.Action, analyzer.ErrUnsupportedAction)
	}

	template, err := promptTemplate(req.Action)
	if err != nil {
		return nil, err
	}

	if req.Resume == nil {
		return nil, errors.New("resume is required")
	}

	doc, err := a.extract(req.Resume.Data)
	if err != nil {
		return nil, fmt.Errorf("extracting resume text: %w", err)
	}

	prompt := buildPrompt(template, doc.Text, req.JobDescription)

	a.logger.Debug("gemini generate content request",
		zap.String("action", req.Action.String()),
		zap.Int("resume_pages", doc.PageCount),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("action", req.Action.String()),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	// The service forwards model text as a JSON string; do the same so the
	// decoder treats both backends alike.
	structured, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}

	return &analyzer.Response{Structured: structured}, nil
}

func promptTemplate(action ats.Action) (string, error) {
	data, err := prompts.ReadFile("prompts/" + action.String() + ".md")
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, analyzer.ErrUnsupportedAction)
	}
	return string(data), nil
}

func buildPrompt(template, resume, jobDescription string) string {
	prompt := strings.ReplaceAll(template, "{{RESUME}}", strings.TrimSpace(resume))
	return strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription))
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/analyzer"
	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/logger"
	"github.com/spigell/smart-ats/internal/result"
)

// ExportFilename is the name the exported resume is saved under.
const ExportFilename = "improved_resume.pdf"

var (
	errEmptyFile     = errors.New("service returned an empty file")
	errEmptyResponse = errors.New("service returned an empty response")
)

// Saver persists files produced by binary actions.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Config tunes the controller.
type Config struct {
	// Timeout bounds a single request. Zero disables the bound.
	Timeout time.Duration
}

// Deps aggregates the collaborators of the controller.
type Deps struct {
	Analyzer analyzer.Analyzer
	Saver    Saver
	Logger   *zap.Logger
}

// Controller validates user input, issues at most one analysis request at a
// time and stores the outcome in the session.
type Controller struct {
	session  *Session
	analyzer analyzer.Analyzer
	saver    Saver
	log      *zap.Logger
	timeout  time.Duration
}

func NewController(s *Session, cfg *Config, deps Deps) *Controller {
	if cfg == nil {
		cfg = &Config{}
	}

	return &Controller{
		session:  s,
		analyzer: deps.Analyzer,
		saver:    deps.Saver,
		log:      logger.WithFields(deps.Logger),
		timeout:  cfg.Timeout,
	}
}

// Session returns the session driven by the controller.
func (c *Controller) Session() *Session {
	return c.session
}

// SelectFile replaces the selected resume.
func (c *Controller) SelectFile(resume *ats.Resume) {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	c.session.resume = resume
}

// SetJobDescription replaces the job description text.
func (c *Controller) SetJobDescription(text string) {
	c.session.mu.Lock()
	defer c.session.mu.Unlock()

	c.session.jobDescription = text
}

// Trigger runs action against the current session. It returns ErrBusy while
// another request is in flight, a *ValidationError when input is missing and
// a *TransportError when the request itself fails. The outcome is also
// recorded in the session for rendering.
func (c *Controller) Trigger(ctx context.Context, action ats.Action) error {
	req, err := c.begin(action)
	if err != nil {
		return err
	}

	var resumeName string
	if req.Resume != nil {
		resumeName = req.Resume.Name
	}
	log := logger.WithFields(c.log, logger.ActionFields(action.String(), resumeName)...)
	log.Info("analysis started")

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()

	payload, artifact, err := c.execute(ctx, req)
	if err != nil {
		log.Error("analysis failed", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		c.fail()
		return &TransportError{Action: action, Err: err}
	}

	c.complete(payload, artifact)

	log.Info("analysis finished",
		zap.String("result", result.Name(payload)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return nil
}

func (c *Controller) begin(action ats.Action) (*analyzer.Request, error) {
	s := c.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return nil, ErrBusy
	}

	if verr := validate(action, s.resume, s.jobDescription); verr != nil {
		s.lastError = verr.Message
		c.log.Debug("analysis rejected", zap.String(logger.FieldAction, action.String()), zap.String("reason", verr.Message))
		return nil, verr
	}

	s.loading = true
	s.active = action
	s.lastError = ""
	s.result = nil

	return &analyzer.Request{
		Resume:         s.resume,
		JobDescription: s.jobDescription,
		Action:         action,
	}, nil
}

func (c *Controller) execute(ctx context.Context, req *analyzer.Request) (result.Payload, string, error) {
	if c.analyzer == nil {
		return nil, "", errors.New("analyzer is not configured")
	}

	resp, err := c.analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, "", err
	}

	if req.Action.Binary() {
		return c.export(ctx, resp)
	}

	payload := result.Decode(req.Action, resp.Structured)
	if payload == nil {
		return nil, "", errEmptyResponse
	}

	return payload, "", nil
}

func (c *Controller) export(ctx context.Context, resp *analyzer.Response) (result.Payload, string, error) {
	if len(resp.File) == 0 {
		return nil, "", errEmptyFile
	}

	if c.saver == nil {
		return nil, "", errors.New("saver is not configured")
	}

	path, err := c.saver.Save(ctx, ExportFilename, resp.File)
	if err != nil {
		return nil, "", fmt.Errorf("saving %s: %w", ExportFilename, err)
	}

	c.log.Info("exported resume saved",
		zap.String("path", path),
		zap.Int("bytes", len(resp.File)),
		zap.String("served_filename", resp.Filename),
		zap.String("content_type", resp.ContentType),
	)

	return result.Message{Text: result.ExportedMessage}, path, nil
}

func (c *Controller) complete(payload result.Payload, artifact string) {
	s := c.session
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.result = payload
	s.lastError = ""
	if artifact != "" {
		s.artifact = artifact
	}
}

func (c *Controller) fail() {
	s := c.session
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.result = nil
	s.lastError = GenericFailure
}

// Package analyzer sends analysis requests to a backend and returns the raw
// answer.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spigell/smart-ats/internal/ats"
)

// ErrUnsupportedAction is returned by backends that cannot serve an action.
var ErrUnsupportedAction = errors.New("action is not supported by this backend")

// Request is a single analysis request.
type Request struct {
	Resume         *ats.Resume
	JobDescription string
	Action         ats.Action
}

// Response holds either the structured "response" value or, for binary
// actions, the file produced by the backend.
type Response struct {
	Structured json.RawMessage

	File        []byte
	Filename    string
	ContentType string
}

// Analyzer is implemented by every backend.
type Analyzer interface {
	Analyze(ctx context.Context, req *Request) (*Response, error)
	Name() string
}

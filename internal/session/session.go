// Package session holds the state of one user session and the controller that
// drives analysis requests from it.
package session

import (
	"strings"
	"sync"

	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/result"
)

// Session is the mutable state of one interaction. Only the Controller
// changes it; everyone else reads snapshots.
type Session struct {
	mu sync.Mutex

	resume         *ats.Resume
	jobDescription string
	result         result.Payload
	loading        bool
	active         ats.Action
	lastError      string
	artifact       string
}

// State is a point in time copy of a Session.
type State struct {
	Resume         *ats.Resume
	JobDescription string
	Result         result.Payload
	Loading        bool
	// Active is the action that produced Result, kept after completion.
	Active    ats.Action
	LastError string
	// Artifact is the path of the last exported file.
	Artifact string
}

func New() *Session {
	return &Session{}
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Resume:         s.resume,
		JobDescription: s.jobDescription,
		Result:         s.result,
		Loading:        s.loading,
		Active:         s.active,
		LastError:      s.lastError,
		Artifact:       s.artifact,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

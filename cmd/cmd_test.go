package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/smart-ats/internal/analyzer"
	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/render"
	"github.com/spigell/smart-ats/internal/result"
	"github.com/spigell/smart-ats/internal/session"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "defaults", config: &Config{Endpoint: "http://localhost:8000", Backend: "http", Timeout: time.Minute}},
		{name: "gemini upper case", config: &Config{Endpoint: "http://localhost:8000", Backend: " Gemini "}},
		{name: "bad backend", config: &Config{Endpoint: "http://localhost:8000", Backend: "grpc"}, wantErr: true},
		{name: "bad endpoint", config: &Config{Endpoint: "localhost", Backend: "http"}, wantErr: true},
		{name: "negative timeout", config: &Config{Endpoint: "http://localhost:8000", Backend: "http", Timeout: -time.Second}, wantErr: true},
		{
			name:    "temperature out of range",
			config:  &Config{Endpoint: "http://localhost:8000", Backend: "http", Gemini: &GeminiConfig{Temperature: 2.5}},
			wantErr: true,
		},
		{
			name:    "negative log length",
			config:  &Config{Endpoint: "http://localhost:8000", Backend: "http", Gemini: &GeminiConfig{MaxLogLength: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(tt.config)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewAnalyzer(t *testing.T) {
	a, err := newAnalyzer(context.Background(), &Config{Endpoint: "http://example.com", Backend: "http", UserAgent: "tester"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client, ok := a.(*analyzer.Client)
	if !ok {
		t.Fatalf("expected http client, got %T", a)
	}
	if client.UserAgent != "tester" || client.Endpoint != "http://example.com" {
		t.Fatalf("unexpected client: %+v", client)
	}

	if _, err := newAnalyzer(context.Background(), &Config{Backend: "carrier-pigeon"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported backend")
	}

	t.Setenv(geminiAPIKeyEnv, "")
	if _, err := newAnalyzer(context.Background(), &Config{Backend: "gemini"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for gemini backend without api key")
	}
}

func TestMenu(t *testing.T) {
	items := menuItems()
	if len(items) != len(ats.Actions)+5 {
		t.Fatalf("unexpected menu size %d", len(items))
	}

	for _, a := range ats.Actions {
		got, ok := actionByLabel(a.Label())
		if !ok || got != a {
			t.Fatalf("label %q does not map back to %s", a.Label(), a)
		}
	}

	if _, ok := actionByLabel(PromptQuit); ok {
		t.Fatal("quit must not map to an action")
	}

	label := menuLabel(session.State{Resume: &ats.Resume{Name: "cv.pdf"}, JobDescription: " Go dev "})
	if label != "Resume: cv.pdf | Job description: 6 chars" {
		t.Fatalf("unexpected label: %q", label)
	}
}

func TestPrintState(t *testing.T) {
	tests := []struct {
		name     string
		state    session.State
		contains []string
		excludes []string
	}{
		{
			name:     "placeholder",
			state:    session.State{},
			contains: []string{render.PlaceholderText},
		},
		{
			name:     "transport failure shows only banner",
			state:    session.State{Active: ats.Summarize, LastError: session.GenericFailure},
			contains: []string{"⚠ " + session.GenericFailure},
			excludes: []string{render.PlaceholderText},
		},
		{
			name: "validation failure keeps result",
			state: session.State{
				Active:    ats.CheckScore,
				Result:    result.Score{Value: "82"},
				LastError: session.ErrMissingResume.Message,
			},
			contains: []string{"82 Match", "⚠ Please upload a resume first."},
		},
		{
			name: "export",
			state: session.State{
				Active:   ats.ExportPDF,
				Result:   result.Message{Text: result.ExportedMessage},
				Artifact: "out/improved_resume.pdf",
			},
			contains: []string{"✔ PDF Exported Successfully!", "saved to out/improved_resume.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printState(&buf, tt.state, render.Options{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Fatalf("expected %q in output:\n%s", s, buf.String())
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(buf.String(), s) {
					t.Fatalf("did not expect %q in output:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestValidateResumePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.pdf")
	if err := os.WriteFile(path, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := validateResumePath(" " + path + " "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateResumePath(filepath.Join(dir, "cv.txt")); err == nil {
		t.Fatal("expected error for non pdf")
	}
	if err := validateResumePath(filepath.Join(dir, "other.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSelectResumeAndJobDescription(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.pdf")
	jd := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(cv, []byte("not really a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jd, []byte("Go developer"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctrl := session.NewController(session.New(), nil, session.Deps{})

	// Unreadable PDF text is only logged; the file is still selected.
	if err := selectResume(ctrl, cv, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := loadJobDescription(ctrl, jd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := ctrl.Session().Snapshot()
	if state.Resume == nil || state.Resume.Name != "cv.pdf" {
		t.Fatalf("unexpected resume: %+v", state.Resume)
	}
	if state.JobDescription != "Go developer" {
		t.Fatalf("unexpected job description: %q", state.JobDescription)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := printVersion(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "smart-ats version: ") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "check_score") || !strings.Contains(out, "export_pdf") {
		t.Fatalf("expected action names in output: %q", out)
	}
}

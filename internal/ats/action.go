// Package ats holds the vocabulary shared by the session controller, the
// analyzer transports and the renderer.
package ats

import (
	"fmt"
	"strings"
)

// Action names one analysis operation supported by the service.
type Action string

const (
	CheckScore     Action = "check_score"
	KeywordMatch   Action = "keyword_match"
	RewriteBullets Action = "rewrite_bullets"
	Summarize      Action = "summarize"
	GrammarCheck   Action = "grammar_check"
	FormatFix      Action = "format_fix"
	AddSkills      Action = "add_skills"
	ExportPDF      Action = "export_pdf"
)

// Actions lists every supported action in menu order.
var Actions = []Action{
	CheckScore,
	KeywordMatch,
	RewriteBullets,
	Summarize,
	GrammarCheck,
	FormatFix,
	AddSkills,
	ExportPDF,
}

var labels = map[Action]string{
	CheckScore:     "Check ATS Score",
	KeywordMatch:   "Keyword Match",
	RewriteBullets: "Rewrite Bullets",
	Summarize:      "Summarize",
	GrammarCheck:   "Grammar Check",
	FormatFix:      "Format Fix",
	AddSkills:      "Add Skills",
	ExportPDF:      "Export PDF",
}

// ParseAction returns the action with the given wire name.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return a, nil
}

// Names returns wire names of all actions.
func Names() []string {
	names := make([]string, 0, len(Actions))
	for _, a := range Actions {
		names = append(names, string(a))
	}
	return names
}

func (a Action) Valid() bool {
	_, ok := labels[a]
	return ok
}

// Label is the human readable name used in menus.
func (a Action) Label() string {
	if label, ok := labels[a]; ok {
		return label
	}
	return string(a)
}

// NeedsResume reports whether a selected resume is required before the action
// can be sent. Export works from the job description alone.
func (a Action) NeedsResume() bool {
	return a != ExportPDF
}

// NeedsJobDescription reports whether a job description is required. Grammar
// checks only look at the resume.
func (a Action) NeedsJobDescription() bool {
	return a != GrammarCheck
}

// Binary reports whether the service answers the action with a file stream
// instead of a JSON document.
func (a Action) Binary() bool {
	return a == ExportPDF
}

func (a Action) String() string {
	return string(a)
}

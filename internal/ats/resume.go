package ats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resume is a resume file selected by the user.
type Resume struct {
	Name string
	Data []byte
}

// IsPDF reports whether the file name carries the .pdf extension.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), ".pdf")
}

// LoadResume reads a PDF resume from disk. Only the extension is checked; the
// content is left to the analysis service.
func LoadResume(path string) (*Resume, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("resume path is empty")
	}

	if !IsPDF(path) {
		return nil, fmt.Errorf("resume %q is not a PDF file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %q: %w", path, err)
	}

	return &Resume{Name: filepath.Base(path), Data: data}, nil
}

package pdftext

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtract(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "resume.pdf"))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.PageCount != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount)
	}

	expect := "Jane Doe\nSenior Go Engineer\nSkills: Kubernetes, PostgreSQL"
	if doc.Text != expect {
		t.Fatalf("expected %q, got %q", expect, doc.Text)
	}
}

func TestExtractRejectsNonPDF(t *testing.T) {
	if _, err := Extract([]byte("hello, this is not a pdf at all")); err == nil {
		t.Fatal("expected error for non pdf input")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: " \n\n ", expect: ""},
		{name: "blank lines", input: "John Doe\n\n\n  Go Engineer  \n", expect: "John Doe\nGo Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

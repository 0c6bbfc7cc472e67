package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/result"
)

func TestRenderScore(t *testing.T) {
	p := result.Decode(ats.CheckScore, json.RawMessage(`{"score": 82, "breakdown": {"skills": "70%", "experience": "90%"}, "reasoning": "Strong match"}`))

	view := Render(p, ats.CheckScore)

	value := view.Find("score-value")
	require.NotNil(t, value)
	assert.Equal(t, "82", value.Text)

	rows := view.FindAll("breakdown-item")
	require.Len(t, rows, 2)

	expect := []struct{ label, width string }{{"skills", "70%"}, {"experience", "90%"}}
	for i, row := range rows {
		assert.Equal(t, expect[i].label, row.Find("breakdown-label").Text)
		assert.Equal(t, expect[i].width, row.Find("progress").Width)
		assert.Equal(t, expect[i].width, row.Find("breakdown-value").Text)
	}

	reasoning := view.Find("reasoning")
	require.NotNil(t, reasoning)
	assert.Equal(t, "Strong match", reasoning.Text)
}

func TestRenderGrammar(t *testing.T) {
	view := Render(result.Grammar{}, ats.GrammarCheck)
	assert.Len(t, view.FindAll("success-message"), 1)
	assert.Empty(t, view.FindAll("error-card"))

	view = Render(result.Grammar{Errors: []result.Correction{
		{Error: "teh", Correction: "the", Context: "teh team"},
		{Error: "recieve", Correction: "receive", Context: "to recieve"},
	}}, ats.GrammarCheck)
	assert.Empty(t, view.FindAll("success-message"))
	cards := view.FindAll("error-card")
	require.Len(t, cards, 2)
	assert.Equal(t, `"teh" → "the"`, cards[0].Find("error-header").Text)
	assert.Equal(t, "Context: ...teh team...", cards[0].Find("context").Text)
}

func TestRenderKeywordsWithoutMissing(t *testing.T) {
	p := result.Decode(ats.KeywordMatch, json.RawMessage(`{"matching_keywords": ["go"], "keyword_analysis": "decent"}`))

	view := Render(p, ats.KeywordMatch)

	missing := view.Find("tags missing")
	require.NotNil(t, missing)
	assert.Empty(t, missing.Children)

	matching := view.Find("tags match")
	require.NotNil(t, matching)
	require.Len(t, matching.Children, 1)
	assert.Equal(t, "go", matching.Children[0].Text)
	assert.Equal(t, "decent", view.Find("analysis-text").Text)
}

func TestRenderRewrites(t *testing.T) {
	view := Render(result.Rewrites{Items: []result.Rewrite{{Original: "did work", Improved: "Cut latency 40%", Reason: "metric"}}}, ats.RewriteBullets)

	cards := view.FindAll("rewrite-card")
	require.Len(t, cards, 1)
	assert.Equal(t, "did work", cards[0].Find("original").Children[1].Text)
	assert.Equal(t, "Cut latency 40%", cards[0].Find("improved").Children[1].Text)
	assert.Equal(t, "Why: metric", cards[0].Find("reason-text").Text)
}

func TestRenderGeneric(t *testing.T) {
	p := result.Decode(ats.FormatFix, json.RawMessage(`{"formatting_suggestions": ["Use headings", "Drop tables"], "overall_feedback": "Fine", "score_out_of_ten": 7}`))

	view := Render(p, ats.FormatFix)

	sections := view.FindAll("generic-section")
	require.Len(t, sections, 3)

	assert.Equal(t, "formatting suggestions", sections[0].Children[0].Text)
	require.Equal(t, KindList, sections[0].Children[1].Kind)
	assert.Len(t, sections[0].Children[1].Children, 2)

	assert.Equal(t, "overall feedback", sections[1].Children[0].Text)
	assert.Equal(t, KindParagraph, sections[1].Children[1].Kind)
	assert.Equal(t, "Fine", sections[1].Children[1].Text)

	assert.Equal(t, "score out of ten", sections[2].Children[0].Text)
	assert.Equal(t, "7", sections[2].Children[1].Text)
}

func TestRenderFallbacks(t *testing.T) {
	view := Render(nil, "")
	require.NotNil(t, view.Find("placeholder"))
	assert.Equal(t, PlaceholderText, view.Find("placeholder").Text)

	view = Render(result.Message{Text: result.ExportedMessage}, ats.ExportPDF)
	require.NotNil(t, view.Find("success"))
	assert.Equal(t, result.ExportedMessage, view.Find("success").Text)

	view = Render(result.Decode(ats.Summarize, json.RawMessage(`"just some text\nsecond line"`)), ats.Summarize)
	raw := view.Find("raw-text")
	require.NotNil(t, raw)
	assert.Equal(t, KindPre, raw.Kind)
	assert.Equal(t, "just some text\nsecond line", raw.Text)
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, "70%", barWidth("70%"))
	assert.Equal(t, "70%", barWidth(" 70 "))
	assert.Equal(t, "0%", barWidth("high"))
}

func TestFprint(t *testing.T) {
	p := result.Decode(ats.CheckScore, json.RawMessage(`{"score": "82%", "breakdown": {"skills_match": "50%"}, "reasoning": "ok"}`))

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, Render(p, ats.CheckScore), Options{BarCells: 10}))

	out := buf.String()
	assert.Contains(t, out, "Analysis Result")
	assert.Contains(t, out, "Check ATS Score")
	assert.Contains(t, out, "82% Match")
	assert.Contains(t, out, "[█████░░░░░] 50%")
	assert.Contains(t, out, "skills match")
	assert.True(t, strings.HasSuffix(out, "ok\n"), "unexpected tail: %q", out)
}

func TestFprintKeywordsAndBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, Render(result.Keywords{Matching: []string{"go", "sql"}}, ats.KeywordMatch), Options{}))
	assert.Contains(t, buf.String(), "[go] [sql]")
	assert.Contains(t, buf.String(), "(none)")

	buf.Reset()
	require.NoError(t, Banner(&buf, "Please upload a resume first.", Options{}))
	assert.Equal(t, "⚠ Please upload a resume first.\n", buf.String())
}

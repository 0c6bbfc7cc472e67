package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/smart-ats/internal/ats"
	"github.com/spigell/smart-ats/internal/result"
)

const (
	PlaceholderText  = "Results will appear here after analysis"
	NoGrammarErrors  = "No grammar errors found!"
	analysisHeading  = "Analysis Result"
	rawResultHeading = "Result"
)

// Render builds the view for the stored result of action. It has no side
// effects and accepts any payload, including nil.
func Render(p result.Payload, action ats.Action) *Node {
	switch v := p.(type) {
	case nil:
		return el(KindContainer, "placeholder-content", text(KindParagraph, "placeholder", PlaceholderText))
	case result.Message:
		return el(KindContainer, "success-card", text(KindNotice, "success", v.Text))
	case result.Raw:
		return rawView(v.Text)
	case result.Score:
		return analysis(action, scoreView(v))
	case result.Keywords:
		return analysis(action, keywordView(v))
	case result.Rewrites:
		return analysis(action, rewriteView(v))
	case result.Grammar:
		return analysis(action, grammarView(v))
	case result.Generic:
		return analysis(action, genericView(v.Fields))
	default:
		return rawView(fmt.Sprintf("%+v", v))
	}
}

func rawView(s string) *Node {
	return el(KindContainer, "raw-result",
		text(KindHeading, "title", rawResultHeading),
		text(KindPre, "raw-text", s),
	)
}

func analysis(action ats.Action, body *Node) *Node {
	children := []*Node{text(KindHeading, "title", analysisHeading)}
	if action != "" {
		children = append(children, text(KindParagraph, "action", action.Label()))
	}
	return el(KindContainer, "result-container", append(children, body)...)
}

func scoreView(s result.Score) *Node {
	breakdown := el(KindContainer, "score-breakdown")
	for _, m := range s.Breakdown {
		breakdown.Children = append(breakdown.Children, el(KindRow, "breakdown-item",
			text(KindParagraph, "breakdown-label", Humanize(m.Label)),
			&Node{Kind: KindBar, Class: "progress", Width: barWidth(m.Value)},
			text(KindParagraph, "breakdown-value", m.Value),
		))
	}

	return el(KindContainer, "score-view",
		el(KindRow, "score-circle",
			text(KindParagraph, "score-value", s.Value),
			text(KindParagraph, "score-label", "Match"),
		),
		breakdown,
		text(KindParagraph, "reasoning", s.Reasoning),
	)
}

func keywordView(k result.Keywords) *Node {
	return el(KindContainer, "keyword-view",
		el(KindContainer, "keyword-section match",
			text(KindHeading, "", "Matching Keywords"),
			tags("match", k.Matching),
		),
		el(KindContainer, "keyword-section missing",
			text(KindHeading, "", "Missing Keywords"),
			tags("missing", k.Missing),
		),
		text(KindParagraph, "analysis-text", k.Analysis),
	)
}

func tags(class string, items []string) *Node {
	n := el(KindTags, "tags "+class)
	for _, item := range items {
		n.Children = append(n.Children, text(KindTag, "tag "+class, item))
	}
	return n
}

func rewriteView(r result.Rewrites) *Node {
	view := el(KindContainer, "rewrite-view")
	for _, item := range r.Items {
		view.Children = append(view.Children, el(KindCard, "rewrite-card",
			el(KindContainer, "original",
				text(KindHeading, "", "Original"),
				text(KindParagraph, "", item.Original),
			),
			el(KindContainer, "improved",
				text(KindHeading, "", "Improved"),
				text(KindParagraph, "", item.Improved),
			),
			text(KindParagraph, "reason-text", "Why: "+item.Reason),
		))
	}
	return view
}

func grammarView(g result.Grammar) *Node {
	view := el(KindContainer, "grammar-view")
	if len(g.Errors) == 0 {
		view.Children = append(view.Children, text(KindNotice, "success-message", NoGrammarErrors))
		return view
	}

	for _, e := range g.Errors {
		view.Children = append(view.Children, el(KindCard, "error-card",
			text(KindParagraph, "error-header", fmt.Sprintf("%q → %q", e.Error, e.Correction)),
			text(KindParagraph, "context", "Context: ..."+e.Context+"..."),
		))
	}
	return view
}

func genericView(fields result.Object) *Node {
	view := el(KindContainer, "generic-view")
	for _, f := range fields {
		section := el(KindContainer, "generic-section", text(KindHeading, "", Humanize(f.Key)))

		if items, ok := f.Value.([]any); ok {
			list := el(KindList, "")
			for _, item := range items {
				list.Children = append(list.Children, text(KindItem, "", result.Stringify(item)))
			}
			section.Children = append(section.Children, list)
		} else {
			section.Children = append(section.Children, text(KindParagraph, "", result.Stringify(f.Value)))
		}

		view.Children = append(view.Children, section)
	}
	return view
}

// Humanize turns a field name such as "skills_match" into "skills match".
func Humanize(key string) string {
	return strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
}

// barWidth normalises a sub-score into a CSS-like percentage.
func barWidth(value string) string {
	v := strings.TrimSpace(value)
	if strings.HasSuffix(v, "%") {
		return v
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v + "%"
	}
	return "0%"
}

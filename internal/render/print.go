package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

const defaultBarCells = 20

// Options controls terminal output.
type Options struct {
	Color    bool
	BarCells int
}

type printer struct {
	w      io.Writer
	opts   Options
	err    error
	title  func(interface{}) string
	strong func(interface{}) string
	good   func(interface{}) string
	bad    func(interface{}) string
	faint  func(interface{}) string
}

func newPrinter(w io.Writer, opts Options) *printer {
	if opts.BarCells <= 0 {
		opts.BarCells = defaultBarCells
	}

	p := &printer{w: w, opts: opts}
	plain := func(v interface{}) string { return fmt.Sprint(v) }
	p.title, p.strong, p.good, p.bad, p.faint = plain, plain, plain, plain, plain

	if opts.Color {
		p.title = promptui.Styler(promptui.FGCyan, promptui.FGBold)
		p.strong = promptui.Styler(promptui.FGBold)
		p.good = promptui.Styler(promptui.FGGreen)
		p.bad = promptui.Styler(promptui.FGRed)
		p.faint = promptui.Styler(promptui.FGFaint)
	}

	return p
}

// Fprint writes the view to w.
func Fprint(w io.Writer, n *Node, opts Options) error {
	p := newPrinter(w, opts)
	p.node(n, "")
	return p.err
}

// Banner writes an error banner.
func Banner(w io.Writer, message string, opts Options) error {
	p := newPrinter(w, opts)
	p.line("", p.bad("⚠ "+message))
	return p.err
}

func (p *printer) line(indent, s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, indent+s)
}

func (p *printer) node(n *Node, indent string) {
	if n == nil {
		return
	}

	switch n.Kind {
	case KindHeading:
		if n.Class == "title" {
			p.line(indent, p.title(n.Text))
			p.line(indent, p.faint(strings.Repeat("─", len([]rune(n.Text)))))
			return
		}
		p.line("", "")
		p.line(indent, p.strong(n.Text))
	case KindParagraph, KindItem, KindTag:
		p.text(n, indent)
	case KindPre:
		for _, l := range strings.Split(n.Text, "\n") {
			p.line(indent, l)
		}
	case KindNotice:
		p.line(indent, p.good("✔ "+n.Text))
	case KindList:
		for _, child := range n.Children {
			p.line(indent, "  • "+child.Text)
		}
	case KindTags:
		p.line(indent, p.tags(n))
	case KindRow:
		p.line(indent, p.row(n))
	case KindBar:
		p.line(indent, p.bar(n.Width))
	case KindCard:
		p.line("", "")
		for _, child := range n.Children {
			p.node(child, indent+"  ")
		}
		p.line(indent, p.faint(strings.Repeat("─", 40)))
	default:
		for _, child := range n.Children {
			p.node(child, indent)
		}
	}
}

func (p *printer) text(n *Node, indent string) {
	if n.Text == "" {
		return
	}
	switch n.Class {
	case "score-value":
		p.line(indent, p.title(n.Text))
	case "action":
		p.line(indent, p.faint(n.Text))
	default:
		p.line(indent, n.Text)
	}
}

func (p *printer) tags(n *Node) string {
	if len(n.Children) == 0 {
		return p.faint("  (none)")
	}

	style := p.good
	if strings.HasSuffix(n.Class, "missing") {
		style = p.bad
	}

	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, style("["+child.Text+"]"))
	}
	return "  " + strings.Join(parts, " ")
}

func (p *printer) row(n *Node) string {
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		switch child.Kind {
		case KindBar:
			parts = append(parts, p.bar(child.Width))
		default:
			if child.Class == "score-value" {
				parts = append(parts, p.title(child.Text))
				continue
			}
			parts = append(parts, child.Text)
		}
	}
	if n.Class == "breakdown-item" && len(parts) > 0 {
		parts[0] = fmt.Sprintf("%-20s", parts[0])
	}
	return strings.Join(parts, " ")
}

func (p *printer) bar(width string) string {
	cells := p.opts.BarCells
	filled := int(math.Round(percent(width) / 100 * float64(cells)))
	return "[" + p.good(strings.Repeat("█", filled)) + strings.Repeat("░", cells-filled) + "]"
}

func percent(width string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(width), "%"), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

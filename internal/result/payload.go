// Package result turns the loosely shaped analysis responses into a closed set
// of typed payloads the renderer can match on.
package result

// Payload is one of Message, Raw, Score, Keywords, Rewrites, Grammar or Generic.
type Payload interface {
	payload()
}

// ExportedMessage is stored after a successful PDF export.
const ExportedMessage = "PDF Exported Successfully!"

// Message is a plain success notice.
type Message struct {
	Text string
}

// Raw is a response that is not structured data and is shown verbatim.
type Raw struct {
	Text string
}

type Score struct {
	Value     string
	Breakdown []Metric
	Reasoning string
}

// Metric is a named sub-score such as "skills_match: 70%".
type Metric struct {
	Label string
	Value string
}

type Keywords struct {
	Matching []string `mapstructure:"matching_keywords"`
	Missing  []string `mapstructure:"missing_keywords"`
	Analysis string   `mapstructure:"keyword_analysis"`
}

type Rewrites struct {
	Items []Rewrite `mapstructure:"rewrites"`
}

type Rewrite struct {
	Original string `mapstructure:"original"`
	Improved string `mapstructure:"improved"`
	Reason   string `mapstructure:"reason"`
}

type Grammar struct {
	Errors []Correction `mapstructure:"errors"`
}

type Correction struct {
	Error      string `mapstructure:"error"`
	Correction string `mapstructure:"correction"`
	Context    string `mapstructure:"context"`
}

// Generic carries any object without a dedicated view, in service order.
type Generic struct {
	Fields Object
}

func (Message) payload()  {}
func (Raw) payload()      {}
func (Score) payload()    {}
func (Keywords) payload() {}
func (Rewrites) payload() {}
func (Grammar) payload()  {}
func (Generic) payload()  {}

// Name returns a short variant name, used in logs.
func Name(p Payload) string {
	switch p.(type) {
	case nil:
		return "none"
	case Message:
		return "message"
	case Raw:
		return "raw"
	case Score:
		return "score"
	case Keywords:
		return "keywords"
	case Rewrites:
		return "rewrites"
	case Grammar:
		return "grammar"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

package result

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/smart-ats/internal/ats"
)

// Decode converts the "response" value returned for action into a payload. It
// never fails: values it cannot interpret end up as Raw or Generic. An empty or
// null value yields nil.
func Decode(action ats.Action, raw json.RawMessage) Payload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	value, err := parseOrdered(trimmed)
	if err != nil {
		return Raw{Text: string(trimmed)}
	}

	switch val := value.(type) {
	case string:
		obj, ok := objectFromText(val)
		if !ok {
			return Raw{Text: val}
		}
		return FromObject(action, obj)
	case Object:
		return FromObject(action, val)
	default:
		return Raw{Text: Stringify(val)}
	}
}

// FromObject picks the variant for an already parsed object.
func FromObject(action ats.Action, obj Object) Payload {
	if len(obj) == 1 && obj[0].Key == "message" {
		return Message{Text: Stringify(obj[0].Value)}
	}

	var (
		p  Payload
		ok bool
	)

	switch action {
	case ats.CheckScore:
		p, ok = decodeScore(obj)
	case ats.KeywordMatch:
		var k Keywords
		ok = obj.Has("matching_keywords", "missing_keywords", "keyword_analysis") && weakDecode(obj, &k)
		p = k
	case ats.RewriteBullets:
		var r Rewrites
		ok = obj.Has("rewrites") && weakDecode(obj, &r)
		p = r
	case ats.GrammarCheck:
		var g Grammar
		ok = obj.Has("errors") && weakDecode(obj, &g)
		p = g
	}

	if !ok {
		return Generic{Fields: obj}
	}

	return p
}

func decodeScore(obj Object) (Payload, bool) {
	if !obj.Has("score", "breakdown", "reasoning") {
		return nil, false
	}

	var fields struct {
		Score     string `mapstructure:"score"`
		Reasoning string `mapstructure:"reasoning"`
	}

	if !weakDecode(Object{
		{Key: "score", Value: scalar(obj, "score")},
		{Key: "reasoning", Value: scalar(obj, "reasoning")},
	}, &fields) {
		return nil, false
	}

	score := Score{Value: strings.TrimSpace(fields.Score), Reasoning: strings.TrimSpace(fields.Reasoning)}

	if breakdown, ok := obj.Get("breakdown"); ok {
		if items, ok := breakdown.(Object); ok {
			for _, f := range items {
				score.Breakdown = append(score.Breakdown, Metric{Label: f.Key, Value: Stringify(f.Value)})
			}
		}
	}

	return score, true
}

// scalar returns the member as display text unless it is a scalar that weak
// decoding already understands.
func scalar(obj Object, key string) any {
	v, _ := obj.Get(key)
	switch v.(type) {
	case Object, []any:
		return Stringify(v)
	default:
		return v
	}
}

func weakDecode(obj Object, target any) bool {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return false
	}

	return decoder.Decode(obj.Map()) == nil
}

// objectFromText finds a JSON object inside model output: the text itself,
// the body of a markdown code fence, or the outermost braces.
func objectFromText(text string) (Object, bool) {
	candidates := []string{strings.TrimSpace(text), stripFence(text)}
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		candidates = append(candidates, text[start:end+1])
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		v, err := parseOrdered([]byte(candidate))
		if err != nil {
			continue
		}
		if obj, ok := v.(Object); ok {
			return obj, true
		}
	}

	return nil, false
}

func stripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

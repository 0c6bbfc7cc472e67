package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid json document")

// Field is a single member of a JSON object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers the order its members were sent in.
// Values are Object, []any, string, json.Number, bool or nil.
type Object []Field

// Get returns the value of the last member named key.
func (o Object) Get(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether any of the keys is present.
func (o Object) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := o.Get(key); ok {
			return true
		}
	}
	return false
}

// Map converts the object to plain maps and slices, as expected by decoders
// that do not care about member order.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, f := range o {
		m[f.Key] = plain(f.Value)
	}
	return m
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func plain(v any) any {
	switch val := v.(type) {
	case Object:
		return val.Map()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// Stringify renders a decoded JSON value as display text. Numbers keep the
// literal form they were sent with; objects and lists become compact JSON.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// parseOrdered decodes a single JSON document keeping object member order.
func parseOrdered(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := Object{}
		r.ForEach(func(key, value gjson.Result) bool {
			obj = append(obj, Field{Key: key.String(), Value: fromResult(value)})
			return true
		})
		return obj
	case r.IsArray():
		list := []any{}
		for _, item := range r.Array() {
			list = append(list, fromResult(item))
		}
		return list
	}

	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

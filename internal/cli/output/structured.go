package output

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/respkv/pkg/resp"
)

// indentWidth is shared by the JSON and YAML formatters.
const indentWidth = 2

// JSONFormatter writes replies as indented JSON documents.
type JSONFormatter struct {
	Indent int
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", strings.Repeat(" ", f.Indent))
	return enc.Encode(normalize(data))
}

// YAMLFormatter writes replies as YAML documents.
type YAMLFormatter struct {
	Indent int
}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(max(f.Indent, 1))
	if err := enc.Encode(normalize(data)); err != nil {
		return err
	}
	return enc.Close()
}

// normalize replaces frames with their Native form so that structured
// encoders see plain Go values.
func normalize(data any) any {
	switch d := data.(type) {
	case resp.Value:
		return Native(d)
	case []KeyValue:
		out := make([]KeyValue, len(d))
		for i, kv := range d {
			out[i] = KeyValue{Key: kv.Key, Value: normalize(kv.Value)}
		}
		return out
	case *Table:
		return d.Records()
	}
	return data
}

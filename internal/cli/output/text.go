package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/yndnr/respkv/pkg/resp"
)

// TextFormatter renders human readable output.
type TextFormatter struct{}

// Format writes data as text. Frames use redis-cli notation, key/value
// lists and maps are rendered as tables.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case resp.Value:
		_, err := fmt.Fprintln(w, RenderValue(d))
		return err
	case *Table:
		return d.Render(w)
	case []KeyValue:
		t := NewTable("KEY", "VALUE")
		for _, kv := range d {
			t.AddRow(kv.Key, textOf(kv.Value))
		}
		return t.Render(w)
	case map[string]string:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := NewTable("KEY", "VALUE")
		for _, k := range keys {
			t.AddRow(k, d[k])
		}
		return t.Render(w)
	default:
		_, err := fmt.Fprintln(w, d)
		return err
	}
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "(nil)"
	case resp.Value:
		return RenderValue(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

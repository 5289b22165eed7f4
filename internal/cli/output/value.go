package output

import (
	"strconv"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// KeyValue is one key with its value, as printed by MGET.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// ErrorReply is the JSON/YAML form of an error frame.
type ErrorReply struct {
	Error string `json:"error" yaml:"error"`
}

// Native converts a reply frame into plain Go values for encoding.
func Native(v resp.Value) any {
	switch v.Kind() {
	case resp.KindString:
		return v.Str()
	case resp.KindInteger:
		return v.Int()
	case resp.KindError:
		return ErrorReply{Error: v.Err()}
	case resp.KindArray:
		out := make([]any, v.Len())
		for i, e := range v.Elems() {
			out[i] = Native(e)
		}
		return out
	default:
		return nil
	}
}

// RenderValue renders a frame the way redis-cli does.
func RenderValue(v resp.Value) string {
	var sb strings.Builder
	renderValue(&sb, v, 0)
	return sb.String()
}

func renderValue(sb *strings.Builder, v resp.Value, indent int) {
	switch v.Kind() {
	case resp.KindNull:
		sb.WriteString("(nil)")
	case resp.KindString:
		sb.WriteString(strconv.Quote(v.Str()))
	case resp.KindInteger:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case resp.KindError:
		sb.WriteString("(error) ")
		sb.WriteString(v.Err())
	case resp.KindArray:
		if v.Len() == 0 {
			sb.WriteString("(empty array)")
			return
		}
		width := len(strconv.Itoa(v.Len()))
		for i, e := range v.Elems() {
			if i > 0 {
				sb.WriteByte('\n')
				sb.WriteString(strings.Repeat(" ", indent))
			}
			num := strconv.Itoa(i + 1)
			sb.WriteString(strings.Repeat(" ", width-len(num)))
			sb.WriteString(num)
			sb.WriteString(") ")
			renderValue(sb, e, indent+width+2)
		}
	default:
		sb.WriteString("(invalid)")
	}
}

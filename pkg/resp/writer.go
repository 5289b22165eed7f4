package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

var crlf = []byte{'\r', '\n'}

// Encode returns the complete wire form of v.
func Encode(v Value) ([]byte, error) {
	return AppendValue(nil, v)
}

// AppendValue appends the wire form of v to dst. On error the returned
// slice is nil and dst must be discarded by the caller.
func AppendValue(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindString:
		dst = append(dst, TagBulkString)
		dst = strconv.AppendInt(dst, int64(len(v.str)), 10)
		dst = append(dst, crlf...)
		dst = append(dst, v.str...)
		return append(dst, crlf...), nil

	case KindInteger:
		dst = append(dst, TagInteger)
		dst = strconv.AppendInt(dst, v.num, 10)
		return append(dst, crlf...), nil

	case KindError:
		dst = append(dst, TagError)
		dst = append(dst, v.str...)
		return append(dst, crlf...), nil

	case KindArray:
		dst = append(dst, TagArray)
		dst = strconv.AppendInt(dst, int64(len(v.elems)), 10)
		dst = append(dst, crlf...)
		for _, e := range v.elems {
			var err error
			if dst, err = AppendValue(dst, e); err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindNull:
		return append(dst, "$-1\r\n"...), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrEncoding, v.kind)
	}
}

// maxRetainedBuf bounds the scratch buffer a Writer keeps between frames.
const maxRetainedBuf = 64 * 1024

// Writer encodes frames onto a stream. Each WriteValue issues a single
// Write of the complete frame.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteValue encodes v and writes it. Nothing is written when v cannot be
// encoded. If the underlying writer is a *bufio.Writer it is flushed.
func (w *Writer) WriteValue(v Value) error {
	frame, err := AppendValue(w.buf[:0], v)
	if err != nil {
		return err
	}
	if cap(frame) <= maxRetainedBuf {
		w.buf = frame
	} else {
		w.buf = nil
	}

	if _, err := w.w.Write(frame); err != nil {
		return err
	}
	if bw, ok := w.w.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}

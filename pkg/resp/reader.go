package resp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Type tags.
const (
	TagSimpleString = '+'
	TagError        = '-'
	TagInteger      = ':'
	TagBulkString   = '$'
	TagArray        = '*'
)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxBulkLen rejects bulk strings longer than n bytes. Zero disables
// the check.
func WithMaxBulkLen(n int) DecoderOption {
	return func(d *Decoder) { d.maxBulkLen = n }
}

// WithMaxArrayLen rejects arrays with more than n elements. Zero disables
// the check.
func WithMaxArrayLen(n int) DecoderOption {
	return func(d *Decoder) { d.maxArrayLen = n }
}

// WithMaxDepth rejects arrays nested deeper than n levels. Zero disables
// the check.
func WithMaxDepth(n int) DecoderOption {
	return func(d *Decoder) { d.maxDepth = n }
}

// WithMaxLineLen rejects header and simple-string lines longer than n
// bytes. Zero disables the check.
func WithMaxLineLen(n int) DecoderOption {
	return func(d *Decoder) { d.maxLineLen = n }
}

// WithStrictTerminator makes the decoder verify that a bulk payload is
// followed by CRLF. By default the two terminator bytes are consumed
// without looking at them.
func WithStrictTerminator() DecoderOption {
	return func(d *Decoder) { d.strict = true }
}

// Decoder reads frames from a byte stream.
type Decoder struct {
	r *bufio.Reader

	maxBulkLen  int
	maxArrayLen int
	maxDepth    int
	maxLineLen  int
	strict      bool
}

// NewDecoder returns a Decoder reading from r. If r is already a
// *bufio.Reader it is used as is.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := &Decoder{r: br}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Buffered returns the number of bytes already read from the stream but
// not yet decoded.
func (d *Decoder) Buffered() int {
	return d.r.Buffered()
}

// Decode reads exactly one frame.
//
// A clean EOF before the tag byte returns ErrDisconnected. Malformed input
// returns a *ProtocolError. Transport errors (timeouts, resets) are
// returned unchanged.
func (d *Decoder) Decode() (Value, error) {
	return d.decode(0)
}

func (d *Decoder) decode(depth int) (Value, error) {
	nested := depth > 0

	tag, err := d.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if nested {
				return Value{}, newProtocolError("unexpected EOF inside array", true)
			}
			return Value{}, ErrDisconnected
		}
		return Value{}, err
	}

	switch tag {
	case TagSimpleString:
		line, err := d.readLine(nested)
		if err != nil {
			return Value{}, err
		}
		return Bytes(line), nil

	case TagError:
		line, err := d.readLine(nested)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindError, str: line}, nil

	case TagInteger:
		n, err := d.readInt(nested, "invalid integer")
		if err != nil {
			return Value{}, err
		}
		return Int(n), nil

	case TagBulkString:
		return d.readBulk(nested)

	case TagArray:
		return d.readArray(depth)

	default:
		if !nested && tag != '\n' {
			// Drop the rest of the offending line so the next frame starts
			// on a fresh tag byte.
			if err := d.discardLine(); err != nil && !errors.Is(err, io.EOF) {
				return Value{}, err
			}
		}
		return Value{}, newProtocolError("bad request", nested)
	}
}

func (d *Decoder) readBulk(nested bool) (Value, error) {
	n, err := d.readInt(nested, "invalid bulk length")
	if err != nil {
		return Value{}, err
	}
	if n == -1 {
		return Null(), nil
	}
	if n < 0 {
		return Value{}, newProtocolError("invalid bulk length", nested)
	}
	if d.maxBulkLen > 0 && n > int64(d.maxBulkLen) {
		return Value{}, &ProtocolError{
			Msg:    fmt.Sprintf("bulk length %d exceeds limit %d", n, d.maxBulkLen),
			Desync: true,
			Err:    ErrLimitExceeded,
		}
	}

	if n > math.MaxInt-2 {
		return Value{}, newProtocolError("invalid bulk length", true)
	}

	payload, err := d.readPayload(int(n))
	if err != nil {
		return Value{}, err
	}
	if err := d.readTerminator(); err != nil {
		return Value{}, err
	}
	return Bytes(payload), nil
}

// bulkChunk bounds the memory committed to a bulk payload before its bytes
// have arrived.
const bulkChunk = 64 << 10

// readPayload reads exactly n payload bytes. Lengths above bulkChunk are
// untrusted and buffered as the bytes arrive.
func (d *Decoder) readPayload(n int) ([]byte, error) {
	if n <= bulkChunk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return nil, truncated(err)
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(bulkChunk)
	if _, err := io.CopyN(&buf, d.r, int64(n)); err != nil {
		return nil, truncated(err)
	}
	return buf.Bytes()[:n:n], nil
}

func (d *Decoder) readTerminator() error {
	var crlf [2]byte
	if _, err := io.ReadFull(d.r, crlf[:]); err != nil {
		return truncated(err)
	}
	if d.strict && (crlf[0] != '\r' || crlf[1] != '\n') {
		return newProtocolError("invalid bulk terminator", true)
	}
	return nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newProtocolError("truncated bulk payload", true)
	}
	return err
}

func (d *Decoder) readArray(depth int) (Value, error) {
	nested := depth > 0

	n, err := d.readInt(nested, "invalid array length")
	if err != nil {
		return Value{}, err
	}
	if n == -1 {
		return Null(), nil
	}
	if n < 0 {
		return Value{}, newProtocolError("invalid array length", nested)
	}
	if d.maxArrayLen > 0 && n > int64(d.maxArrayLen) {
		return Value{}, &ProtocolError{
			Msg:    fmt.Sprintf("array length %d exceeds limit %d", n, d.maxArrayLen),
			Desync: true,
			Err:    ErrLimitExceeded,
		}
	}
	if d.maxDepth > 0 && depth+1 > d.maxDepth {
		return Value{}, &ProtocolError{
			Msg:    fmt.Sprintf("nesting depth exceeds limit %d", d.maxDepth),
			Desync: true,
			Err:    ErrLimitExceeded,
		}
	}

	// The declared count is untrusted; grow as elements actually arrive.
	elems := make([]Value, 0, min(n, 64))
	for i := int64(0); i < n; i++ {
		v, err := d.decode(depth + 1)
		if err != nil {
			var pe *ProtocolError
			if errors.As(err, &pe) {
				pe.Desync = true
			}
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return Array(elems...), nil
}

func (d *Decoder) readInt(nested bool, msg string) (int64, error) {
	line, err := d.readLine(nested)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, newProtocolError(msg, nested)
	}
	return n, nil
}

// readLine returns the bytes up to the next LF, without the LF and an
// optional preceding CR.
func (d *Decoder) readLine(nested bool) ([]byte, error) {
	var buf []byte
	for {
		frag, err := d.r.ReadSlice('\n')
		buf = append(buf, frag...)
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			if d.maxLineLen > 0 && len(buf) > d.maxLineLen {
				return nil, &ProtocolError{
					Msg:    fmt.Sprintf("line length exceeds limit %d", d.maxLineLen),
					Desync: true,
					Err:    ErrLimitExceeded,
				}
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil, newProtocolError("missing line terminator", true)
		}
		return nil, err
	}

	buf = buf[:len(buf)-1]
	if l := len(buf); l > 0 && buf[l-1] == '\r' {
		buf = buf[:l-1]
	}
	if d.maxLineLen > 0 && len(buf) > d.maxLineLen {
		return nil, &ProtocolError{
			Msg:    fmt.Sprintf("line length exceeds limit %d", d.maxLineLen),
			Desync: nested,
			Err:    ErrLimitExceeded,
		}
	}
	return buf, nil
}

func (d *Decoder) discardLine() error {
	for {
		_, err := d.r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}

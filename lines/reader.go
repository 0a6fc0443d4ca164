// Package lines splits a serial byte stream into newline terminated text
// lines.
package lines

import (
	"bytes"
	"context"
	"strings"
	"time"
	"unicode"
)

// DefaultMaxLineLength is the longest line kept in memory before it is
// handed out as a partial line.
const DefaultMaxLineLength = 4096

const readChunk = 256

// Source is a byte stream whose reads can be abandoned through a context.
// A read that times out reports (0, nil).
type Source interface {
	ReadContext(ctx context.Context, p []byte) (int, error)
}

// Line is one decoded line.
type Line struct {
	Raw     []byte    // bytes as received, without the newline
	Text    string    // decoded text, trailing white space removed
	Partial bool      // no newline was seen: read timeout or line too long
	Time    time.Time // when the last byte of the line was received
}

// Reader reads lines from a Source.
type Reader struct {
	src     Source
	dec     Decoder
	maxLen  int
	pending []byte
	chunk   []byte
	err     error
	now     func() time.Time
}

// Option configures a Reader.
type Option func(*Reader)

// WithDecoder sets the decoder, UTF8 by default.
func WithDecoder(d Decoder) Option {
	return func(r *Reader) {
		if d != nil {
			r.dec = d
		}
	}
}

// WithMaxLineLength bounds the buffered line size.
func WithMaxLineLength(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLen = n
		}
	}
}

// NewReader returns a Reader on src.
func NewReader(src Source, opts ...Option) *Reader {
	r := &Reader{
		src:    src,
		dec:    UTF8,
		maxLen: DefaultMaxLineLength,
		chunk:  make([]byte, readChunk),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadLine returns the next line. Bytes still buffered when the source
// fails are returned as a partial line first; the error follows on the next
// call and is then returned for every later call.
func (r *Reader) ReadLine(ctx context.Context) (Line, error) {
	for {
		if i := bytes.IndexByte(r.pending, '\n'); i >= 0 && i <= r.maxLen {
			return r.take(i, i+1, false), nil
		}
		if len(r.pending) >= r.maxLen {
			return r.take(r.maxLen, r.maxLen, true), nil
		}
		if r.err != nil {
			if len(r.pending) > 0 {
				return r.take(len(r.pending), len(r.pending), true), nil
			}
			return Line{}, r.err
		}

		n, err := r.src.ReadContext(ctx, r.chunk)
		r.pending = append(r.pending, r.chunk[:n]...)
		if err != nil {
			r.err = err
			continue
		}
		if n == 0 && len(r.pending) > 0 {
			// read timeout with an unterminated line buffered
			return r.take(len(r.pending), len(r.pending), true), nil
		}
	}
}

// Buffered returns the number of bytes received but not yet returned.
func (r *Reader) Buffered() int {
	return len(r.pending)
}

func (r *Reader) take(end, skip int, partial bool) Line {
	raw := make([]byte, end)
	copy(raw, r.pending[:end])
	r.pending = append(r.pending[:0], r.pending[skip:]...)
	return Line{
		Raw:     raw,
		Text:    strings.TrimRightFunc(r.dec.Decode(raw), unicode.IsSpace),
		Partial: partial,
		Time:    r.now(),
	}
}

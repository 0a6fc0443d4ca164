package lines

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Decoder turns the raw bytes of one line into text.
type Decoder interface {
	Decode(raw []byte) string
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(raw []byte) string

// Decode calls f(raw).
func (f DecoderFunc) Decode(raw []byte) string { return f(raw) }

// UTF8 decodes UTF-8 and silently drops invalid byte sequences.
var UTF8 Decoder = DecoderFunc(func(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "")
})

type charsetDecoder struct {
	enc encoding.Encoding
}

func (d charsetDecoder) Decode(raw []byte) string {
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return UTF8.Decode(raw)
	}
	return strings.ToValidUTF8(string(out), "")
}

// LookupDecoder returns the decoder for a WHATWG encoding label such as
// "utf-8", "latin1" or "windows-1251". The empty name means UTF-8.
func LookupDecoder(name string) (Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == encoding.Replacement {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return charsetDecoder{enc: enc}, nil
}

package textfile

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte("\xEF\xBB\xBF")

// Codec decodes and encodes file contents strictly under one named encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// LookupCodec resolves an encoding label such as "utf-8", "latin1",
// "windows-1252" or "shift_jis". WHATWG labels are tried first, then IANA
// and MIME names.
func LookupCodec(name string) (*Codec, error) {
	label := strings.TrimSpace(name)
	if label == "" {
		label = DefaultEncoding
	}
	if enc, err := htmlindex.Get(label); err == nil && enc != nil {
		return &Codec{name: label, enc: enc}, nil
	}
	for _, index := range []*ianaindex.Index{ianaindex.IANA, ianaindex.MIME} {
		if enc, err := index.Encoding(label); err == nil && enc != nil {
			return &Codec{name: label, enc: enc}, nil
		}
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// Name returns the label the codec was looked up with.
func (c *Codec) Name() string {
	return c.name
}

func (c *Codec) isUTF8() bool {
	return c.enc == unicode.UTF8 || c.enc == unicode.UTF8BOM
}

// Decode converts raw bytes to text. Bytes that are not valid under the
// encoding produce an error instead of replacement characters. A leading
// UTF-8 byte order mark is dropped.
func (c *Codec) Decode(raw []byte) (string, error) {
	if c.isUTF8() {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("invalid %s byte sequence at offset %d", c.name, invalidOffset(raw))
		}
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}

	text, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if bytes.ContainsRune(text, utf8.RuneError) && !c.carriesReplacementChar(raw) {
		return "", fmt.Errorf("bytes not representable in %s", c.name)
	}
	return string(text), nil
}

// carriesReplacementChar reports whether U+FFFD is genuinely encoded in raw,
// as opposed to being produced by the decoder for undecodable input.
func (c *Codec) carriesReplacementChar(raw []byte) bool {
	encoded, err := c.enc.NewEncoder().String(string(utf8.RuneError))
	if err != nil || encoded == "" {
		return false
	}
	return bytes.Contains(raw, []byte(encoded))
}

// Encode converts text to bytes in the codec's encoding.
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.isUTF8() {
		return []byte(text), nil
	}
	return c.enc.NewEncoder().Bytes([]byte(text))
}

func invalidOffset(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(raw)
}

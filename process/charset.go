package process

import (
	"bytes"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	charsetRule = regexp.MustCompile(`^@charset\s+["']([^"']*)["']\s*;`)
)

// lookupEncoding resolves @charset label. CSS uses the same labels as HTML,
// IANA names are accepted as well.
func lookupEncoding(label string) (encoding.Encoding, string) {
	if enc, name := charset.Lookup(label); enc != nil {
		return enc, name
	}
	if enc, err := ianaindex.IANA.Encoding(label); err == nil && enc != nil {
		name, _ := ianaindex.IANA.Name(enc)
		return enc, name
	}
	return nil, ""
}

func isUTF8(enc encoding.Encoding) bool {
	if enc == unicode.UTF8 {
		return true
	}
	name, _ := ianaindex.IANA.Name(enc)
	return name == "UTF-8"
}

// decodeStylesheet returns stylesheet text as UTF-8. Encoding is selected by
// byte order mark, then by leading @charset rule, then by fallback (UTF-8
// when nil). When text is converted @charset rule is changed to UTF-8.
// Already UTF-8 text without BOM is returned as is.
func decodeStylesheet(data []byte, fallback encoding.Encoding, log *zap.Logger) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	var (
		enc  = fallback
		name string
	)
	if enc != nil {
		name, _ = ianaindex.IANA.Name(enc)
	}

	m := charsetRule.FindSubmatch(data)
	if m != nil {
		if e, n := lookupEncoding(string(m[1])); e != nil {
			enc, name = e, n
		} else {
			log.Warn("Unknown stylesheet charset, ignoring", zap.ByteString("charset", m[1]))
		}
	}

	utf16 := bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
	if !utf16 && (enc == nil || isUTF8(enc)) {
		return data, nil
	}
	if enc == nil {
		enc = unicode.UTF8
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode stylesheet from %s: %w", name, err)
	}
	log.Debug("Stylesheet converted to UTF-8", zap.String("charset", name))
	return charsetRule.ReplaceAll(out, []byte(`@charset "UTF-8";`)), nil
}

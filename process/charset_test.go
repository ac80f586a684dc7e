package process

import (
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func encode(t *testing.T, enc encoding.Encoding, s string) []byte {
	t.Helper()
	data, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("unable to encode %q: %v", s, err)
	}
	return data
}

func TestDecodeStylesheet(t *testing.T) {
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

	tests := []struct {
		name     string
		data     []byte
		fallback encoding.Encoding
		want     string
	}{
		{
			name: "plain utf-8",
			data: []byte(`.a { content: "Привет" }`),
			want: `.a { content: "Привет" }`,
		},
		{
			name: "utf-8 charset kept",
			data: []byte(`@charset "utf-8"; .a{}`),
			want: `@charset "utf-8"; .a{}`,
		},
		{
			name: "utf-8 bom",
			data: append([]byte{0xEF, 0xBB, 0xBF}, ".a{}"...),
			want: ".a{}",
		},
		{
			name: "windows-1251 charset",
			data: encode(t, charmap.Windows1251, `@charset "windows-1251";`+"\n"+`.a { content: "Привет" }`),
			want: `@charset "UTF-8";` + "\n" + `.a { content: "Привет" }`,
		},
		{
			name: "iso-8859-1 by label",
			data: encode(t, charmap.ISO8859_1, `@charset "latin1"; .a { content: "café" }`),
			want: `@charset "UTF-8"; .a { content: "café" }`,
		},
		{
			name:     "fallback code page",
			data:     encode(t, charmap.Windows1251, `.a { content: "Привет" }`),
			fallback: charmap.Windows1251,
			want:     `.a { content: "Привет" }`,
		},
		{
			name:     "charset wins over fallback",
			data:     encode(t, charmap.KOI8R, `@charset "koi8-r"; .a { content: "Да" }`),
			fallback: charmap.Windows1251,
			want:     `@charset "UTF-8"; .a { content: "Да" }`,
		},
		{
			name: "unknown charset",
			data: []byte(`@charset "x-unknown"; .a{}`),
			want: `@charset "x-unknown"; .a{}`,
		},
		{
			name: "utf-16 bom",
			data: encode(t, utf16, ".a{}"),
			want: ".a{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeStylesheet(tt.data, tt.fallback, testLogger(t))
			if err != nil {
				t.Fatalf("decodeStylesheet failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

package css_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"cssprite/css"
)

func TestStylesheet_String(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple rule",
			input: `.a{background:url(a.png) no-repeat;color:red}`,
			want:  ".a {\n  background: url(a.png) no-repeat;\n  color: red;\n}\n",
		},
		{
			name:  "important",
			input: `.a { color: red !important }`,
			want:  ".a {\n  color: red !important;\n}\n",
		},
		{
			name:  "items separated",
			input: `/* c */ @import url(x.css); .a { color: red }`,
			want:  "/* c */\n\n@import url(x.css);\n\n.a {\n  color: red;\n}\n",
		},
		{
			name:  "media block",
			input: `@media print { .a { color: red } .b { color: blue } }`,
			want:  "@media print {\n  .a {\n    color: red;\n  }\n\n  .b {\n    color: blue;\n  }\n}\n",
		},
		{
			name:  "comments inside rule",
			input: `.a { /* lead */ color: red; /* tail */ }`,
			want:  ".a {\n  /* lead */\n  color: red;\n\n  /* tail */\n}\n",
		},
		{
			name:  "font-face",
			input: `@font-face { font-family: X; src: url(x.woff) }`,
			want:  "@font-face {\n  font-family: X;\n  src: url(x.woff);\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.input).String()
			if got != tt.want {
				t.Errorf("String():\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestStylesheet_StringStable(t *testing.T) {
	input := `
/* sprites */
.a, .b:hover { background: url("a.png?__sprite") no-repeat 0 0; }
@media (min-width: 10px) { .c { background-image: url(c.gif) } }
@font-face { font-family: F; src: url(f.woff) }
.card { /* note */ color: red; & .title { font-weight: bold } --empty: ; }
`
	first := parse(t, input).String()
	second := parse(t, first).String()
	if first != second {
		t.Errorf("printing is not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestStylesheet_AppendPrinted(t *testing.T) {
	sheet := parse(t, `.a { background: url(a.png) }`)
	sheet.Rule(0).Append(css.Declaration{Property: "background-position", Value: "0% 0%"})

	want := ".a {\n  background: url(a.png);\n  background-position: 0% 0%;\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	sheet := parse(t, `.a { color: red }`)

	var buf bytes.Buffer
	n, err := sheet.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, buffer has %d bytes", n, buf.Len())
	}
	if buf.String() != sheet.String() {
		t.Errorf("WriteTo and String differ")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestStylesheet_WriteToError(t *testing.T) {
	sheet := parse(t, `.a { color: red }`)
	if _, err := sheet.WriteTo(failingWriter{}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestStylesheet_NestedPrinted(t *testing.T) {
	sheet := parse(t, `.card { color: red; & .title { font-weight: bold } }`)
	sheet.Rule(0).Append(css.Declaration{Property: "background-position", Value: "0% 0%"})

	got := sheet.String()
	for _, want := range []string{
		".card {\n  color: red;\n  background-position: 0% 0%;\n\n  ",
		".title {\n    font-weight: bold;\n  }\n}\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sprite.abc123.png", `url("sprite.abc123.png")`},
		{`a"b.png`, `url("a\"b.png")`},
		{`a\b.png`, `url("a\\b.png")`},
	}
	for _, tt := range tests {
		if got := css.URL(tt.in); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStylesheet_Dump(t *testing.T) {
	sheet := parse(t, `.a { color: red !important } @media print { .b { color: blue } }`)
	dump := sheet.Dump()

	for _, want := range []string{
		"stylesheet items=2 rules=2\n",
		"  rule #0\n",
		"      flags: important\n",
		"  block @media\n",
		"    rule #1\n",
		"      selector: \".b\"\n",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}

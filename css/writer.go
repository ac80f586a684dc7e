package css

import (
	"fmt"
	"io"
	"strings"
)

// printer keeps first write error and running byte count so callers can
// format without checking every write.
type printer struct {
	w     io.Writer
	total int64
	err   error
}

func (p *printer) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	var n int
	if depth > 0 {
		n, p.err = io.WriteString(p.w, strings.Repeat("  ", depth))
		p.total += int64(n)
		if p.err != nil {
			return
		}
	}
	n, p.err = fmt.Fprintf(p.w, format, args...)
	p.total += int64(n)
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Declarations keep their order, output is deterministic for a given tree.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	p := &printer{w: w}
	writeItems(p, s.Items, 0)
	return p.total, p.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeItems writes items separated by blank lines.
func writeItems(p *printer, items []Item, depth int) {
	for i, item := range items {
		switch {
		case item.Comment != nil:
			p.printf(depth, "%s\n", *item.Comment)
		case item.AtRule != nil:
			writeAtRule(p, item.AtRule, depth)
		case item.Block != nil:
			writeBlock(p, item.Block, depth)
		case item.Rule != nil:
			writeRule(p, item.Rule, depth)
		}
		// Add blank line between items (except after last)
		if i < len(items)-1 {
			p.printf(0, "\n")
		}
	}
}

func writeAtRule(p *printer, at *AtRule, depth int) {
	if at.Prelude == "" {
		p.printf(depth, "%s;\n", at.Name)
		return
	}
	p.printf(depth, "%s %s;\n", at.Name, at.Prelude)
}

func writeRule(p *printer, rule *Rule, depth int) {
	p.printf(depth, "%s {\n", rule.Selector)
	writeDeclarations(p, rule.Declarations, depth+1)
	if len(rule.Declarations) > 0 && len(rule.Items) > 0 {
		p.printf(0, "\n")
	}
	writeItems(p, rule.Items, depth+1)
	p.printf(depth, "}\n")
}

func writeBlock(p *printer, b *Block, depth int) {
	if b.Prelude == "" {
		p.printf(depth, "%s {\n", b.Name)
	} else {
		p.printf(depth, "%s %s {\n", b.Name, b.Prelude)
	}
	writeDeclarations(p, b.Declarations, depth+1)
	if len(b.Declarations) > 0 && len(b.Items) > 0 {
		p.printf(0, "\n")
	}
	writeItems(p, b.Items, depth+1)
	if b.Raw != "" {
		p.printf(depth+1, "%s\n", b.Raw)
	}
	p.printf(depth, "}\n")
}

func writeDeclarations(p *printer, decls []Declaration, depth int) {
	for _, d := range decls {
		for _, c := range d.Comments {
			p.printf(depth, "%s\n", c)
		}
		if d.Important {
			p.printf(depth, "%s: %s !important;\n", d.Property, d.Value)
			continue
		}
		p.printf(depth, "%s: %s;\n", d.Property, d.Value)
	}
}

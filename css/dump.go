package css

import (
	"cssprite/utils/debug"
)

// Dump returns indented textual representation of the stylesheet tree for
// debug reports. Rules are numbered with their flat index.
func (s *Stylesheet) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet items=%d rules=%d", len(s.Items), s.RuleCount())
	index := 0
	dumpItems(tw, s.Items, 1, &index)
	return tw.String()
}

func dumpItems(tw *debug.TreeWriter, items []Item, depth int, index *int) {
	for _, item := range items {
		switch {
		case item.Comment != nil:
			tw.TextBlock(depth, "comment", *item.Comment)
		case item.AtRule != nil:
			tw.Line(depth, "at-rule %s", item.AtRule.Name)
			tw.TextBlock(depth+1, "prelude", item.AtRule.Prelude)
		case item.Block != nil:
			b := item.Block
			tw.Line(depth, "block %s", b.Name)
			tw.TextBlock(depth+1, "prelude", b.Prelude)
			dumpDeclarations(tw, b.Declarations, depth+1)
			if b.Raw != "" {
				tw.TextBlock(depth+1, "raw", b.Raw)
			}
			dumpItems(tw, b.Items, depth+1, index)
		case item.Rule != nil:
			tw.Line(depth, "rule #%d", *index)
			*index++
			tw.TextBlock(depth+1, "selector", item.Rule.Selector)
			dumpDeclarations(tw, item.Rule.Declarations, depth+1)
			dumpItems(tw, item.Rule.Items, depth+1, index)
		}
	}
}

func dumpDeclarations(tw *debug.TreeWriter, decls []Declaration, depth int) {
	for i, d := range decls {
		tw.Line(depth, "decl #%d %s", i, d.Property)
		for _, c := range d.Comments {
			tw.TextBlock(depth+1, "comment", c)
		}
		tw.TextBlock(depth+1, "value", d.Value)
		tw.Flag(depth+1, "flags", map[string]bool{"important": d.Important})
	}
}

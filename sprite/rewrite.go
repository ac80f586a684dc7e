package sprite

import (
	"cssprite/css"
)

// Rewrite points every placed declaration to the composite at url and
// appends position (and size when emitSize is set) declarations to the
// owning rule. Only first url() of a value is replaced, other tokens of a
// shorthand are kept verbatim.
func Rewrite(sheet *css.Stylesheet, placements []Placement, url string, emitSize bool) error {
	// resolve everything first so failure leaves tree untouched
	all := sheet.Rules()
	rules := make([]*css.Rule, len(placements))
	for i, p := range placements {
		loc := p.Reference.Location
		if loc.Rule < 0 || loc.Rule >= len(all) || loc.Declaration < 0 || loc.Declaration >= len(all[loc.Rule].Declarations) {
			return &ConsistencyError{URL: p.Reference.URL, Path: p.Reference.AbsoluteURL, Reason: "declaration not found in stylesheet"}
		}
		rules[i] = all[loc.Rule]
	}

	replacement := css.URL(url)
	for i, p := range placements {
		rule := rules[i]
		d := &rule.Declarations[p.Reference.Location.Declaration]
		if loc := urlPattern.FindStringIndex(d.Value); loc != nil {
			d.Value = d.Value[:loc[0]] + replacement + d.Value[loc[1]:]
		}

		rule.Append(css.Declaration{
			Property: "background-position",
			Value:    Position(p.Rect.X, p.Rect.Width, p.Width) + " " + Position(p.Rect.Y, p.Rect.Height, p.Height),
		})
		if emitSize {
			rule.Append(css.Declaration{
				Property: "background-size",
				Value:    Size(p.Rect.Width, p.Width) + " " + Size(p.Rect.Height, p.Height),
			})
		}
	}
	return nil
}

package sprite

import (
	"path/filepath"
	"regexp"
	"strings"

	"cssprite/css"
)

var (
	// urlPattern matches url("path"), url('path') and url(path).
	urlPattern = regexp.MustCompile(`(?i)url\s*\(\s*(?:"([^"]*)"|'([^']*)'|([^)"'\s]*))\s*\)`)
	// rasterPattern matches raster image target, group 1 is path without
	// query string or fragment.
	rasterPattern = regexp.MustCompile(`(?i)^([^?#]+\.(?:png|jpe?g|gif))(?:[?#].*)?$`)
)

// Location addresses declaration in a stylesheet: flat rule index (see
// css.Stylesheet.WalkRules) and declaration index within that rule.
type Location struct {
	Rule        int
	Declaration int
}

// Reference is a background declaration pointing to a raster image.
type Reference struct {
	URL         string // url() target as written, query and fragment included
	AbsoluteURL string // path resolved against stylesheet base path
	Value       string // full declaration value
	Location    Location
}

// isBackground reports whether property may carry background image.
func isBackground(property string) bool {
	return strings.EqualFold(property, "background") || strings.EqualFold(property, "background-image")
}

// firstURL returns target of the first url() in value.
func firstURL(value string) (string, bool) {
	m := urlPattern.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g), true
		}
	}
	return "", false
}

// Extract returns references for every background declaration whose first
// url() targets a raster image, in document order. Relative targets are
// resolved against basePath.
func Extract(sheet *css.Stylesheet, basePath string) []Reference {
	var refs []Reference
	sheet.WalkRules(func(ri int, rule *css.Rule) bool {
		for di, d := range rule.Declarations {
			if !isBackground(d.Property) {
				continue
			}
			target, ok := firstURL(d.Value)
			if !ok {
				continue
			}
			m := rasterPattern.FindStringSubmatch(target)
			if m == nil {
				continue
			}
			refs = append(refs, Reference{
				URL:         target,
				AbsoluteURL: resolve(basePath, m[1]),
				Value:       d.Value,
				Location:    Location{Rule: ri, Declaration: di},
			})
		}
		return true
	})
	return refs
}

// resolve joins url path with base path. Root relative paths are treated as
// relative to base as well.
func resolve(basePath, urlPath string) string {
	return filepath.Join(basePath, filepath.FromSlash(urlPath))
}

package sprite

import (
	"fmt"
)

// ParseError is returned when stylesheet text cannot be parsed. Nothing is
// rewritten and no asset is emitted.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("unable to parse stylesheet %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("unable to parse stylesheet: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PackingError is returned when the packing engine fails, times out or returns
// unusable result. Stylesheet is left untouched.
type PackingError struct {
	Images int // number of distinct images in the failed request
	Err    error
}

func (e *PackingError) Error() string {
	return fmt.Sprintf("unable to pack %d image(s): %v", e.Images, e.Err)
}

func (e *PackingError) Unwrap() error {
	return e.Err
}

// ConsistencyError is returned when packing result does not account for an
// eligible reference, or a reference no longer resolves in the tree.
type ConsistencyError struct {
	URL    string
	Path   string
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent sprite for %q (%s): %s", e.URL, e.Path, e.Reason)
}

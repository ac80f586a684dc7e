// Package common holds enumerations shared by configuration and the sprite
// engine.
package common

//go:generate go tool go-enum --marshal --names

// FilterMode selects image eligibility policy.
// ENUM(query, size, none)
type FilterMode int

// ChecksMarker reports whether the marker token must be present in the
// declaration value.
func (f FilterMode) ChecksMarker() bool {
	return f == FilterModeQuery
}

// ChecksSize reports whether file size limit applies.
func (f FilterMode) ChecksSize() bool {
	return f == FilterModeQuery || f == FilterModeSize
}

// PackingAlgorithm selects sprite layout algorithm.
// ENUM(binary-tree, top-down, left-right, diagonal, alt-diagonal)
type PackingAlgorithm int

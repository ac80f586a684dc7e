package sprite

import (
	"strconv"
)

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64) + "%"
}

// Position converts pixel offset of an item inside composite into
// background-position percentage. Percentages are relative to the travel
// distance (total - item), hence the sign flip.
func Position(offset, item, total int) string {
	if offset == 0 || item == total {
		return "0%"
	}
	return percent(-float64(offset) / float64(item-total) * 100)
}

// Size converts item dimension into background-size percentage of the
// composite dimension.
func Size(item, total int) string {
	if item == 0 {
		return "0%"
	}
	return percent(float64(total) / float64(item) * 100)
}

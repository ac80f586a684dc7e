package sprite

import (
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name                string
		offset, item, total int
		want                string
	}{
		{"zero offset", 0, 16, 48, "0%"},
		{"zero offset single image", 0, 48, 48, "0%"},
		{"zero offset any values", 0, 0, 0, "0%"},
		{"last in row", 16, 32, 48, "100.0000%"},
		{"middle", 21, 16, 69, "39.6226%"},
		{"no travel distance", 5, 10, 10, "0%"},
		{"padding gap", 21, 32, 90, "36.2069%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Position(tt.offset, tt.item, tt.total); got != tt.want {
				t.Errorf("Position(%d, %d, %d) = %q, want %q", tt.offset, tt.item, tt.total, got, tt.want)
			}
		})
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		item, total int
		want        string
	}{
		{16, 48, "300.0000%"},
		{32, 48, "150.0000%"},
		{16, 32, "200.0000%"},
		{32, 32, "100.0000%"},
		{3, 10, "333.3333%"},
		{0, 10, "0%"},
	}

	for _, tt := range tests {
		if got := Size(tt.item, tt.total); got != tt.want {
			t.Errorf("Size(%d, %d) = %q, want %q", tt.item, tt.total, got, tt.want)
		}
	}
}

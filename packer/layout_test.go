package packer

import (
	"image"
	"testing"

	"cssprite/common"
)

func blocksOf(padding int, sizes ...image.Point) []*block {
	blocks := make([]*block, len(sizes))
	for i, s := range sizes {
		blocks[i] = &block{index: i, w: s.X + padding, h: s.Y + padding}
	}
	return blocks
}

func TestArrange(t *testing.T) {
	small, large := image.Pt(16, 16), image.Pt(32, 32)

	tests := []struct {
		name    string
		alg     common.PackingAlgorithm
		padding int
		want    []image.Point
		extent  image.Point
	}{
		{"binary-tree", common.PackingAlgorithmBinaryTree, 5, []image.Point{{37, 0}, {0, 0}}, image.Pt(58, 37)},
		{"binary-tree no padding", common.PackingAlgorithmBinaryTree, 0, []image.Point{{32, 0}, {0, 0}}, image.Pt(48, 32)},
		{"top-down", common.PackingAlgorithmTopDown, 5, []image.Point{{0, 0}, {0, 21}}, image.Pt(37, 58)},
		{"left-right", common.PackingAlgorithmLeftRight, 0, []image.Point{{0, 0}, {16, 0}}, image.Pt(48, 32)},
		{"diagonal", common.PackingAlgorithmDiagonal, 0, []image.Point{{0, 0}, {16, 16}}, image.Pt(48, 48)},
		{"alt-diagonal", common.PackingAlgorithmAltDiagonal, 0, []image.Point{{32, 0}, {0, 16}}, image.Pt(48, 48)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := blocksOf(tt.padding, small, large)
			w, h := arrange(tt.alg, blocks)
			if w != tt.extent.X || h != tt.extent.Y {
				t.Errorf("extent = %dx%d, want %v", w, h, tt.extent)
			}
			for i, b := range blocks {
				if got := image.Pt(b.x, b.y); got != tt.want[i] {
					t.Errorf("block %d at %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestArrange_BinaryTreeGrowsSquare(t *testing.T) {
	sq := image.Pt(10, 10)
	blocks := blocksOf(0, sq, sq, sq, sq)

	w, h := arrange(common.PackingAlgorithmBinaryTree, blocks)
	if w != 20 || h != 20 {
		t.Fatalf("extent = %dx%d, want 20x20", w, h)
	}
	want := []image.Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}}
	for i, b := range blocks {
		if got := image.Pt(b.x, b.y); got != want[i] {
			t.Errorf("block %d at %v, want %v", i, got, want[i])
		}
	}
}

func TestArrange_NoOverlap(t *testing.T) {
	sizes := []image.Point{{40, 10}, {8, 8}, {12, 30}, {16, 16}, {5, 50}, {24, 7}, {16, 16}, {1, 1}}

	for _, alg := range []common.PackingAlgorithm{
		common.PackingAlgorithmBinaryTree,
		common.PackingAlgorithmTopDown,
		common.PackingAlgorithmLeftRight,
		common.PackingAlgorithmDiagonal,
		common.PackingAlgorithmAltDiagonal,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			blocks := blocksOf(2, sizes...)
			w, h := arrange(alg, blocks)
			bounds := image.Rect(0, 0, w, h)

			rects := make([]image.Rectangle, len(blocks))
			for i, b := range blocks {
				rects[i] = image.Rect(b.x, b.y, b.x+b.w, b.y+b.h)
				if !rects[i].In(bounds) {
					t.Errorf("block %d %v outside of %v", i, rects[i], bounds)
				}
			}
			for i := range rects {
				for j := i + 1; j < len(rects); j++ {
					if rects[i].Overlaps(rects[j]) {
						t.Errorf("blocks %d %v and %d %v overlap", i, rects[i], j, rects[j])
					}
				}
			}
		})
	}
}

func TestArrange_Empty(t *testing.T) {
	if w, h := arrange(common.PackingAlgorithmBinaryTree, nil); w != 0 || h != 0 {
		t.Errorf("extent = %dx%d", w, h)
	}
}

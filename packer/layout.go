package packer

import (
	"cmp"
	"slices"

	"cssprite/common"
)

// block is an image being placed. Width and height include padding.
type block struct {
	index int
	w, h  int
	x, y  int
}

// arrange places blocks according to algorithm and returns extent of the
// layout. Ties are broken by input order so layout is deterministic.
func arrange(alg common.PackingAlgorithm, blocks []*block) (width, height int) {
	order := slices.Clone(blocks)

	switch alg {
	case common.PackingAlgorithmTopDown:
		slices.SortStableFunc(order, func(a, b *block) int { return cmp.Compare(a.h, b.h) })
		for _, b := range order {
			b.x, b.y = 0, height
			height += b.h
			width = max(width, b.w)
		}

	case common.PackingAlgorithmLeftRight:
		slices.SortStableFunc(order, func(a, b *block) int { return cmp.Compare(a.w, b.w) })
		for _, b := range order {
			b.x, b.y = width, 0
			width += b.w
			height = max(height, b.h)
		}

	case common.PackingAlgorithmDiagonal, common.PackingAlgorithmAltDiagonal:
		slices.SortStableFunc(order, func(a, b *block) int { return cmp.Compare(a.w*a.w+a.h*a.h, b.w*b.w+b.h*b.h) })
		for _, b := range order {
			b.x, b.y = width, height
			width += b.w
			height += b.h
		}
		if alg == common.PackingAlgorithmAltDiagonal {
			// mirror horizontally, first image ends up in top right corner
			for _, b := range order {
				b.x = width - b.x - b.w
			}
		}

	default:
		slices.SortStableFunc(order, func(a, b *block) int {
			return cmp.Or(
				cmp.Compare(max(b.w, b.h), max(a.w, a.h)),
				cmp.Compare(min(b.w, b.h), min(a.w, a.h)),
				cmp.Compare(b.h, a.h),
				cmp.Compare(b.w, a.w),
			)
		})
		width, height = grow(order)
	}
	return width, height
}

// node of binary tree splitting free space.
type node struct {
	x, y, w, h  int
	used        bool
	right, down *node
}

// grow packs blocks into binary tree which grows right or down when block
// does not fit, keeping layout roughly square.
func grow(blocks []*block) (int, int) {
	if len(blocks) == 0 {
		return 0, 0
	}
	root := &node{w: blocks[0].w, h: blocks[0].h}
	for _, b := range blocks {
		n := root.find(b.w, b.h)
		if n != nil {
			n = n.split(b.w, b.h)
		} else {
			root, n = root.grow(b.w, b.h)
		}
		b.x, b.y = n.x, n.y
	}
	return root.w, root.h
}

func (n *node) find(w, h int) *node {
	if n.used {
		if r := n.right.find(w, h); r != nil {
			return r
		}
		return n.down.find(w, h)
	}
	if w <= n.w && h <= n.h {
		return n
	}
	return nil
}

func (n *node) split(w, h int) *node {
	n.used = true
	n.down = &node{x: n.x, y: n.y + h, w: n.w, h: n.h - h}
	n.right = &node{x: n.x + w, y: n.y, w: n.w - w, h: h}
	return n
}

// grow returns new root and node allocated for block.
func (n *node) grow(w, h int) (*node, *node) {
	canRight := h <= n.h
	canDown := w <= n.w
	shouldRight := canRight && n.h >= n.w+w
	shouldDown := canDown && n.w >= n.h+h

	switch {
	case shouldRight, !shouldDown && canRight:
		root := &node{used: true, w: n.w + w, h: n.h, down: n, right: &node{x: n.w, w: w, h: n.h}}
		return root, root.find(w, h).split(w, h)
	case shouldDown, canDown:
		root := &node{used: true, w: n.w, h: n.h + h, down: &node{y: n.h, w: n.w, h: h}, right: n}
		return root, root.find(w, h).split(w, h)
	}
	// unreachable when blocks are sorted by size descending, enlarge in both
	// directions anyway
	root := &node{used: true, w: n.w + w, h: max(n.h, h), down: n, right: &node{x: n.w, w: w, h: max(n.h, h)}}
	return root, root.find(w, h).split(w, h)
}

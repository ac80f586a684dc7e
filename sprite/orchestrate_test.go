package sprite

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"cssprite/common"
)

func TestOrchestrator_DedupeAndFanOut(t *testing.T) {
	packer := &fakePacker{result: &PackResult{
		Image:  []byte("png"),
		Width:  48,
		Height: 32,
		Coordinates: map[string]Rect{
			"/a.png": {X: 0, Y: 0, Width: 16, Height: 16},
			"/b.png": {X: 16, Y: 0, Width: 32, Height: 32},
		},
	}}
	refs := []Reference{
		{URL: "a.png", AbsoluteURL: "/a.png", Location: Location{Rule: 0}},
		{URL: "b.png", AbsoluteURL: "/b.png", Location: Location{Rule: 1}},
		{URL: "./a.png", AbsoluteURL: "/a.png", Location: Location{Rule: 2}},
	}

	o := NewOrchestrator(packer, common.PackingAlgorithmTopDown, 2, time.Second, testLogger(t))
	placements, res, err := o.Run(context.Background(), refs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(packer.requests) != 1 {
		t.Fatalf("expected single pack request, got %d", len(packer.requests))
	}
	req := packer.requests[0]
	if !slices.Equal(req.Paths, []string{"/a.png", "/b.png"}) {
		t.Errorf("request paths = %v", req.Paths)
	}
	if req.Algorithm != common.PackingAlgorithmTopDown || req.Padding != 2 {
		t.Errorf("request = %+v", req)
	}
	if res.Width != 48 || res.Height != 32 {
		t.Errorf("result size = %dx%d", res.Width, res.Height)
	}

	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}
	if placements[2].Rect != placements[0].Rect || placements[2].Reference.Location.Rule != 2 {
		t.Errorf("duplicate reference not fanned out: %+v", placements[2])
	}
	if placements[1].Rect.X != 16 || placements[1].Width != 48 || placements[1].Height != 32 {
		t.Errorf("placement 1 = %+v", placements[1])
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	refs := []Reference{{URL: "a.png", AbsoluteURL: "/a.png"}}
	cause := errors.New("decoder exploded")

	tests := []struct {
		name        string
		packer      *fakePacker
		packing     bool
		consistency bool
	}{
		{name: "engine failure", packer: &fakePacker{err: cause}, packing: true},
		{name: "no result", packer: &fakePacker{}, packing: true},
		{name: "empty image", packer: &fakePacker{result: &PackResult{Width: 1, Height: 1}}, packing: true},
		{name: "zero size", packer: &fakePacker{result: &PackResult{Image: []byte{1}}}, packing: true},
		{
			name:        "missing coordinates",
			packer:      &fakePacker{result: &PackResult{Image: []byte{1}, Width: 1, Height: 1, Coordinates: map[string]Rect{"/b.png": {Width: 1, Height: 1}}}},
			consistency: true,
		},
		{
			name:        "empty rect",
			packer:      &fakePacker{result: &PackResult{Image: []byte{1}, Width: 1, Height: 1, Coordinates: map[string]Rect{"/a.png": {}}}},
			consistency: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrchestrator(tt.packer, common.PackingAlgorithmBinaryTree, DefaultPadding, time.Second, nil)
			_, _, err := o.Run(context.Background(), refs)
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *PackingError
			var ce *ConsistencyError
			if got := errors.As(err, &pe); got != tt.packing {
				t.Errorf("PackingError = %v, want %v (%v)", got, tt.packing, err)
			}
			if got := errors.As(err, &ce); got != tt.consistency {
				t.Errorf("ConsistencyError = %v, want %v (%v)", got, tt.consistency, err)
			}
		})
	}

	o := NewOrchestrator(&fakePacker{err: cause}, common.PackingAlgorithmBinaryTree, DefaultPadding, time.Second, nil)
	if _, _, err := o.Run(context.Background(), refs); !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
}

func TestOrchestrator_Timeout(t *testing.T) {
	packer := &blockingPacker{release: make(chan struct{})}
	t.Cleanup(func() { close(packer.release) })

	o := NewOrchestrator(packer, common.PackingAlgorithmBinaryTree, DefaultPadding, 20*time.Millisecond, testLogger(t))

	start := time.Now()
	_, _, err := o.Run(context.Background(), []Reference{{URL: "a.png", AbsoluteURL: "/a.png"}})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var pe *PackingError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PackingError, got %T", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("orchestrator waited %v", elapsed)
	}
}

func TestOrchestrator_Canceled(t *testing.T) {
	packer := &blockingPacker{release: make(chan struct{})}
	t.Cleanup(func() { close(packer.release) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := NewOrchestrator(packer, common.PackingAlgorithmBinaryTree, DefaultPadding, time.Minute, nil)
	if _, _, err := o.Run(ctx, []Reference{{URL: "a.png", AbsoluteURL: "/a.png"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled error, got %v", err)
	}
}

package sprite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cssprite/common"
)

const (
	DefaultPadding = 5
	DefaultTimeout = 30 * time.Second
)

// Rect is image placement inside composite, in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// PackRequest lists distinct image paths to be combined.
type PackRequest struct {
	Paths     []string
	Algorithm common.PackingAlgorithm
	Padding   int
}

// PackResult is encoded composite image with placement of every requested path.
type PackResult struct {
	Image       []byte
	Width       int
	Height      int
	Coordinates map[string]Rect
}

// Packer combines images into a single composite.
type Packer interface {
	Pack(ctx context.Context, req PackRequest) (*PackResult, error)
}

// Placement binds reference to its rectangle in a composite of given size.
type Placement struct {
	Reference Reference
	Rect      Rect
	Width     int // composite width
	Height    int // composite height
}

// Orchestrator issues single pack request for all eligible references and
// maps result back onto them.
type Orchestrator struct {
	packer    Packer
	algorithm common.PackingAlgorithm
	padding   int
	timeout   time.Duration
	log       *zap.Logger
}

func NewOrchestrator(packer Packer, algorithm common.PackingAlgorithm, padding int, timeout time.Duration, log *zap.Logger) *Orchestrator {
	if padding < 0 {
		padding = DefaultPadding
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{packer: packer, algorithm: algorithm, padding: padding, timeout: timeout, log: log}
}

// request builds pack request with paths deduplicated in first seen order.
func (o *Orchestrator) request(refs []Reference) PackRequest {
	req := PackRequest{Algorithm: o.algorithm, Padding: o.padding}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.AbsoluteURL] {
			continue
		}
		seen[ref.AbsoluteURL] = true
		req.Paths = append(req.Paths, ref.AbsoluteURL)
	}
	return req
}

type packOutcome struct {
	res *PackResult
	err error
}

// pack calls packer and waits for it no longer than context allows, even if
// packer itself does not observe cancellation.
func (o *Orchestrator) pack(ctx context.Context, req PackRequest) (*PackResult, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	done := make(chan packOutcome, 1)
	go func() {
		res, err := o.packer.Pack(ctx, req)
		done <- packOutcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("packing engine did not respond: %w", ctx.Err())
	}
}

// Run packs images referenced by refs and returns placement for every
// reference in the same order along with the pack result.
func (o *Orchestrator) Run(ctx context.Context, refs []Reference) ([]Placement, *PackResult, error) {
	req := o.request(refs)

	start := time.Now()
	res, err := o.pack(ctx, req)
	if err != nil {
		return nil, nil, &PackingError{Images: len(req.Paths), Err: err}
	}
	switch {
	case res == nil:
		return nil, nil, &PackingError{Images: len(req.Paths), Err: errors.New("packing engine returned no result")}
	case len(res.Image) == 0:
		return nil, nil, &PackingError{Images: len(req.Paths), Err: errors.New("packing engine returned empty image")}
	case res.Width <= 0 || res.Height <= 0:
		return nil, nil, &PackingError{Images: len(req.Paths), Err: fmt.Errorf("packing engine returned invalid composite size %dx%d", res.Width, res.Height)}
	}
	o.log.Debug("Images packed",
		zap.Int("images", len(req.Paths)),
		zap.Int("references", len(refs)),
		zap.Stringer("algorithm", req.Algorithm),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Duration("elapsed", time.Since(start)))

	placements := make([]Placement, 0, len(refs))
	for _, ref := range refs {
		rect, ok := res.Coordinates[ref.AbsoluteURL]
		if !ok {
			return nil, nil, &ConsistencyError{URL: ref.URL, Path: ref.AbsoluteURL, Reason: "no coordinates in packing result"}
		}
		if rect.Width <= 0 || rect.Height <= 0 {
			return nil, nil, &ConsistencyError{URL: ref.URL, Path: ref.AbsoluteURL, Reason: fmt.Sprintf("invalid image size %dx%d", rect.Width, rect.Height)}
		}
		placements = append(placements, Placement{Reference: ref, Rect: rect, Width: res.Width, Height: res.Height})
	}
	return placements, res, nil
}

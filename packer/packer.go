// Package packer combines images into single PNG sprite sheet.
package packer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cssprite/sprite"
)

// supported image types as reported by filetype.
var supported = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// Engine implements sprite.Packer reading images from local filesystem.
type Engine struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("packer")}
}

// load reads and decodes single image.
func (e *Engine) load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("unable to detect image type of '%s': %w", path, err)
	}
	if kind == filetype.Unknown || !supported[kind.Extension] {
		return nil, fmt.Errorf("unsupported image type of '%s': %s", path, kind.MIME.Value)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode image '%s' (%s): %w", path, kind.MIME.Value, err)
	}
	return img, nil
}

// Pack loads all requested images, lays them out and renders composite.
func (e *Engine) Pack(ctx context.Context, req sprite.PackRequest) (*sprite.PackResult, error) {
	if len(req.Paths) == 0 {
		return nil, errors.New("nothing to pack")
	}
	if req.Padding < 0 {
		return nil, fmt.Errorf("invalid padding %d", req.Padding)
	}
	start := time.Now()

	images := make([]image.Image, len(req.Paths))
	blocks := make([]*block, len(req.Paths))
	for i, path := range req.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := e.load(path)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if b.Empty() {
			return nil, fmt.Errorf("image '%s' is empty", path)
		}
		images[i] = img
		blocks[i] = &block{index: i, w: b.Dx() + req.Padding, h: b.Dy() + req.Padding}
	}

	width, height := arrange(req.Algorithm, blocks)
	width, height = width-req.Padding, height-req.Padding

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	res := &sprite.PackResult{
		Width:       width,
		Height:      height,
		Coordinates: make(map[string]sprite.Rect, len(req.Paths)),
	}
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img := images[b.index]
		bounds := img.Bounds()
		r := image.Rect(b.x, b.y, b.x+bounds.Dx(), b.y+bounds.Dy())
		draw.Draw(canvas, r, img, bounds.Min, draw.Src)
		res.Coordinates[req.Paths[b.index]] = sprite.Rect{X: b.x, Y: b.y, Width: bounds.Dx(), Height: bounds.Dy()}
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, canvas, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode sprite: %w", err)
	}
	res.Image = buf.Bytes()

	e.log.Debug("Sprite rendered",
		zap.Int("images", len(req.Paths)),
		zap.Stringer("algorithm", req.Algorithm),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("bytes", len(res.Image)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

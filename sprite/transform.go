// Package sprite finds small raster images referenced by background
// declarations, packs them into single composite image and rewrites
// declarations to address the composite.
package sprite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cssprite/common"
	"cssprite/css"
)

// Config is transform configuration. Zero values are replaced with defaults
// by New, except EmitSize.
type Config struct {
	Filter       FilterConfig
	Algorithm    common.PackingAlgorithm
	Padding      int
	Timeout      time.Duration
	NameTemplate string
	OutputPath   string // prefix for composite URL
	EmitSize     bool
}

// DefaultConfig returns configuration with all defaults set.
func DefaultConfig() Config {
	return Config{
		Filter: FilterConfig{
			Mode:   common.FilterModeQuery,
			Limit:  DefaultLimit,
			Marker: DefaultMarker,
		},
		Algorithm:    common.PackingAlgorithmBinaryTree,
		Padding:      DefaultPadding,
		Timeout:      DefaultTimeout,
		NameTemplate: DefaultNameTemplate,
		EmitSize:     true,
	}
}

// Input is single stylesheet unit.
type Input struct {
	Source     []byte
	SourceMap  []byte
	Meta       map[string]any
	Context    string // base directory for relative image URLs
	Name       string // stylesheet name, for logging and [name] placeholder
	PublicPath string // composite URL prefix for this unit, overrides OutputPath
}

// Stats describes what happened to a single unit.
type Stats struct {
	Candidates int // background declarations with raster image
	Eligible   int // references packed
	Images     int // distinct images in composite
}

// Output is transformed unit. When nothing was packed Source is the input
// source and Asset is nil.
type Output struct {
	Source    []byte
	SourceMap []byte
	Meta      map[string]any
	Asset     *Asset
	Tree      *css.Stylesheet // rewritten tree, nil when unchanged
	Stats     Stats
}

// Transformer runs the sprite pipeline. It is safe for concurrent use.
type Transformer struct {
	parser       *css.Parser
	filter       *Filter
	orchestrator *Orchestrator
	emitter      *Emitter
	outputPath   string
	emitSize     bool
	log          *zap.Logger
}

// New creates transformer. Composites are stored via sink, images are
// checked via fsys (OS filesystem when nil).
func New(cfg Config, fsys FileSystem, packer Packer, sink Sink, log *zap.Logger) (*Transformer, error) {
	if packer == nil {
		return nil, errors.New("packing engine is required")
	}
	if sink == nil {
		return nil, errors.New("asset sink is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("sprite")

	if !cfg.Filter.Mode.IsValid() {
		return nil, fmt.Errorf("invalid filter mode: %d", cfg.Filter.Mode)
	}
	if !cfg.Algorithm.IsValid() {
		return nil, fmt.Errorf("invalid packing algorithm: %d", cfg.Algorithm)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	tmpl, err := ParseNameTemplate(cfg.NameTemplate)
	if err != nil {
		return nil, err
	}

	return &Transformer{
		parser:       css.NewParser(log),
		filter:       NewFilter(cfg.Filter, fsys, log),
		orchestrator: NewOrchestrator(packer, cfg.Algorithm, cfg.Padding, cfg.Timeout, log),
		emitter:      NewEmitter(sink, tmpl, log),
		outputPath:   cfg.OutputPath,
		emitSize:     cfg.EmitSize,
		log:          log,
	}, nil
}

// Emitter returns emitter shared by all units of this transformer.
func (t *Transformer) Emitter() *Emitter {
	return t.emitter
}

func unchanged(in Input, stats Stats) *Output {
	return &Output{Source: in.Source, SourceMap: in.SourceMap, Meta: in.Meta, Stats: stats}
}

// Transform processes single stylesheet unit. On any error nothing is
// emitted and input is not modified.
func (t *Transformer) Transform(ctx context.Context, in Input) (*Output, error) {
	log := t.log.With(zap.String("stylesheet", in.Name))

	sheet, err := t.parser.Parse(in.Source, in.Name)
	if err != nil {
		return nil, &ParseError{Source: in.Name, Err: err}
	}

	var stats Stats
	refs := Extract(sheet, in.Context)
	stats.Candidates = len(refs)
	if len(refs) == 0 {
		log.Debug("No background images found")
		return unchanged(in, stats), nil
	}

	eligible := t.filter.Apply(refs)
	stats.Eligible = len(eligible)
	if len(eligible) == 0 {
		log.Debug("No eligible images", zap.Int("candidates", len(refs)))
		return unchanged(in, stats), nil
	}

	placements, res, err := t.orchestrator.Run(ctx, eligible)
	if err != nil {
		return nil, err
	}
	stats.Images = len(res.Coordinates)

	prefix := t.outputPath
	if in.PublicPath != "" {
		prefix = in.PublicPath
	}
	asset := t.emitter.Prepare(res.Image, in.Name, prefix)
	if err := Rewrite(sheet, placements, asset.URL, t.emitSize); err != nil {
		return nil, err
	}
	if err := t.emitter.Store(asset); err != nil {
		return nil, err
	}

	log.Debug("Stylesheet rewritten",
		zap.Int("candidates", stats.Candidates),
		zap.Int("eligible", stats.Eligible),
		zap.String("sprite", asset.Name))

	return &Output{
		Source:    []byte(sheet.String()),
		SourceMap: in.SourceMap,
		Meta:      in.Meta,
		Asset:     asset,
		Tree:      sheet,
		Stats:     stats,
	}, nil
}

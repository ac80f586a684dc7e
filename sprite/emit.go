package sprite

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Asset is a content addressed sprite image.
type Asset struct {
	Name string // file name relative to output directory
	URL  string // reference placed into stylesheet
	Data []byte
}

// Emitter names composites and hands them to sink. Names already stored
// during this build session are not written again.
type Emitter struct {
	sink     Sink
	template *NameTemplate
	log      *zap.Logger

	mu      sync.Mutex
	written map[string]bool
}

func NewEmitter(sink Sink, template *NameTemplate, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{sink: sink, template: template, log: log, written: make(map[string]bool)}
}

// Prepare names data and returns asset with URL built from prefix and
// resolved name. Nothing is stored.
func (e *Emitter) Prepare(data []byte, stylesheet, prefix string) *Asset {
	name := e.template.Execute(data, stylesheet)
	return &Asset{Name: name, URL: prefix + name, Data: data}
}

// Store hands asset to sink unless asset with the same name was already
// stored. Stores are serialized.
func (e *Emitter) Store(asset *Asset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.written[asset.Name] {
		e.log.Debug("Sprite already stored", zap.String("name", asset.Name))
		return nil
	}
	if err := e.sink.Put(asset.Name, asset.Data); err != nil {
		return fmt.Errorf("unable to store sprite: %w", err)
	}
	e.written[asset.Name] = true

	e.log.Debug("Sprite stored", zap.String("name", asset.Name), zap.Int("bytes", len(asset.Data)))
	return nil
}

// Emit names and stores data.
func (e *Emitter) Emit(data []byte, stylesheet, prefix string) (*Asset, error) {
	asset := e.Prepare(data, stylesheet, prefix)
	if err := e.Store(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Written returns number of distinct sprites stored so far.
func (e *Emitter) Written() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.written)
}

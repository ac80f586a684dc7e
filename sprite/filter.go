package sprite

import (
	"strings"

	"go.uber.org/zap"

	"cssprite/common"
)

const (
	DefaultLimit  = 8192
	DefaultMarker = "__sprite"
)

// FilterConfig selects which references participate in packing.
type FilterConfig struct {
	Mode   common.FilterMode
	Limit  int64  // maximum image file size in bytes
	Marker string // substring required in declaration value in query mode
}

// Filter decides reference eligibility.
type Filter struct {
	cfg FilterConfig
	fs  FileSystem
	log *zap.Logger
}

func NewFilter(cfg FilterConfig, fsys FileSystem, log *zap.Logger) *Filter {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Marker == "" {
		cfg.Marker = DefaultMarker
	}
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter{cfg: cfg, fs: fsys, log: log}
}

// isRemote reports whether raw url points to network resource.
func isRemote(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "//") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Apply returns eligible references keeping their order. Stat failures are
// logged and the reference is excluded, they never fail the build.
func (f *Filter) Apply(refs []Reference) []Reference {
	var eligible []Reference
	for _, ref := range refs {
		if f.eligible(ref) {
			eligible = append(eligible, ref)
		}
	}
	return eligible
}

func (f *Filter) eligible(ref Reference) bool {
	if isRemote(ref.URL) {
		f.log.Debug("Skipping remote image", zap.String("url", ref.URL))
		return false
	}
	if f.cfg.Mode.ChecksMarker() && !strings.Contains(ref.Value, f.cfg.Marker) {
		f.log.Debug("Skipping image without marker", zap.String("url", ref.URL), zap.String("marker", f.cfg.Marker))
		return false
	}
	if !f.cfg.Mode.ChecksSize() {
		return true
	}

	fi, err := f.fs.Stat(ref.AbsoluteURL)
	if err != nil {
		f.log.Warn("Unable to stat image, skipping", zap.String("url", ref.URL), zap.String("path", ref.AbsoluteURL), zap.Error(err))
		return false
	}
	if fi.IsDir() {
		f.log.Warn("Image path is a directory, skipping", zap.String("url", ref.URL), zap.String("path", ref.AbsoluteURL))
		return false
	}
	if fi.Size() > f.cfg.Limit {
		f.log.Debug("Skipping image over size limit", zap.String("url", ref.URL), zap.Int64("size", fi.Size()), zap.Int64("limit", f.cfg.Limit))
		return false
	}
	return true
}

package sprite

import (
	"testing"

	"cssprite/common"
)

func TestFilter_Apply(t *testing.T) {
	fsys := newMemFS(map[string]int64{
		"/s/small.png": 1000,
		"/s/big.png":   9000,
		"/s/limit.png": 8192,
	})
	fsys.dirs["/s/dir.png"] = true

	refs := []Reference{
		{URL: "small.png?__sprite", AbsoluteURL: "/s/small.png", Value: "url(small.png?__sprite)"},
		{URL: "small.png", AbsoluteURL: "/s/small.png", Value: "url(small.png) no-repeat"},
		{URL: "big.png?__sprite", AbsoluteURL: "/s/big.png", Value: "url(big.png?__sprite)"},
		{URL: "limit.png?__sprite", AbsoluteURL: "/s/limit.png", Value: "url(limit.png?__sprite)"},
		{URL: "missing.png?__sprite", AbsoluteURL: "/s/missing.png", Value: "url(missing.png?__sprite)"},
		{URL: "dir.png?__sprite", AbsoluteURL: "/s/dir.png", Value: "url(dir.png?__sprite)"},
		{URL: "HTTPS://cdn/x.png?__sprite", AbsoluteURL: "/s/small.png", Value: "url(HTTPS://cdn/x.png?__sprite)"},
		{URL: "http://cdn/x.png", AbsoluteURL: "/s/small.png", Value: "url(http://cdn/x.png)"},
		{URL: "//cdn/x.png?__sprite", AbsoluteURL: "/s/small.png", Value: "url(//cdn/x.png?__sprite)"},
	}

	tests := []struct {
		name string
		cfg  FilterConfig
		want []string
	}{
		{
			name: "query",
			cfg:  FilterConfig{Mode: common.FilterModeQuery},
			want: []string{"small.png?__sprite", "limit.png?__sprite"},
		},
		{
			name: "size",
			cfg:  FilterConfig{Mode: common.FilterModeSize},
			want: []string{"small.png?__sprite", "small.png", "limit.png?__sprite"},
		},
		{
			name: "size with lower limit",
			cfg:  FilterConfig{Mode: common.FilterModeSize, Limit: 1000},
			want: []string{"small.png?__sprite", "small.png"},
		},
		{
			name: "custom marker",
			cfg:  FilterConfig{Mode: common.FilterModeQuery, Marker: "no-repeat"},
			want: []string{"small.png"},
		},
		{
			name: "none",
			cfg:  FilterConfig{Mode: common.FilterModeNone},
			want: []string{"small.png?__sprite", "small.png", "big.png?__sprite", "limit.png?__sprite", "missing.png?__sprite", "dir.png?__sprite"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFilter(tt.cfg, fsys, testLogger(t)).Apply(refs)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() returned %d references, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].URL != tt.want[i] {
					t.Errorf("ref %d = %q, want %q", i, got[i].URL, tt.want[i])
				}
			}
		})
	}
}

func TestFilter_MarkedOverLimitExcluded(t *testing.T) {
	fsys := newMemFS(map[string]int64{"/s/huge.png": DefaultLimit + 1})
	refs := []Reference{{URL: "huge.png?__sprite", AbsoluteURL: "/s/huge.png", Value: "url(huge.png?__sprite)"}}

	for _, mode := range []common.FilterMode{common.FilterModeQuery, common.FilterModeSize} {
		if got := NewFilter(FilterConfig{Mode: mode}, fsys, nil).Apply(refs); len(got) != 0 {
			t.Errorf("mode %s: expected image over limit to be excluded", mode)
		}
	}
}

package sprite

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

const DefaultNameTemplate = "sprite.[hash:6].png"

// hashToken matches [hash], [contenthash], [hash:N] and
// [<algorithm>:hash:<digest>:N] placeholders.
var hashToken = regexp.MustCompile(`\[(?:(md5|sha1|sha256|sha512):)?(?:hash|contenthash)(?::(hex|base64))?(?::(\d+))?\]`)

var hashers = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// NameTemplate produces sprite file names from composite content.
type NameTemplate struct {
	text string
}

// ParseNameTemplate validates template. It must contain at least one hash
// placeholder so names are content addressed.
func ParseNameTemplate(text string) (*NameTemplate, error) {
	if text == "" {
		text = DefaultNameTemplate
	}
	if !hashToken.MatchString(text) {
		return nil, fmt.Errorf("name template %q has no content hash placeholder", text)
	}
	for _, m := range hashToken.FindAllStringSubmatch(text, -1) {
		if m[3] == "" {
			continue
		}
		if n, err := strconv.Atoi(m[3]); err != nil || n == 0 {
			return nil, fmt.Errorf("name template %q: invalid hash length in %s", text, m[0])
		}
	}
	probe := strings.NewReplacer("[ext]", "png", "[name]", "x").Replace(hashToken.ReplaceAllString(text, "h"))
	if !filepath.IsLocal(filepath.FromSlash(probe)) {
		return nil, errors.New("name template must produce relative path inside output directory")
	}
	return &NameTemplate{text: text}, nil
}

func (t *NameTemplate) String() string {
	return t.text
}

// Execute resolves template for data. Stylesheet name feeds [name]
// placeholder only, with hash placeholders alone result depends on data only.
func (t *NameTemplate) Execute(data []byte, stylesheet string) string {
	name := hashToken.ReplaceAllStringFunc(t.text, func(token string) string {
		m := hashToken.FindStringSubmatch(token)
		return digest(data, m[1], m[2], m[3])
	})
	return strings.NewReplacer("[ext]", "png", "[name]", baseName(stylesheet)).Replace(name)
}

func digest(data []byte, algorithm, encoding, length string) string {
	if algorithm == "" {
		algorithm = "md5"
	}
	h := hashers[algorithm]()
	h.Write(data)
	sum := h.Sum(nil)

	var s string
	if encoding == "base64" {
		s = base64.RawURLEncoding.EncodeToString(sum)
	} else {
		s = hex.EncodeToString(sum)
	}
	if n, err := strconv.Atoi(length); err == nil && n < len(s) {
		s = s[:n]
	}
	return s
}

func baseName(stylesheet string) string {
	base := strings.TrimSuffix(filepath.Base(stylesheet), filepath.Ext(stylesheet))
	if s := slug.Make(base); s != "" && s != "." {
		return s
	}
	return "sprite"
}

// Package fonts provides the font registry shared by canvases: embedded
// defaults, file and system font registration, and cached font faces.
//
// The Go font family ships compiled into the binary via the gofont
// packages, so text renders without any external dependencies. Additional
// families register from files or through system font discovery.
//
// A registry is constructed explicitly and passed by reference; there is
// no ambient global. Independent canvases may share one registry - all
// methods are safe for concurrent use, and parsed fonts and faces are
// cached and shared, never duplicated.
package fonts

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	// ErrUnknownFamily is returned by [Registry.Get] and [Registry.Face]
	// when no variant of the requested family is registered.
	ErrUnknownFamily = errors.New("unknown font family")

	// ErrInvalidFontData is returned by the register methods when the
	// font bytes do not parse as TrueType data.
	ErrInvalidFontData = errors.New("invalid font data")
)

// DefaultFamily is the family name of the embedded Go fonts.
const DefaultFamily = "Go"

// MonoFamily is the family name of the embedded Go Mono font.
const MonoFamily = "Go Mono"

type fontKey struct {
	family string
	weight int
	italic bool
}

type faceKey struct {
	fontKey
	size float64
}

// Registry holds parsed fonts keyed by family, weight and style, plus a
// face cache keyed additionally by size. The zero value is not usable -
// construct with [NewRegistry] or [Default].
type Registry struct {
	mu    sync.RWMutex
	fonts map[fontKey]*truetype.Font
	faces map[faceKey]font.Face
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fonts: make(map[fontKey]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Default returns a registry preloaded with the embedded Go fonts:
// family "Go" at weights 400, 500 and 700 plus an italic 400 variant,
// and family "Go Mono" at weight 400.
func Default() *Registry {
	r := NewRegistry()
	embedded := []struct {
		weight int
		italic bool
		data   []byte
	}{
		{400, false, goregular.TTF},
		{400, true, goitalic.TTF},
		{500, false, gomedium.TTF},
		{700, false, gobold.TTF},
	}
	for _, e := range embedded {
		if err := r.Register(DefaultFamily, e.weight, e.italic, e.data); err != nil {
			panic(fmt.Sprintf("fonts: embedded %s %d: %v", DefaultFamily, e.weight, err))
		}
	}
	if err := r.Register(MonoFamily, 400, false, gomono.TTF); err != nil {
		panic(fmt.Sprintf("fonts: embedded %s: %v", MonoFamily, err))
	}
	return r
}

// Register parses TrueType bytes and stores them under the family,
// weight and style. Registering the same key again replaces the previous
// font and invalidates its cached faces.
func (r *Registry) Register(family string, weight int, italic bool, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFontData, family, err)
	}

	key := fontKey{family: normalize(family), weight: weight, italic: italic}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[key] = f
	for fk := range r.faces {
		if fk.fontKey == key {
			delete(r.faces, fk)
		}
	}
	return nil
}

// RegisterFile reads a font file and registers it.
func (r *Registry) RegisterFile(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return r.Register(family, weight, italic, data)
}

// RegisterSystem locates a font file on the host by family name and
// registers it. Discovery searches the platform font directories.
func (r *Registry) RegisterSystem(family string, weight int, italic bool) error {
	path, err := FindSystem(family)
	if err != nil {
		return err
	}
	return r.RegisterFile(family, weight, italic, path)
}

// FindSystem returns the path of a system font file matching the family
// name, searching the platform font directories.
func FindSystem(family string) (string, error) {
	name := strings.ReplaceAll(strings.ToLower(family), " ", "")
	path, err := findfont.Find(name + ".ttf")
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownFamily, family, err)
	}
	return path, nil
}

// Get returns the parsed font for the family closest to the requested
// weight and matching the style flag. An exact weight wins; otherwise
// the nearest registered weight serves, falling back to the other style
// when the requested style has no variants at all.
func (r *Registry) Get(family string, weight int, italic bool) (*truetype.Font, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fam := normalize(family)
	if fam == "" {
		fam = normalize(DefaultFamily)
	}

	if f, ok := r.fonts[fontKey{family: fam, weight: weight, italic: italic}]; ok {
		return f, nil
	}

	best, bestDist := (*truetype.Font)(nil), 0
	bestStyleMatch := false
	for k, f := range r.fonts {
		if k.family != fam {
			continue
		}
		dist := abs(k.weight - weight)
		styleMatch := k.italic == italic
		better := best == nil ||
			(styleMatch && !bestStyleMatch) ||
			(styleMatch == bestStyleMatch && dist < bestDist)
		if better {
			best, bestDist, bestStyleMatch = f, dist, styleMatch
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	return best, nil
}

// Face returns a sized font face, cached per family, weight, style and
// size. Faces are shared: callers must not mutate them.
func (r *Registry) Face(family string, weight int, italic bool, size float64) (font.Face, error) {
	f, err := r.Get(family, weight, italic)
	if err != nil {
		return nil, err
	}

	fam := normalize(family)
	if fam == "" {
		fam = normalize(DefaultFamily)
	}
	key := faceKey{fontKey: fontKey{family: fam, weight: weight, italic: italic}, size: size}

	r.mu.RLock()
	face, ok := r.faces[key]
	r.mu.RUnlock()
	if ok {
		return face, nil
	}

	face = truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
	r.mu.Lock()
	r.faces[key] = face
	r.mu.Unlock()
	return face, nil
}

// Families returns the registered family names, sorted and deduplicated.
// Names are reported in their normalized lowercase form.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{}, len(r.fonts))
	for k := range r.fonts {
		set[k.family] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Variants returns the registered (weight, italic) pairs of a family,
// sorted by weight with upright variants first.
func (r *Registry) Variants(family string) []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fam := normalize(family)
	var out []Variant
	for k := range r.fonts {
		if k.family == fam {
			out = append(out, Variant{Weight: k.weight, Italic: k.italic})
		}
	}
	slices.SortFunc(out, func(a, b Variant) int {
		if a.Weight != b.Weight {
			return a.Weight - b.Weight
		}
		if a.Italic == b.Italic {
			return 0
		}
		if a.Italic {
			return 1
		}
		return -1
	})
	return out
}

// Variant is one registered weight and style of a family.
type Variant struct {
	Weight int
	Italic bool
}

func normalize(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

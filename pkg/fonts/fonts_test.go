package fonts

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultFamilies(t *testing.T) {
	r := Default()

	families := r.Families()
	if len(families) != 2 {
		t.Fatalf("Families() = %v, want 2 families", families)
	}
	if families[0] != "go" || families[1] != "go mono" {
		t.Errorf("Families() = %v, want [go, go mono]", families)
	}
}

func TestGetExactWeight(t *testing.T) {
	r := Default()

	bold, err := r.Get(DefaultFamily, 700, false)
	if err != nil {
		t.Fatalf("Get(Go, 700) error = %v", err)
	}
	regular, err := r.Get(DefaultFamily, 400, false)
	if err != nil {
		t.Fatalf("Get(Go, 400) error = %v", err)
	}
	if bold == regular {
		t.Error("Get(700) and Get(400) returned the same font")
	}
}

func TestGetNearestWeight(t *testing.T) {
	r := Default()

	// 600 is unregistered; 500 and 700 are both 100 away but the result
	// must be one of the registered uprights, never an error.
	f, err := r.Get(DefaultFamily, 600, false)
	if err != nil {
		t.Fatalf("Get(Go, 600) error = %v", err)
	}
	if f == nil {
		t.Fatal("Get(Go, 600) = nil font")
	}
}

func TestGetStyleFallback(t *testing.T) {
	r := Default()

	// Go Mono has no italic variant; the upright serves.
	f, err := r.Get(MonoFamily, 400, true)
	if err != nil {
		t.Fatalf("Get(Go Mono, italic) error = %v", err)
	}
	if f == nil {
		t.Fatal("Get(Go Mono, italic) = nil font")
	}
}

func TestGetEmptyFamilyUsesDefault(t *testing.T) {
	r := Default()

	f, err := r.Get("", 400, false)
	if err != nil {
		t.Fatalf("Get(\"\") error = %v", err)
	}
	want, _ := r.Get(DefaultFamily, 400, false)
	if f != want {
		t.Error("Get(\"\") did not fall back to the default family")
	}
}

func TestGetUnknownFamily(t *testing.T) {
	r := Default()

	_, err := r.Get("Papyrus", 400, false)
	if !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("Get(Papyrus) error = %v, want ErrUnknownFamily", err)
	}
}

func TestFaceCaching(t *testing.T) {
	r := Default()

	a, err := r.Face(DefaultFamily, 400, false, 16)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	b, err := r.Face(DefaultFamily, 400, false, 16)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if a != b {
		t.Error("same face requested twice, got distinct instances")
	}

	c, err := r.Face(DefaultFamily, 400, false, 32)
	if err != nil {
		t.Fatalf("Face(32) error = %v", err)
	}
	if a == c {
		t.Error("different sizes returned the same face")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("Custom", 400, false, goregular.TTF); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := r.Face("Custom", 400, false, 14); err != nil {
		t.Fatalf("Face() error = %v", err)
	}

	// Re-registering drops the stale face cache entry.
	if err := r.Register("Custom", 400, false, goregular.TTF); err != nil {
		t.Fatalf("Register() again error = %v", err)
	}
	if _, err := r.Face("Custom", 400, false, 14); err != nil {
		t.Fatalf("Face() after replace error = %v", err)
	}
}

func TestRegisterInvalidData(t *testing.T) {
	r := NewRegistry()
	err := r.Register("Broken", 400, false, []byte("not a font"))
	if !errors.Is(err, ErrInvalidFontData) {
		t.Errorf("Register() error = %v, want ErrInvalidFontData", err)
	}
}

func TestFamilyMatchingIgnoresCase(t *testing.T) {
	r := Default()
	if _, err := r.Get("gO mOnO", 400, false); err != nil {
		t.Errorf("Get(gO mOnO) error = %v, want case-insensitive match", err)
	}
}

func TestVariants(t *testing.T) {
	r := Default()

	vs := r.Variants(DefaultFamily)
	if len(vs) != 4 {
		t.Fatalf("Variants(Go) = %v, want 4 entries", vs)
	}
	if vs[0].Weight != 400 || vs[0].Italic {
		t.Errorf("Variants()[0] = %+v, want upright 400 first", vs[0])
	}
	if vs[len(vs)-1].Weight != 700 {
		t.Errorf("Variants() last = %+v, want weight 700", vs[len(vs)-1])
	}
}

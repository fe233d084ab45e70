package plumber

import (
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// tilesHash is a single-page export in the hash layout, including a
// trimmed frame whose frame rect is what gets drawn.
const tilesHash = `{
  "frames": {
    "brick": {"frame": {"x": 0, "y": 0, "w": 16, "h": 16}, "rotated": false, "trimmed": false},
    "coin":  {"frame": {"x": 16, "y": 0, "w": 10, "h": 14}, "rotated": false, "trimmed": false},
    "pipe":  {"frame": {"x": 32, "y": 8, "w": 30, "h": 24}, "rotated": false, "trimmed": true,
              "spriteSourceSize": {"x": 1, "y": 0, "w": 30, "h": 24}, "sourceSize": {"w": 32, "h": 32}}
  },
  "meta": {"image": "tiles.png", "size": {"w": 64, "h": 32}}
}`

// tilesArray holds the same frames in the array layout.
const tilesArray = `{
  "frames": [
    {"filename": "pipe",  "frame": {"x": 32, "y": 8, "w": 30, "h": 24}, "rotated": false},
    {"filename": "brick", "frame": {"x": 0, "y": 0, "w": 16, "h": 16}, "rotated": false},
    {"filename": "coin",  "frame": {"x": 16, "y": 0, "w": 10, "h": 14}, "rotated": false}
  ]
}`

// twoPages is a multi-page export with one frame per page; the second page
// uses the array layout.
const twoPages = `{
  "textures": [
    {"image": "world-0.png", "frames": {"ground": {"frame": {"x": 0, "y": 0, "w": 32, "h": 32}}}},
    {"image": "world-1.png", "frames": [{"filename": "cloud", "frame": {"x": 4, "y": 6, "w": 40, "h": 20}}]}
  ]
}`

func loadTiles(t *testing.T, data string) *Atlas {
	t.Helper()
	atlas, err := LoadAtlas([]byte(data), []*ebiten.Image{ebiten.NewImage(64, 32)})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	return atlas
}

func TestLoadAtlasLayouts(t *testing.T) {
	want := map[string][4]int{
		"brick": {0, 0, 16, 16},
		"coin":  {16, 0, 10, 14},
		"pipe":  {32, 8, 30, 24}, // trimmed frames use the frame rect
	}
	for _, layout := range []struct{ name, data string }{
		{"hash", tilesHash},
		{"array", tilesArray},
	} {
		t.Run(layout.name, func(t *testing.T) {
			atlas := loadTiles(t, layout.data)
			if atlas.Len() != len(want) {
				t.Fatalf("Len() = %d, want %d", atlas.Len(), len(want))
			}
			for name, rect := range want {
				r, ok := atlas.Lookup(name)
				if !ok {
					t.Errorf("%s missing", name)
					continue
				}
				if got := [4]int{r.X, r.Y, r.Width, r.Height}; got != rect {
					t.Errorf("%s = %v, want %v", name, got, rect)
				}
				if r.Texture != atlas.Pages[0] {
					t.Errorf("%s should reference page 0", name)
				}
			}
		})
	}
}

func TestLoadAtlasMultiPage(t *testing.T) {
	page0 := ebiten.NewImage(32, 32)
	page1 := ebiten.NewImage(64, 32)
	atlas, err := LoadAtlas([]byte(twoPages), []*ebiten.Image{page0, page1})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if atlas.Region("ground").Texture != page0 {
		t.Error("ground should reference page 0")
	}
	cloud := atlas.Region("cloud")
	if cloud.Texture != page1 {
		t.Error("cloud should reference page 1")
	}
	if cloud.X != 4 || cloud.Y != 6 {
		t.Errorf("cloud at %d,%d, want 4,6", cloud.X, cloud.Y)
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	onePage := []*ebiten.Image{ebiten.NewImage(64, 32)}
	tests := []struct {
		name    string
		data    string
		pages   []*ebiten.Image
		mention string
	}{
		{"invalid JSON", `{invalid`, onePage, "parse"},
		{"no frames or textures", `{"meta": {}}`, onePage, "neither"},
		{"rotated", `{"frames": {"r": {"frame": {"x": 0, "y": 0, "w": 8, "h": 4}, "rotated": true}}}`, onePage, "rotated"},
		{"array entry without filename", `{"frames": [{"frame": {"x": 0, "y": 0, "w": 8, "h": 8}}]}`, onePage, "filename"},
		{"frames not a collection", `{"frames": 3}`, onePage, "page 0"},
		{"missing page", twoPages, onePage, "page 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAtlas([]byte(tt.data), tt.pages)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q should mention %q", err, tt.mention)
			}
		})
	}
}

func TestAtlasRegionMissingUsesPlaceholder(t *testing.T) {
	atlas := loadTiles(t, tilesHash)

	r := atlas.Region("goomba")
	if r.Texture != ensureMagentaImage() {
		t.Error("missing region should use the magenta placeholder")
	}
	if r.Width != 1 || r.Height != 1 {
		t.Errorf("placeholder size = %dx%d, want 1x1", r.Width, r.Height)
	}
	if _, ok := atlas.Lookup("goomba"); ok {
		t.Error("Lookup should report the region as missing")
	}
}

// --- Manual atlas ---

func TestAtlasAdd(t *testing.T) {
	page := ebiten.NewImage(64, 64)
	atlas := NewAtlas(page)
	r, err := atlas.Add("tile", 0, 16, 0, 16, 16)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.Size() != (Vec2{16, 16}) {
		t.Errorf("Size() = %v, want {16 16}", r.Size())
	}
	if got, ok := atlas.Lookup("tile"); !ok || got != r {
		t.Error("Lookup should return the added region")
	}
	if _, err := atlas.Add("bad", 1, 0, 0, 1, 1); err == nil {
		t.Error("expected error for out-of-range page")
	}
}

func TestAtlasNewAnimation(t *testing.T) {
	page := ebiten.NewImage(64, 16)
	atlas := NewAtlas(page)
	for i, name := range []string{"run0", "run1", "run2"} {
		if _, err := atlas.Add(name, 0, i*16, 0, 16, 16); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}

	anim, err := atlas.NewAnimation(100*time.Millisecond, "run0", "run1", "run2")
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	if len(anim.Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(anim.Frames))
	}
	if anim.Frames[1].X != 16 {
		t.Errorf("frame 1 X = %d, want 16", anim.Frames[1].X)
	}

	if _, err := atlas.NewAnimation(time.Second, "run0", "missing"); err == nil {
		t.Error("expected error for unknown frame name")
	}
}

// --- TextureRegion ---

func TestTextureRegionImage(t *testing.T) {
	page := ebiten.NewImage(32, 32)
	r := NewTextureRegion(page, 8, 8, 16, 8)
	img := r.Image()
	if img == nil {
		t.Fatal("Image() = nil")
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Errorf("sub-image size = %dx%d, want 16x8", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if r.Image() != img {
		t.Error("Image() should be cached")
	}

	var empty TextureRegion
	if empty.Image() != nil {
		t.Error("region without texture should have nil image")
	}
}

// --- MagentaImage tests ---

func TestEnsureMagentaImage_Singleton(t *testing.T) {
	img1 := ensureMagentaImage()
	img2 := ensureMagentaImage()
	if img1 != img2 {
		t.Error("ensureMagentaImage returned different images")
	}
	w, h := img1.Bounds().Dx(), img1.Bounds().Dy()
	if w != 1 || h != 1 {
		t.Errorf("magenta image size = %dx%d, want 1x1", w, h)
	}
}

// --- Benchmarks ---

func BenchmarkLoadAtlas(b *testing.B) {
	data := []byte(tilesHash)
	pages := []*ebiten.Image{ebiten.NewImage(64, 32)}
	for b.Loop() {
		_, _ = LoadAtlas(data, pages)
	}
}

func BenchmarkAtlasRegion(b *testing.B) {
	atlas, _ := LoadAtlas([]byte(tilesHash), []*ebiten.Image{ebiten.NewImage(64, 32)})
	for b.Loop() {
		_ = atlas.Region("coin")
	}
}

package plumber

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"slices"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// TextureRegion describes a sub-rectangle of a texture. Sprites hold regions
// by pointer so that a nil region can be told apart from an empty one.
type TextureRegion struct {
	Texture       *ebiten.Image // nil regions measure but never draw
	X, Y          int           // top-left corner within Texture
	Width, Height int           // size of the sub-rectangle in pixels

	sub *ebiten.Image // cached Texture.SubImage
}

// NewTextureRegion returns the region (x, y, w, h) of tex.
func NewTextureRegion(tex *ebiten.Image, x, y, w, h int) *TextureRegion {
	return &TextureRegion{Texture: tex, X: x, Y: y, Width: w, Height: h}
}

// Size returns the region's natural size.
func (r *TextureRegion) Size() Vec2 {
	return Vec2{float64(r.Width), float64(r.Height)}
}

// Bounds returns the region rectangle in texture space.
func (r *TextureRegion) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Image returns the sub-image covered by the region, or nil when the region
// has no texture.
func (r *TextureRegion) Image() *ebiten.Image {
	if r.Texture == nil {
		return nil
	}
	if r.sub == nil {
		r.sub = r.Texture.SubImage(r.Bounds()).(*ebiten.Image)
	}
	return r.sub
}

// Atlas holds one or more atlas page images and a map of named regions.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]*TextureRegion
}

// NewAtlas returns an empty atlas over the given pages. Regions are added
// with Add.
func NewAtlas(pages ...*ebiten.Image) *Atlas {
	return &Atlas{Pages: pages, regions: make(map[string]*TextureRegion)}
}

// Add registers a named region on the given page and returns it.
func (a *Atlas) Add(name string, page, x, y, w, h int) (*TextureRegion, error) {
	if page < 0 || page >= len(a.Pages) {
		return nil, fmt.Errorf("plumber: atlas region %q references page %d, atlas has %d", name, page, len(a.Pages))
	}
	r := NewTextureRegion(a.Pages[page], x, y, w, h)
	a.regions[name] = r
	return r, nil
}

// Lookup returns the named region and whether it exists.
func (a *Atlas) Lookup(name string) (*TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of named regions.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// Region returns the region for the given name.
// If the name doesn't exist, it logs a warning and returns a 1x1 magenta
// placeholder region.
func (a *Atlas) Region(name string) *TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	logger.Warn("atlas region not found, using magenta placeholder", zap.String("region", name))
	return magentaRegion()
}

// NewAnimation builds an animation from region names in frame order.
func (a *Atlas) NewAnimation(delay time.Duration, names ...string) (*Animation, error) {
	frames := make([]*TextureRegion, 0, len(names))
	for _, name := range names {
		r, ok := a.regions[name]
		if !ok {
			return nil, fmt.Errorf("plumber: animation frame %q not found in atlas", name)
		}
		frames = append(frames, r)
	}
	return NewAnimation(delay, frames...), nil
}

// magenta placeholder singleton; plumber is single-threaded
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

func magentaRegion() *TextureRegion {
	return NewTextureRegion(ensureMagentaImage(), 0, 0, 1, 1)
}

// texturePackerFrame is one frame entry of a TexturePacker export. Filename
// is only present in the array layout; the hash layout keys frames by name.
type texturePackerFrame struct {
	Filename string `json:"filename"`
	Frame    struct {
		X, Y, W, H int
	} `json:"frame"`
	Rotated bool `json:"rotated"`
}

type texturePackerFile struct {
	Frames   json.RawMessage `json:"frames"`
	Textures []struct {
		Frames json.RawMessage `json:"frames"`
	} `json:"textures"`
}

// LoadAtlas parses TexturePacker JSON data and registers its frames on the
// given pages. A top-level "frames" collection describes page 0; a
// "textures" list describes one page per entry. Each frames collection may
// use the hash layout (object keyed by name) or the array layout (list of
// entries with a filename). Rotated frames are rejected.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var file texturePackerFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("plumber: failed to parse atlas JSON: %w", err)
	}

	var perPage []json.RawMessage
	switch {
	case file.Textures != nil:
		for _, t := range file.Textures {
			perPage = append(perPage, t.Frames)
		}
	case file.Frames != nil:
		perPage = []json.RawMessage{file.Frames}
	default:
		return nil, fmt.Errorf("plumber: atlas JSON has neither \"frames\" nor \"textures\"")
	}

	atlas := NewAtlas(pages...)
	for page, raw := range perPage {
		frames, err := decodeFrames(raw)
		if err != nil {
			return nil, fmt.Errorf("plumber: atlas page %d: %w", page, err)
		}
		for _, f := range frames {
			if f.Rotated {
				return nil, fmt.Errorf("plumber: atlas frame %q is rotated; export without rotation", f.Filename)
			}
			if _, err := atlas.Add(f.Filename, page, f.Frame.X, f.Frame.Y, f.Frame.W, f.Frame.H); err != nil {
				return nil, err
			}
		}
	}
	return atlas, nil
}

// decodeFrames reads either frames layout into a list sorted by name.
func decodeFrames(raw json.RawMessage) ([]texturePackerFrame, error) {
	var frames []texturePackerFrame
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &frames); err != nil {
			return nil, err
		}
		for i, f := range frames {
			if f.Filename == "" {
				return nil, fmt.Errorf("frame %d has no filename", i)
			}
		}
	} else {
		var byName map[string]texturePackerFrame
		if err := json.Unmarshal(raw, &byName); err != nil {
			return nil, err
		}
		frames = make([]texturePackerFrame, 0, len(byName))
		for name, f := range byName {
			f.Filename = name
			frames = append(frames, f)
		}
	}
	slices.SortFunc(frames, func(a, b texturePackerFrame) int {
		return strings.Compare(a.Filename, b.Filename)
	})
	return frames, nil
}

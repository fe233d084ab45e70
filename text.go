package plumber

import (
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and rendering.
type Font interface {
	// MeasureString returns the unscaled size of s. Newlines start new lines.
	MeasureString(s string) (width, height float64)
	LineHeight() float64
	// DrawString renders s with its top-left corner at the origin of op.GeoM.
	DrawString(dst *ebiten.Image, s string, op *ebiten.DrawImageOptions)
}

// glyph is one character of a BitmapFont page.
type glyph struct {
	rect     image.Rectangle // area of the page holding the glyph
	xOffset  int16
	yOffset  int16
	xAdvance int16

	img *ebiten.Image // cached page sub-image
}

type kernPair struct {
	first, second rune
}

const asciiGlyphCount = 128

// BitmapFont renders text from a pre-rasterized glyph page described by
// BMFont text-format (.fnt) data.
type BitmapFont struct {
	lineHeight float64
	page       *ebiten.Image
	ascii      [asciiGlyphCount]*glyph // nil where the font has no glyph
	ext        map[rune]*glyph
	kerning    map[kernPair]int16
}

// walk lays s out one glyph at a time and calls visit, when non-nil, with
// each glyph and its pen position. Runes without a glyph are skipped and
// break kerning. It returns the widest line and the number of lines.
func (f *BitmapFont) walk(s string, visit func(g *glyph, x, y float64)) (width float64, lines int) {
	var x, y float64
	prev := rune(-1)
	lines = 1
	for _, r := range s {
		if r == '\n' {
			width = max(width, x)
			x = 0
			y += f.lineHeight
			lines++
			prev = -1
			continue
		}
		g := f.glyph(r)
		if g == nil {
			prev = -1
			continue
		}
		if prev >= 0 {
			x += float64(f.kerning[kernPair{prev, r}])
		}
		if visit != nil {
			visit(g, x, y)
		}
		x += float64(g.xAdvance)
		prev = r
	}
	return max(width, x), lines
}

// MeasureString returns the size of s. Every line, even an empty one, is
// LineHeight tall.
func (f *BitmapFont) MeasureString(s string) (width, height float64) {
	w, lines := f.walk(s, nil)
	return w, float64(lines) * f.lineHeight
}

// LineHeight returns the vertical distance between baselines.
func (f *BitmapFont) LineHeight() float64 {
	return f.lineHeight
}

// Page returns the glyph page image.
func (f *BitmapFont) Page() *ebiten.Image {
	return f.page
}

// DrawString draws s glyph by glyph from the font page. Glyphs missing from
// the font are skipped. Without a page image nothing is drawn.
func (f *BitmapFont) DrawString(dst *ebiten.Image, s string, op *ebiten.DrawImageOptions) {
	if f.page == nil {
		return
	}
	gop := *op
	f.walk(s, func(g *glyph, x, y float64) {
		if g.rect.Empty() {
			return
		}
		gop.GeoM.Reset()
		gop.GeoM.Translate(x+float64(g.xOffset), y+float64(g.yOffset))
		gop.GeoM.Concat(op.GeoM)
		dst.DrawImage(f.glyphImage(g), &gop)
	})
}

func (f *BitmapFont) glyphImage(g *glyph) *ebiten.Image {
	if g.img == nil {
		g.img = f.page.SubImage(g.rect).(*ebiten.Image)
	}
	return g.img
}

// glyph returns the glyph for r, or nil.
func (f *BitmapFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		return f.ascii[r]
	}
	return f.ext[r]
}

func (f *BitmapFont) addGlyph(r rune, g *glyph) {
	if r >= 0 && r < asciiGlyphCount {
		f.ascii[r] = g
		return
	}
	if f.ext == nil {
		f.ext = make(map[rune]*glyph)
	}
	f.ext[r] = g
}

// LoadBitmapFont parses BMFont text-format data. page is the glyph page
// image; it may be nil for measurement-only use. Only single-page fonts are
// supported: every glyph is read from page.
func LoadBitmapFont(fntData []byte, page *ebiten.Image) (*BitmapFont, error) {
	f := &BitmapFont{page: page}
	chars := 0
	for line := range strings.Lines(string(fntData)) {
		tag, attrs := parseFntLine(line)
		switch tag {
		case "common":
			f.lineHeight = float64(attrs.int("lineHeight"))
		case "char":
			chars++
			x, y := attrs.int("x"), attrs.int("y")
			f.addGlyph(rune(attrs.int("id")), &glyph{
				rect:     image.Rect(x, y, x+attrs.int("width"), y+attrs.int("height")),
				xOffset:  int16(attrs.int("xoffset")),
				yOffset:  int16(attrs.int("yoffset")),
				xAdvance: int16(attrs.int("xadvance")),
			})
		case "kerning":
			if f.kerning == nil {
				f.kerning = make(map[kernPair]int16)
			}
			pair := kernPair{rune(attrs.int("first")), rune(attrs.int("second"))}
			f.kerning[pair] = int16(attrs.int("amount"))
		}
	}

	if f.lineHeight <= 0 {
		return nil, fmt.Errorf("plumber: .fnt data has no common lineHeight")
	}
	if chars == 0 {
		return nil, fmt.Errorf("plumber: .fnt data has no char definitions")
	}
	return f, nil
}

// fntAttrs holds the key=value attributes of one .fnt line.
type fntAttrs map[string]string

// int returns the attribute as an integer; absent or malformed values are 0.
func (a fntAttrs) int(key string) int {
	n, _ := strconv.Atoi(a[key])
	return n
}

// parseFntLine splits a .fnt line into its tag and attributes. Quotes around
// values are dropped; quoted values containing spaces are not supported and
// no attribute the loader reads needs them.
func parseFntLine(line string) (string, fntAttrs) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	attrs := make(fntAttrs, len(fields)-1)
	for _, field := range fields[1:] {
		if k, v, ok := strings.Cut(field, "="); ok {
			attrs[k] = strings.Trim(v, `"`)
		}
	}
	return fields[0], attrs
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("plumber: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	// Compute line height from metrics
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// DrawString renders s through text/v2.
func (f *TTFFont) DrawString(dst *ebiten.Image, s string, op *ebiten.DrawImageOptions) {
	top := &text.DrawOptions{DrawImageOptions: *op}
	top.LineSpacing = f.lh
	text.Draw(dst, s, f.face, top)
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

package plumber

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at batch submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, velocities, origins and scales
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// One is the identity scale.
var One = Vec2{1, 1}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by the scalar s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Effects is a bitmask of mirroring flags applied when a sprite is drawn.
type Effects uint8

const (
	FlipNone         Effects = 0
	FlipHorizontally Effects = 1 << (iota - 1) // mirror around the vertical axis
	FlipVertically                             // mirror around the horizontal axis
)

// Has reports whether all flags in f are set.
func (e Effects) Has(f Effects) bool { return e&f == f && f != 0 }

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

var blendNames = [...]string{"normal", "add", "multiply", "none"}

// String returns the name accepted by ParseBlendMode.
func (b BlendMode) String() string {
	if int(b) < len(blendNames) {
		return blendNames[b]
	}
	return fmt.Sprintf("BlendMode(%d)", b)
}

// ParseBlendMode returns the mode named name. The empty string means
// BlendNormal.
func ParseBlendMode(name string) (BlendMode, error) {
	if name == "" {
		return BlendNormal, nil
	}
	for i, n := range blendNames {
		if strings.EqualFold(n, name) {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("plumber: unknown blend mode %q", name)
}

// GameTime is the frame timing handed to every Update call.
type GameTime struct {
	Elapsed time.Duration // time since the previous update
	Total   time.Duration // time since the clock started
}

// Seconds returns Elapsed as fractional seconds.
func (t GameTime) Seconds() float64 {
	return t.Elapsed.Seconds()
}

// Clock produces fixed-step GameTime values. There is no wall-clock sampling:
// every Tick advances by Step, matching Ebitengine's fixed TPS update model.
type Clock struct {
	Step  time.Duration
	total time.Duration
}

// NewClock returns a clock stepping at the given ticks per second.
// A non-positive tps falls back to ebiten.DefaultTPS.
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &Clock{Step: time.Second / time.Duration(tps)}
}

// Tick advances the clock by one step and returns the resulting GameTime.
func (c *Clock) Tick() GameTime {
	c.total += c.Step
	return GameTime{Elapsed: c.Step, Total: c.total}
}

// Total returns the accumulated time.
func (c *Clock) Total() time.Duration {
	return c.total
}

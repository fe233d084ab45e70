package plumber

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SortMode controls the order in which a SpriteBatch submits its draws.
type SortMode uint8

const (
	SortDeferred    SortMode = iota // submission order
	SortBackToFront                 // descending LayerDepth: depth 0 ends up on top
	SortFrontToBack                 // ascending LayerDepth: depth 1 ends up on top
)

var (
	// ErrBatchActive is returned by Begin when the batch has not been ended.
	ErrBatchActive = errors.New("plumber: sprite batch already begun")
	// ErrBatchInactive is returned by End when Begin was not called.
	ErrBatchInactive = errors.New("plumber: sprite batch not begun")
)

const defaultCommandCap = 256

// drawCommand is a single queued draw: either a texture region or a string.
type drawCommand struct {
	image *ebiten.Image
	font  Font
	text  string
	geom  ebiten.GeoM
	color Color
	depth float32
	order int // submission index for stable sort
}

// SpriteBatch collects sprite and text draws between Begin and End, sorts
// them by layer depth and submits them to a target image.
type SpriteBatch struct {
	// Blend is applied to every draw submitted by End.
	Blend BlendMode

	target   *ebiten.Image
	mode     SortMode
	active   bool
	commands []drawCommand
	sortBuf  []drawCommand
	op       ebiten.DrawImageOptions
	stats    BatchStats
}

// NewSpriteBatch returns an idle batch.
func NewSpriteBatch() *SpriteBatch {
	return &SpriteBatch{
		commands: make([]drawCommand, 0, defaultCommandCap),
		sortBuf:  make([]drawCommand, 0, defaultCommandCap),
	}
}

// Begin starts collecting draws for target.
func (b *SpriteBatch) Begin(target *ebiten.Image, mode SortMode) error {
	if b.active {
		return ErrBatchActive
	}
	b.target = target
	b.mode = mode
	b.active = true
	b.commands = b.commands[:0]
	return nil
}

// Active reports whether Begin has been called without a matching End.
func (b *SpriteBatch) Active() bool {
	return b.active
}

// Len returns the number of queued draws.
func (b *SpriteBatch) Len() int {
	return len(b.commands)
}

// Draw queues region at position. The origin is in region pixels; effects
// mirror the region in place before the origin, scale and rotation apply.
// Draws outside Begin/End are dropped.
func (b *SpriteBatch) Draw(region *TextureRegion, position Vec2, c Color, rotation float64, origin, scale Vec2, effects Effects, depth float32) {
	if !b.active || region == nil {
		return
	}
	img := region.Image()
	if img == nil {
		return
	}
	b.commands = append(b.commands, drawCommand{
		image: img,
		geom:  spriteGeoM(float64(region.Width), float64(region.Height), position, rotation, origin, scale, effects),
		color: c,
		depth: depth,
		order: len(b.commands),
	})
}

// DrawString queues s rendered with font at position. Parameters match Draw;
// effects mirror the measured text box.
func (b *SpriteBatch) DrawString(font Font, s string, position Vec2, c Color, rotation float64, origin, scale Vec2, effects Effects, depth float32) {
	if !b.active || font == nil || s == "" {
		return
	}
	w, h := font.MeasureString(s)
	b.commands = append(b.commands, drawCommand{
		font:  font,
		text:  s,
		geom:  spriteGeoM(w, h, position, rotation, origin, scale, effects),
		color: c,
		depth: depth,
		order: len(b.commands),
	})
}

// End sorts the queued draws and submits them to the target.
func (b *SpriteBatch) End() error {
	if !b.active {
		return ErrBatchInactive
	}
	b.active = false
	start := time.Now()
	if b.mode != SortDeferred {
		b.mergeSort()
	}
	sorted := time.Now()
	if b.target != nil {
		b.submit()
	}
	b.stats = BatchStats{
		SortTime:   sorted.Sub(start),
		SubmitTime: time.Since(sorted),
		Commands:   len(b.commands),
		Batches:    countBatches(b.commands),
		TextDraws:  countTextDraws(b.commands),
	}
	b.commands = b.commands[:0]
	b.target = nil
	return nil
}

func (b *SpriteBatch) submit() {
	op := &b.op
	op.Blend = b.Blend.EbitenBlend()
	for i := range b.commands {
		cmd := &b.commands[i]
		op.GeoM = cmd.geom
		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
		if cmd.font != nil {
			cmd.font.DrawString(b.target, cmd.text, op)
			continue
		}
		b.target.DrawImage(cmd.image, op)
	}
}

// spriteGeoM composes the draw transform for a w x h box:
//
//	Flip (in place) -> Translate(-origin) -> Scale -> Rotate -> Translate(position)
func spriteGeoM(w, h float64, position Vec2, rotation float64, origin, scale Vec2, effects Effects) ebiten.GeoM {
	var m ebiten.GeoM
	if effects.Has(FlipHorizontally) {
		m.Scale(-1, 1)
		m.Translate(w, 0)
	}
	if effects.Has(FlipVertically) {
		m.Scale(1, -1)
		m.Translate(0, h)
	}
	m.Translate(-origin.X, -origin.Y)
	m.Scale(scale.X, scale.Y)
	if rotation != 0 {
		m.Rotate(rotation)
	}
	m.Translate(position.X, position.Y)
	return m
}

// commandLessOrEqual returns true if a should be submitted before or at the
// same position as b. Using <= for order ensures stability.
func (b *SpriteBatch) commandLessOrEqual(x, y *drawCommand) bool {
	if x.depth != y.depth {
		if b.mode == SortBackToFront {
			return x.depth > y.depth
		}
		return x.depth < y.depth
	}
	return x.order <= y.order
}

// mergeSort sorts b.commands in-place using b.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (b *SpriteBatch) mergeSort() {
	n := len(b.commands)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]drawCommand, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.commands
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			b.mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.commands, b.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func (b *SpriteBatch) mergeRun(src, dst []drawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if b.commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

package sprites

import (
	"github.com/phanxgames/plumber"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 properties of a Sprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, TweenRotation) and call Update(dt) each frame.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the sprite.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates the sprite position to to over duration seconds.
// The tween overwrites the position on every Update, so a moving sprite stops
// advancing until the group is done.
func TweenPosition(s *Sprite, to plumber.Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&s.position.X, to.X, duration, fn)
	g.add(&s.position.Y, to.Y, duration, fn)
	return g
}

// TweenScale animates the sprite scale to to over duration seconds.
func TweenScale(s *Sprite, to plumber.Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&s.props.Scale.X, to.X, duration, fn)
	g.add(&s.props.Scale.Y, to.Y, duration, fn)
	return g
}

// TweenColor animates all four components of the sprite tint.
func TweenColor(s *Sprite, to plumber.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&s.props.Color.R, to.R, duration, fn)
	g.add(&s.props.Color.G, to.G, duration, fn)
	g.add(&s.props.Color.B, to.B, duration, fn)
	g.add(&s.props.Color.A, to.A, duration, fn)
	return g
}

// TweenAlpha animates only the alpha component of the sprite tint.
func TweenAlpha(s *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&s.props.Color.A, to, duration, fn)
	return g
}

// TweenRotation animates the sprite rotation, in radians.
func TweenRotation(s *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&s.props.Rotation, to, duration, fn)
	return g
}

// Package sprites provides the sprite variants a platformer game object
// owns: static, moving, animated, moving and animated, and text.
//
// All variants share one type, Sprite, tagged with a Kind chosen at
// construction. Every Sprite has a position, a velocity, the usual draw
// properties (rotation, scale, tint, flip effects, layer depth, origin) and a
// width and height derived from its visual resource times its scale.
//
//	hero, err := sprites.NewMovingAnimated(run, plumber.Vec2{X: 32, Y: 200}, plumber.Vec2{X: 60})
//	if err != nil {
//		return err
//	}
//	hero.Update(gt)
//	hero.Draw(batch)
package sprites

import (
	"errors"
	"fmt"

	"github.com/phanxgames/plumber"
	"go.uber.org/zap"
)

// Kind identifies a sprite variant.
type Kind uint8

const (
	KindStatic         Kind = iota // fixed texture region, never moves
	KindMoving                     // texture region integrated by velocity
	KindAnimated                   // animation, fixed position
	KindMovingAnimated             // animation integrated by velocity
	KindText                       // string rendered with a font
)

var kindNames = [...]string{
	KindStatic:         "static",
	KindMoving:         "moving",
	KindAnimated:       "animated",
	KindMovingAnimated: "moving_animated",
	KindText:           "text",
}

// String returns the name accepted by ParseKind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a kind name as returned by Kind.String back to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("sprites: unknown kind %q", name)
}

var (
	// ErrNilResource is wrapped by every constructor error caused by a nil
	// visual resource.
	ErrNilResource = errors.New("sprites: nil visual resource")

	ErrNilRegion    = fmt.Errorf("%w: texture region", ErrNilResource)
	ErrNilAnimation = fmt.Errorf("%w: animation", ErrNilResource)
	ErrNilFont      = fmt.Errorf("%w: font", ErrNilResource)
)

// Sprite is a drawable owned by a game object. Construct one with NewStatic,
// NewMoving, NewAnimated, NewMovingAnimated or NewText.
type Sprite struct {
	kind     Kind
	position plumber.Vec2
	velocity plumber.Vec2

	// props holds the draw properties of whichever resource backs the kind:
	// image for static and moving, &anim.Sprite for animated, &text for text.
	props *plumber.Sprite
	image *plumber.Sprite
	anim  *plumber.AnimatedSprite
	text  plumber.Sprite

	font    plumber.Font
	content string
}

func logger() *zap.Logger {
	return plumber.Logger().Named("sprites")
}

func newRegionSprite(kind Kind, region *plumber.TextureRegion, pos, vel plumber.Vec2) (*Sprite, error) {
	if region == nil {
		return nil, ErrNilRegion
	}
	s := &Sprite{kind: kind, position: pos, velocity: vel, image: plumber.NewSprite(region)}
	s.props = s.image
	logger().Debug("sprite created", zap.Stringer("kind", kind), zap.Int("w", region.Width), zap.Int("h", region.Height))
	return s, nil
}

func newAnimatedSprite(kind Kind, anim *plumber.Animation, pos, vel plumber.Vec2) (*Sprite, error) {
	if anim == nil {
		return nil, ErrNilAnimation
	}
	s := &Sprite{kind: kind, position: pos, velocity: vel, anim: plumber.NewAnimatedSprite(anim)}
	s.props = &s.anim.Sprite
	logger().Debug("sprite created", zap.Stringer("kind", kind), zap.Int("frames", len(anim.Frames)), zap.Duration("delay", anim.Delay))
	return s, nil
}

// NewStatic returns a sprite drawing region at a fixed position.
func NewStatic(region *plumber.TextureRegion, pos plumber.Vec2) (*Sprite, error) {
	return newRegionSprite(KindStatic, region, pos, plumber.Vec2{})
}

// NewMoving returns a sprite drawing region that moves by vel pixels per
// second.
func NewMoving(region *plumber.TextureRegion, pos, vel plumber.Vec2) (*Sprite, error) {
	return newRegionSprite(KindMoving, region, pos, vel)
}

// NewAnimated returns a sprite playing anim at a fixed position.
func NewAnimated(anim *plumber.Animation, pos plumber.Vec2) (*Sprite, error) {
	return newAnimatedSprite(KindAnimated, anim, pos, plumber.Vec2{})
}

// NewMovingAnimated returns a sprite playing anim that moves by vel pixels
// per second.
func NewMovingAnimated(anim *plumber.Animation, pos, vel plumber.Vec2) (*Sprite, error) {
	return newAnimatedSprite(KindMovingAnimated, anim, pos, vel)
}

// NewText returns a sprite rendering content with font. The content may be
// empty.
func NewText(font plumber.Font, content string, pos plumber.Vec2) (*Sprite, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	s := &Sprite{kind: KindText, position: pos, font: font, content: content}
	s.text = plumber.Sprite{Scale: plumber.One, Color: plumber.ColorWhite}
	s.props = &s.text
	logger().Debug("sprite created", zap.Stringer("kind", KindText), zap.Int("len", len(content)))
	return s, nil
}

// Kind returns the variant chosen at construction.
func (s *Sprite) Kind() Kind { return s.kind }

// Moves reports whether Update integrates the velocity.
func (s *Sprite) Moves() bool {
	return s.kind == KindMoving || s.kind == KindMovingAnimated
}

// Animates reports whether Update advances an animation.
func (s *Sprite) Animates() bool {
	return s.kind == KindAnimated || s.kind == KindMovingAnimated
}

// Position returns the sprite position in screen pixels.
func (s *Sprite) Position() plumber.Vec2 { return s.position }

// SetPosition moves the sprite to p.
func (s *Sprite) SetPosition(p plumber.Vec2) { s.position = p }

// Velocity returns the velocity in pixels per second. It is stored for every
// kind but only integrated by moving kinds.
func (s *Sprite) Velocity() plumber.Vec2 { return s.velocity }

// SetVelocity sets the velocity in pixels per second.
func (s *Sprite) SetVelocity(v plumber.Vec2) { s.velocity = v }

// Rotation returns the rotation in radians around the origin.
func (s *Sprite) Rotation() float64 { return s.props.Rotation }

// SetRotation sets the rotation in radians.
func (s *Sprite) SetRotation(r float64) { s.props.Rotation = r }

// Scale returns the scale factors. Width and Height include them.
func (s *Sprite) Scale() plumber.Vec2 { return s.props.Scale }

// SetScale sets the scale factors.
func (s *Sprite) SetScale(v plumber.Vec2) { s.props.Scale = v }

// Color returns the straight-alpha tint.
func (s *Sprite) Color() plumber.Color { return s.props.Color }

// SetColor sets the tint. White leaves the image unchanged.
func (s *Sprite) SetColor(c plumber.Color) { s.props.Color = c }

// Effects returns the flip flags.
func (s *Sprite) Effects() plumber.Effects { return s.props.Effects }

// SetEffects sets the flip flags.
func (s *Sprite) SetEffects(e plumber.Effects) { s.props.Effects = e }

// LayerDepth returns the depth used by sorted batches.
func (s *Sprite) LayerDepth() float32 { return s.props.LayerDepth }

// SetLayerDepth sets the depth used by sorted batches.
func (s *Sprite) SetLayerDepth(d float32) { s.props.LayerDepth = d }

// Origin returns the pivot in unscaled resource pixels.
func (s *Sprite) Origin() plumber.Vec2 { return s.props.Origin }

// SetOrigin sets the pivot for rotation, scale and placement.
func (s *Sprite) SetOrigin(o plumber.Vec2) { s.props.Origin = o }

// Region returns the texture region currently drawn: the fixed region for
// static and moving sprites, the current frame for animated ones, nil for
// text.
func (s *Sprite) Region() *plumber.TextureRegion {
	return s.props.Region
}

// Animation returns the engine animated sprite for animated kinds, nil
// otherwise. Use it to query or reset the current frame.
func (s *Sprite) Animation() *plumber.AnimatedSprite {
	return s.anim
}

// Content returns the text of a text sprite.
func (s *Sprite) Content() string { return s.content }

// SetContent replaces the text of a text sprite. It is ignored by other
// kinds.
func (s *Sprite) SetContent(c string) {
	if s.kind == KindText {
		s.content = c
	}
}

// Font returns the font of a text sprite.
func (s *Sprite) Font() plumber.Font { return s.font }

// SetFont replaces the font of a text sprite. A nil font is allowed: the
// sprite then measures 0x0 and draws nothing.
func (s *Sprite) SetFont(f plumber.Font) {
	if s.kind == KindText {
		s.font = f
	}
}

// Width returns the natural width of the resource times the horizontal scale.
func (s *Sprite) Width() float64 {
	if s.kind == KindText {
		w, _ := s.textSize()
		return w * s.props.Scale.X
	}
	return s.props.Width()
}

// Height returns the natural height of the resource times the vertical scale.
func (s *Sprite) Height() float64 {
	if s.kind == KindText {
		_, h := s.textSize()
		return h * s.props.Scale.Y
	}
	return s.props.Height()
}

func (s *Sprite) textSize() (float64, float64) {
	if s.font == nil || s.content == "" {
		return 0, 0
	}
	return s.font.MeasureString(s.content)
}

// Bounds returns the axis-aligned box covered by the sprite, ignoring
// rotation and flips.
func (s *Sprite) Bounds() plumber.Rect {
	sc := s.props.Scale
	o := s.props.Origin
	return plumber.Rect{
		X:      s.position.X - o.X*sc.X,
		Y:      s.position.Y - o.Y*sc.Y,
		Width:  s.Width(),
		Height: s.Height(),
	}
}

// Update integrates the velocity for moving kinds and advances the animation
// for animated kinds. It is a no-op for static and text sprites.
func (s *Sprite) Update(gt plumber.GameTime) {
	if s.Moves() {
		s.position = s.position.Add(s.velocity.Scale(gt.Seconds()))
	}
	if s.Animates() {
		s.anim.Update(gt)
	}
}

// Draw submits the sprite to batch at its position.
func (s *Sprite) Draw(batch *plumber.SpriteBatch) {
	if s.kind == KindText {
		if s.font == nil || s.content == "" {
			return
		}
		p := s.props
		batch.DrawString(s.font, s.content, s.position, p.Color, p.Rotation, p.Origin, p.Scale, p.Effects, p.LayerDepth)
		return
	}
	s.props.Draw(batch, s.position)
}

package plumber

// Sprite draws a single texture region with a transform and tint.
// Width and Height are always derived from the region and Scale.
type Sprite struct {
	Region     *TextureRegion
	Rotation   float64 // radians, clockwise
	Scale      Vec2
	Color      Color
	Effects    Effects
	LayerDepth float32 // 0 (front) .. 1 (back) under SortBackToFront
	Origin     Vec2    // pivot in region pixels, before scaling
}

// NewSprite returns a sprite over region with unit scale and a white tint.
func NewSprite(region *TextureRegion) *Sprite {
	s := &Sprite{}
	spriteDefaults(s, region)
	return s
}

// spriteDefaults sets the field values shared by sprite constructors.
func spriteDefaults(s *Sprite, region *TextureRegion) {
	s.Region = region
	s.Scale = One
	s.Color = ColorWhite
}

// Width returns the region width times the horizontal scale.
func (s *Sprite) Width() float64 {
	if s.Region == nil {
		return 0
	}
	return float64(s.Region.Width) * s.Scale.X
}

// Height returns the region height times the vertical scale.
func (s *Sprite) Height() float64 {
	if s.Region == nil {
		return 0
	}
	return float64(s.Region.Height) * s.Scale.Y
}

// CenterOrigin moves the origin to the center of the region.
func (s *Sprite) CenterOrigin() {
	if s.Region == nil {
		s.Origin = Vec2{}
		return
	}
	s.Origin = Vec2{float64(s.Region.Width) / 2, float64(s.Region.Height) / 2}
}

// Draw submits the sprite to batch at position.
func (s *Sprite) Draw(batch *SpriteBatch, position Vec2) {
	if s.Region == nil {
		return
	}
	batch.Draw(s.Region, position, s.Color, s.Rotation, s.Origin, s.Scale, s.Effects, s.LayerDepth)
}

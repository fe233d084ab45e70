package plumber

import "time"

// Animation is a timed sequence of texture regions. Each frame stays on
// screen for Delay.
type Animation struct {
	Frames []*TextureRegion
	Delay  time.Duration
}

// NewAnimation returns an animation over frames.
func NewAnimation(delay time.Duration, frames ...*TextureRegion) *Animation {
	return &Animation{Frames: frames, Delay: delay}
}

// Duration returns the length of one full loop.
func (a *Animation) Duration() time.Duration {
	return a.Delay * time.Duration(len(a.Frames))
}

// AnimatedSprite is a Sprite whose region is driven by an Animation.
// The embedded Sprite's Region always points at the current frame.
type AnimatedSprite struct {
	Sprite

	animation *Animation
	frame     int
	elapsed   time.Duration
}

// NewAnimatedSprite returns a sprite showing the first frame of anim.
// anim must not be nil.
func NewAnimatedSprite(anim *Animation) *AnimatedSprite {
	s := &AnimatedSprite{animation: anim}
	spriteDefaults(&s.Sprite, nil)
	s.syncRegion()
	return s
}

// Animation returns the animation being played.
func (s *AnimatedSprite) Animation() *Animation {
	return s.animation
}

// SetAnimation switches to anim and restarts from its first frame.
func (s *AnimatedSprite) SetAnimation(anim *Animation) {
	s.animation = anim
	s.Reset()
}

// Frame returns the index of the current frame.
func (s *AnimatedSprite) Frame() int {
	return s.frame
}

// Reset rewinds to the first frame.
func (s *AnimatedSprite) Reset() {
	s.frame = 0
	s.elapsed = 0
	s.syncRegion()
}

// Update accumulates elapsed time and advances one frame each time the
// accumulator reaches the animation delay, wrapping to the first frame.
func (s *AnimatedSprite) Update(gt GameTime) {
	a := s.animation
	if a == nil || a.Delay <= 0 || len(a.Frames) < 2 {
		return
	}
	s.elapsed += gt.Elapsed
	if s.elapsed >= a.Delay {
		s.elapsed -= a.Delay
		s.frame++
		if s.frame >= len(a.Frames) {
			s.frame = 0
		}
		s.syncRegion()
	}
}

func (s *AnimatedSprite) syncRegion() {
	if s.animation == nil || len(s.animation.Frames) == 0 {
		s.Region = nil
		return
	}
	if s.frame >= len(s.animation.Frames) {
		s.frame = 0
	}
	s.Region = s.animation.Frames[s.frame]
}

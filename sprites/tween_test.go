package sprites

import (
	"math"
	"testing"

	"github.com/phanxgames/plumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func staticAt(t *testing.T, x, y float64) *Sprite {
	t.Helper()
	s, err := NewStatic(region(8, 8), plumber.Vec2{X: x, Y: y})
	require.NoError(t, err)
	return s
}

func TestTweenPositionReachesTarget(t *testing.T) {
	s := staticAt(t, 10, 20)
	g := TweenPosition(s, plumber.Vec2{X: 100, Y: 200}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	require.True(t, g.Done)
	assert.InDelta(t, 100, s.Position().X, 0.5)
	assert.InDelta(t, 200, s.Position().Y, 0.5)
}

func TestTweenScaleReachesTarget(t *testing.T) {
	s := staticAt(t, 0, 0)
	g := TweenScale(s, plumber.Vec2{X: 2, Y: 3}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	require.True(t, g.Done)
	assert.InDelta(t, 2.0, s.Scale().X, 0.01)
	assert.InDelta(t, 3.0, s.Scale().Y, 0.01)
	assert.InDelta(t, 16.0, s.Width(), 0.1)
}

func TestTweenColorAllComponents(t *testing.T) {
	s := staticAt(t, 0, 0)
	s.SetColor(plumber.Color{R: 1, G: 0, B: 0, A: 1})
	target := plumber.Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(s, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	require.True(t, g.Done)
	c := s.Color()
	assert.InDelta(t, target.R, c.R, 0.01)
	assert.InDelta(t, target.G, c.G, 0.01)
	assert.InDelta(t, target.B, c.B, 0.01)
	assert.InDelta(t, target.A, c.A, 0.01)
}

func TestTweenAlphaInterpolates(t *testing.T) {
	s := staticAt(t, 0, 0)
	tw := TweenAlpha(s, 0.0, 1.0, ease.Linear)

	tw.Update(0.5)
	require.False(t, tw.Done, "should not be done at halfway")
	assert.InDelta(t, 0.5, s.Color().A, 0.05)

	tw.Update(0.5)
	require.True(t, tw.Done)
	assert.InDelta(t, 0.0, s.Color().A, 0.01)
}

func TestTweenRotationOnText(t *testing.T) {
	s, err := NewText(monoFont{}, "hi", plumber.Vec2{})
	require.NoError(t, err)
	tw := TweenRotation(s, math.Pi, 1.0, ease.Linear)
	tw.Update(0.5)
	tw.Update(0.5)

	require.True(t, tw.Done)
	assert.InDelta(t, math.Pi, s.Rotation(), 0.05)
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	s := staticAt(t, 0, 0)
	g := TweenPosition(s, plumber.Vec2{X: 50, Y: 50}, 0.5, ease.Linear)
	require.False(t, g.Done)

	g.Update(0.25)
	require.False(t, g.Done, "partway through")

	g.Update(0.25)
	require.True(t, g.Done)

	// Updates after completion are no-ops.
	before := s.Position()
	g.Update(0.1)
	assert.True(t, g.Done)
	assert.Equal(t, before, s.Position())
}

func BenchmarkTweenGroup_Update(b *testing.B) {
	s, _ := NewStatic(region(8, 8), plumber.Vec2{})
	g := TweenPosition(s, plumber.Vec2{X: 1000, Y: 1000}, 1e9, ease.Linear)
	b.ReportAllocs()
	for b.Loop() {
		g.Update(0.016)
	}
}

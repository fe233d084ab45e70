package plumber

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type nopScene struct{}

func (nopScene) Update(GameTime) error { return nil }
func (nopScene) Draw(*SpriteBatch)     {}

// recordScene counts calls and returns err from Update.
type recordScene struct {
	updates int
	last    GameTime
	err     error
}

func (s *recordScene) Update(gt GameTime) error {
	s.updates++
	s.last = gt
	return s.err
}

func (s *recordScene) Draw(*SpriteBatch) {}

func TestNewGameDefaults(t *testing.T) {
	g := NewGame(nopScene{}, RunConfig{})
	w, h := g.Layout(1920, 1080)
	if w != defaultWidth || h != defaultHeight {
		t.Errorf("Layout = %dx%d, want %dx%d", w, h, defaultWidth, defaultHeight)
	}
	if g.fps != nil {
		t.Error("fps overlay should be off by default")
	}
	if g.Batch() == nil {
		t.Error("Batch() = nil")
	}
}

func TestGameUpdatePassesFixedStep(t *testing.T) {
	s := &recordScene{}
	g := NewGame(s, RunConfig{TPS: 50})
	for range 3 {
		if err := g.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if s.updates != 3 {
		t.Errorf("updates = %d, want 3", s.updates)
	}
	if s.last.Elapsed != 20*time.Millisecond || s.last.Total != 60*time.Millisecond {
		t.Errorf("last GameTime = %+v, want 20ms/60ms", s.last)
	}
}

func TestGameUpdateErrQuitTerminates(t *testing.T) {
	g := NewGame(&recordScene{err: ErrQuit}, RunConfig{})
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update err = %v, want ebiten.Termination", err)
	}
}

func TestGameUpdatePropagatesSceneError(t *testing.T) {
	boom := errors.New("boom")
	g := NewGame(&recordScene{err: boom}, RunConfig{})
	if err := g.Update(); !errors.Is(err, boom) {
		t.Errorf("Update err = %v, want boom", err)
	}
}

func TestGameTestRunnerQuit(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "quit"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := &recordScene{}
	g := NewGame(s, RunConfig{TestRunner: runner})
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update err = %v, want ebiten.Termination", err)
	}
	if s.updates != 0 {
		t.Errorf("scene updated %d times after quit, want 0", s.updates)
	}
}

func TestGameTestRunnerScreenshot(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "first"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(nopScene{}, RunConfig{TestRunner: runner})
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(g.shots.queue) != 1 || g.shots.queue[0] != "first" {
		t.Errorf("queue = %v, want [first]", g.shots.queue)
	}
}

func TestGameRequestQuitFromScene(t *testing.T) {
	var g *Game
	s := &quitScene{}
	g = NewGame(s, RunConfig{})
	s.game = g
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update err = %v, want ebiten.Termination", err)
	}
}

type quitScene struct {
	game *Game
}

func (s *quitScene) Update(GameTime) error {
	s.game.RequestQuit()
	return nil
}

func (s *quitScene) Draw(*SpriteBatch) {}

func TestNewGameAppliesBlend(t *testing.T) {
	g := NewGame(nopScene{}, RunConfig{Blend: BlendAdd})
	if g.Batch().Blend != BlendAdd {
		t.Errorf("batch blend = %v, want add", g.Batch().Blend)
	}
}

package plumber

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// ErrQuit is returned from Scene.Update to end Run without an error.
var ErrQuit = errors.New("plumber: quit")

// Scene is the game content driven by Run. Update is called once per tick
// with a fixed-step GameTime; Draw is called once per frame with a batch
// already begun over the screen.
type Scene interface {
	Update(gt GameTime) error
	Draw(batch *SpriteBatch)
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the logical screen size. Defaults to 640x480.
	Width, Height int
	// TPS sets the update rate. Zero keeps ebiten.DefaultTPS.
	TPS int
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// ClearColor fills the screen before the scene draws. A zero alpha skips
	// the fill.
	ClearColor Color
	// SortMode is passed to SpriteBatch.Begin every frame.
	SortMode SortMode
	// Blend is the compositing mode of the batch handed to Scene.Draw.
	Blend BlendMode
	// TestRunner, when set, is stepped before every scene update.
	TestRunner *TestRunner
	// ScreenshotDir is where test script screenshots are written.
	// Defaults to "screenshots".
	ScreenshotDir string
	// Debug logs batch stats at Debug level after every frame.
	Debug bool
}

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// Game adapts a Scene to ebiten.Game. Run creates one; use NewGame directly
// when you need to call ebiten.RunGame yourself.
type Game struct {
	scene  Scene
	cfg    RunConfig
	clock  *Clock
	batch  *SpriteBatch
	shots  screenshotter
	fps    *fpsOverlay
	runner *TestRunner
	quit   bool
}

// NewGame returns an ebiten.Game driving scene with cfg.
func NewGame(scene Scene, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	g := &Game{
		scene:  scene,
		cfg:    cfg,
		clock:  NewClock(cfg.TPS),
		batch:  NewSpriteBatch(),
		shots:  screenshotter{dir: cfg.ScreenshotDir},
		runner: cfg.TestRunner,
	}
	g.batch.Blend = cfg.Blend
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	return g
}

// Batch returns the batch handed to Scene.Draw.
func (g *Game) Batch() *SpriteBatch {
	return g.batch
}

// Screenshot queues a capture of the next drawn frame.
func (g *Game) Screenshot(label string) {
	g.shots.add(label)
}

// RequestQuit ends the loop after the current update.
func (g *Game) RequestQuit() {
	g.quit = true
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	gt := g.clock.Tick()
	if g.runner != nil {
		g.runner.step(g)
	}
	if g.quit {
		return ebiten.Termination
	}
	if g.fps != nil {
		g.fps.update(gt)
	}
	if err := g.scene.Update(gt); err != nil {
		if errors.Is(err, ErrQuit) {
			logger.Debug("scene requested quit", zap.Duration("total", gt.Total))
			return ebiten.Termination
		}
		return err
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor.A > 0 {
		screen.Fill(g.cfg.ClearColor.toRGBA())
	}
	if err := g.batch.Begin(screen, g.cfg.SortMode); err != nil {
		logger.Warn("sprite batch left open", zap.Error(err))
		_ = g.batch.End()
		_ = g.batch.Begin(screen, g.cfg.SortMode)
	}
	g.scene.Draw(g.batch)
	if err := g.batch.End(); err != nil {
		logger.Warn("sprite batch ended by scene", zap.Error(err))
	} else if g.cfg.Debug {
		g.debugLog(g.batch.Stats())
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout implements ebiten.Game. The logical screen size is fixed.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives scene until the window is closed, the scene
// returns ErrQuit, or the test runner reaches a quit step.
func Run(scene Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if g.cfg.TPS > 0 {
		ebiten.SetTPS(g.cfg.TPS)
	}
	logger.Debug("run",
		zap.String("title", g.cfg.Title),
		zap.Int("width", g.cfg.Width),
		zap.Int("height", g.cfg.Height),
		zap.Duration("step", g.clock.Step),
	)
	return ebiten.RunGame(g)
}

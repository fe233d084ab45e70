package plumber

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is rebuilt, in seconds.
const fpsRefresh = 0.5

// fpsOverlay prints the current FPS and TPS in the top-left corner.
type fpsOverlay struct {
	sinceRefresh float64
	label        string
}

func (f *fpsOverlay) update(gt GameTime) {
	f.sinceRefresh += gt.Seconds()
	if f.label != "" && f.sinceRefresh < fpsRefresh {
		return
	}
	f.sinceRefresh = 0
	f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, f.label)
}

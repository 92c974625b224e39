package stage

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	Debug         bool
	// TPS overrides the tick rate when positive. Ebitengine defaults to 60.
	TPS int
}

// Run opens a window and runs the stage until the window closes or the
// update func returns an error.
func Run(s *Stage, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = s.cfg.Width, s.cfg.Height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	s.SetShowFPS(cfg.ShowFPS)
	s.SetDebugMode(cfg.Debug)

	log.Printf("[stickfall] stage: %dx%d window, %d TPS", w, h, ebiten.TPS())
	return ebiten.RunGame(s)
}

package stage

import (
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/stickfall"
)

// debugStats holds one tick's timings. Only populated in debug mode.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	phase      stickfall.Phase
	images     int
}

// debugLog prints timing stats to stderr.
func (s *Stage) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	if stats.drawTime > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[stickfall] draw: %v | phase: %s | images: %d\n",
			stats.drawTime, stats.phase, stats.images)
		return
	}
	var progress float64
	var rev uint64
	if s.controller != nil {
		progress = s.controller.Progress()
		rev = s.controller.Revision()
	}
	_, _ = fmt.Fprintf(os.Stderr, "[stickfall] update: %v | phase: %s | progress: %.3f | revision: %d\n",
		stats.updateTime, stats.phase, progress, rev)
}

package reveal

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-update timing and queue sizes.
// Only populated when Document.debug is true.
type debugStats struct {
	updateTime  time.Duration
	transitions int
	animations  int
	timers      int
}

// debugLog writes the stats of the last update to the package logger.
func (d *Document) debugLog() {
	if !d.debug {
		return
	}
	Logger().Debug("document update",
		zap.Duration("clock", d.now),
		zap.Duration("took", d.stats.updateTime),
		zap.Int("transitions", d.stats.transitions),
		zap.Int("animations", d.stats.animations),
		zap.Int("timers", d.stats.timers),
	)
}

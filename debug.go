package plumber

import (
	"time"

	"go.uber.org/zap"
)

// BatchStats holds timing and draw metrics for the most recent End.
type BatchStats struct {
	SortTime   time.Duration
	SubmitTime time.Duration
	Commands   int // queued draws
	Batches    int // runs of consecutive draws sharing an image or font
	TextDraws  int
}

// debugMaxCommands is the queue size above which a debug frame warns.
const debugMaxCommands = 10000

// Stats returns the metrics of the last End.
func (b *SpriteBatch) Stats() BatchStats {
	return b.stats
}

// debugLog logs the frame's batch stats. Only called when RunConfig.Debug is
// set.
func (g *Game) debugLog(stats BatchStats) {
	logger.Debug("frame",
		zap.Duration("sort", stats.SortTime),
		zap.Duration("submit", stats.SubmitTime),
		zap.Duration("total", stats.SortTime+stats.SubmitTime),
		zap.Int("commands", stats.Commands),
		zap.Int("batches", stats.Batches),
		zap.Int("text", stats.TextDraws),
	)
	if stats.Commands > debugMaxCommands {
		logger.Warn("sprite batch unusually large",
			zap.Int("commands", stats.Commands),
			zap.Int("threshold", debugMaxCommands),
		)
	}
}

// countBatches counts contiguous groups of commands drawing from the same
// image. This is how many draw calls a batching backend would issue. Every
// text draw is its own batch: Font values may be uncomparable, so fonts are
// never compared.
func countBatches(commands []drawCommand) int {
	count := 0
	for i := range commands {
		cur := &commands[i]
		if i == 0 || cur.font != nil {
			count++
			continue
		}
		prev := &commands[i-1]
		if prev.font != nil || cur.image != prev.image {
			count++
		}
	}
	return count
}

func countTextDraws(commands []drawCommand) int {
	n := 0
	for i := range commands {
		if commands[i].font != nil {
			n++
		}
	}
	return n
}

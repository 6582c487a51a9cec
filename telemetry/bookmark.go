package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCollisionBurst BookmarkType = "collision_burst"
	BookmarkSlump          BookmarkType = "slump"
	BookmarkSettled        BookmarkType = "settled"
)

// Thresholds for the detectors.
const (
	burstFactor     = 2.0  // pair collisions vs rolling average
	burstMinPairs   = 10   // ignore bursts in sparse piles
	slumpFraction   = 0.25 // mean height drop from the recent peak
	settledKinetic  = 1e-4 // mean kinetic energy of a resting pile
	settledWindows  = 5    // consecutive quiet windows
	minHistoryCheck = 3
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a grain run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	peakHeightMean float64
	quietWindows   int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < minHistoryCheck {
		historySize = minHistoryCheck
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkCollisionBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSlump(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.HeightMean > bd.peakHeightMean {
		bd.peakHeightMean = stats.HeightMean
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkCollisionBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < minHistoryCheck {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.PairCollisions
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	cur := float64(stats.PairCollisions)
	if cur > avg*burstFactor && stats.PairCollisions >= burstMinPairs {
		return &Bookmark{
			Type:        BookmarkCollisionBurst,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d pair collisions is %.1fx average (%.1f)", stats.PairCollisions, cur/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSlump(stats WindowStats) *Bookmark {
	if bd.peakHeightMean <= 0 {
		return nil
	}

	drop := 1 - stats.HeightMean/bd.peakHeightMean
	if drop > slumpFraction {
		oldPeak := bd.peakHeightMean
		// Reset so one collapse reports once.
		bd.peakHeightMean = stats.HeightMean
		return &Bookmark{
			Type:        BookmarkSlump,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Mean height fell %.0f%% from %.2f to %.2f", drop*100, oldPeak, stats.HeightMean),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Grains == 0 || stats.KineticMean >= settledKinetic {
		bd.quietWindows = 0
		return nil
	}

	bd.quietWindows++
	if bd.quietWindows == settledWindows { // trigger exactly once per quiet spell
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d grains at rest over %d windows", stats.Grains, settledWindows),
		}
	}
	return nil
}

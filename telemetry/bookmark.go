package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFoldStorm BookmarkType = "fold_storm"
	BookmarkSettled   BookmarkType = "settled"
	BookmarkStretch   BookmarkType = "stretch"
)

// StretchLimit is the link error above which a window is bookmarked.
// The solver sets every link exactly, so anything larger is a bug.
const StretchLimit = 1e-3

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting windows in the solver's history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	quietWindows int  // consecutive windows without corrections
	sawFolding   bool // corrections seen since the last settle
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFoldStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if stats.MaxStretch > StretchLimit {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkStretch,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Link error %.4g exceeds %.0e", stats.MaxStretch, StretchLimit),
		})
	}

	bd.addToHistory(stats)
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

// checkFoldStorm fires when the correction rate is more than twice the
// rolling average.
func (bd *BookmarkDetector) checkFoldStorm(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Corrections < 10 {
		return nil
	}

	var sum float64
	for _, h := range history {
		sum += h.CorrectionRate
	}
	avg := sum / float64(len(history))
	if avg == 0 || stats.CorrectionRate <= avg*2 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFoldStorm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Correction rate %.3f is %.1fx average (%.3f)", stats.CorrectionRate, stats.CorrectionRate/avg, avg),
	}
}

// checkSettled fires once when folding stops for three windows in a row.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Corrections > 0 {
		bd.sawFolding = true
		bd.quietWindows = 0
		return nil
	}
	bd.quietWindows++
	if !bd.sawFolding || bd.quietWindows != 3 {
		return nil
	}
	bd.sawFolding = false
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No fold corrections for 3 windows, max bend %.1f°", stats.BendMax),
	}
}

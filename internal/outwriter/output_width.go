package outwriter

import (
	"os"

	"github.com/huangsam/shiftfit/internal/contract"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	dayColumnWidth   = 14 // Day name with borders/padding
	hourColumnWidth  = 9  // "12:00" or a ratio plus a label initial, with padding
	totalColumnWidth = 10
)

// getTerminalWidth returns the configured width override or the detected
// terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return defaultTermWidth
	}
	return detected
}

// getHoursPerChunk returns how many hour columns fit in one table.
func getHoursPerChunk(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - dayColumnWidth - totalColumnWidth
	return max(available/hourColumnWidth, 1)
}

// chunkColumns splits n columns into [lo, hi) windows of at most size columns.
func chunkColumns(n, size int) [][2]int {
	if n == 0 {
		return [][2]int{{0, 0}}
	}
	var chunks [][2]int
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, [2]int{lo, min(lo+size, n)})
	}
	return chunks
}

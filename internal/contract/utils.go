package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/shiftfit/schema"
)

// Color variables for console output.
var (
	UnderstaffedColor = color.New(color.FgRed, color.Bold) // guests waiting on staff
	UnstaffedColor    = color.New(color.FgMagenta, color.Bold)
	OverstaffedColor  = color.New(color.FgYellow) // paying for idle hands
	BalancedColor     = color.New(color.FgGreen)
	IdleColor         = color.New(color.FgHiBlack)
)

// LabelColor returns the console color of an efficiency label.
func LabelColor(label schema.EfficiencyLabel) *color.Color {
	switch label {
	case schema.UnderstaffedLabel:
		return UnderstaffedColor
	case schema.UnstaffedLabel:
		return UnstaffedColor
	case schema.OverstaffedLabel:
		return OverstaffedColor
	case schema.BalancedLabel:
		return BalancedColor
	default:
		return IdleColor
	}
}

// GetColorLabel returns a colored efficiency label for console output.
func GetColorLabel(label schema.EfficiencyLabel) string {
	return LabelColor(label).Sprint(string(label))
}

// GetLabelInitial returns a one-letter code for a label, used in dense grids.
func GetLabelInitial(label schema.EfficiencyLabel) string {
	switch label {
	case schema.UnderstaffedLabel:
		return "U"
	case schema.UnstaffedLabel:
		return "X"
	case schema.OverstaffedLabel:
		return "O"
	case schema.BalancedLabel:
		return "B"
	default:
		return "."
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for profile caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftfit_cache.db"
	}
	return filepath.Join(homeDir, ".shiftfit_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".shiftfit_history.db"
	}
	return filepath.Join(homeDir, ".shiftfit_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseMonth accepts a month number, a full English name or a three-letter
// abbreviation. An empty string means no month filter and yields 0.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month must be between 1 and 12 (received %d)", n)
		}
		return time.Month(n), nil
	}
	name := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || (len(name) == 3 && name == full[:3]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

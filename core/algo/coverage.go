package algo

import (
	"slices"
	"strings"
	"time"

	"github.com/huangsam/shiftfit/schema"
)

type parsedShift struct {
	day   time.Weekday
	start int
	end   int
}

// BuildCoverage counts the shifts active in every hour of every day.
// When roles is non-empty only shifts with one of those roles count.
// Zero-length and unparseable shifts are dropped; a shift ending at or before
// its start crosses midnight. Columns run from the earliest start to the
// latest end inclusive, and each shift covers [start, end).
func BuildCoverage(shifts []schema.Shift, roles []string) (schema.Matrix, schema.CoverageStats) {
	stats := schema.CoverageStats{Total: len(shifts)}

	var parsed []parsedShift
	span := schema.HourRange{First: 0, Last: -1}
	for _, s := range shifts {
		if len(roles) > 0 && !slices.Contains(roles, strings.TrimSpace(s.Role)) {
			stats.RoleFiltered++
			continue
		}
		p, ok := parseShift(s)
		if !ok {
			stats.Malformed++
			continue
		}
		if p.start == p.end {
			stats.ZeroLength++
			continue
		}
		if p.end < p.start {
			p.end += 24
			stats.Overnight++
		}
		parsed = append(parsed, p)
		span = span.Union(schema.HourRange{First: p.start, Last: p.end})
	}
	stats.Kept = len(parsed)

	if span.Empty() {
		return schema.NewRangeMatrix(schema.DefaultServiceWindow), stats
	}

	m := schema.NewRangeMatrix(span)
	for _, p := range parsed {
		for h := p.start; h < p.end; h++ {
			m.Add(p.day, h, 1)
		}
	}
	return m, stats
}

// Roles lists the distinct non-empty roles of the shifts in first-seen order.
func Roles(shifts []schema.Shift) []string {
	var roles []string
	for _, s := range shifts {
		r := strings.TrimSpace(s.Role)
		if r != "" && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func parseShift(s schema.Shift) (parsedShift, bool) {
	day, err := schema.ParseWeekday(s.Day)
	if err != nil {
		return parsedShift{}, false
	}
	start, err := schema.ParseClockHour(s.Start)
	if err != nil {
		return parsedShift{}, false
	}
	end, err := schema.ParseClockHour(s.End)
	if err != nil {
		return parsedShift{}, false
	}
	return parsedShift{day: day, start: start, end: end}, true
}

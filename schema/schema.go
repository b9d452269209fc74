// Package schema has the data models shared by the demand and staffing engine.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayOrder is the row order of every matrix, Monday through Sunday.
var DayOrder = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ServiceDayStart is the first wall-clock hour of a service day.
// Earlier hours belong to the previous day's late service.
const ServiceDayStart = 7

// DefaultServiceWindow is the hour range used when no activity is observed.
var DefaultServiceWindow = HourRange{First: ServiceDayStart, Last: 24}

// DayIndex returns the row index of a weekday in DayOrder.
func DayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ParseWeekday parses an English weekday name such as "Monday" or "mon".
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) >= 3 {
		for _, d := range DayOrder {
			full := strings.ToLower(d.String())
			if name == full || name == full[:3] {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// ServiceHour maps a wall-clock hour onto the service day, so hours before
// ServiceDayStart sort after the same day's evening.
func ServiceHour(h int) int {
	if h < ServiceDayStart {
		return h + 24
	}
	return h
}

// HourLabel renders a service hour as a wall-clock "HH:00" label.
func HourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h%24)
}

// ParseClockHour returns the hour component of a "HH:MM" clock string.
// Minutes are validated but otherwise ignored.
func ParseClockHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	h, err := strconv.Atoi(hourPart)
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if hasMinutes {
		if m, err := strconv.Atoi(minutePart); err != nil || m < 0 || m > 59 {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	return h, nil
}

// HourRange is an inclusive range of service hours.
type HourRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Empty reports whether the range holds no hours.
func (r HourRange) Empty() bool {
	return r.Last < r.First
}

// Hours returns the explicit ordered hour list of the range.
func (r HourRange) Hours() []int {
	if r.Empty() {
		return nil
	}
	hours := make([]int, 0, r.Last-r.First+1)
	for h := r.First; h <= r.Last; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Union returns the smallest range covering both r and o.
func (r HourRange) Union(o HourRange) HourRange {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	return HourRange{First: min(r.First, o.First), Last: max(r.Last, o.Last)}
}

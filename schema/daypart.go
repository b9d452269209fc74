package schema

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

// Daypart is one of the four meal periods that partition the service day.
type Daypart int

// All dayparts, in service order.
const (
	Breakfast Daypart = iota // hours before 12
	Afternoon                // 12 to 14
	Evening                  // 15 to 17
	Dinner                   // 18 onwards, including after midnight
)

// Dayparts lists every daypart in service order.
var Dayparts = [4]Daypart{Breakfast, Afternoon, Evening, Dinner}

// Half-open daypart boundaries on the service hour.
const (
	afternoonStart = 12
	eveningStart   = 15
	dinnerStart    = 18
)

// String returns the forecast column name of the daypart.
func (d Daypart) String() string {
	switch d {
	case Breakfast:
		return "breakfast"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	case Dinner:
		return "dinner"
	default:
		return fmt.Sprintf("daypart(%d)", int(d))
	}
}

// ParseDaypart parses a forecast column name.
func ParseDaypart(s string) (Daypart, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range Dayparts {
		if d.String() == name {
			return d, nil
		}
	}
	return Breakfast, fmt.Errorf("unknown daypart %q", s)
}

// DaypartOf returns the daypart a service hour belongs to.
func DaypartOf(hour int) Daypart {
	switch {
	case hour < afternoonStart:
		return Breakfast
	case hour < eveningStart:
		return Afternoon
	case hour < dinnerStart:
		return Evening
	default:
		return Dinner
	}
}

// HoursIn filters hours down to those belonging to d, keeping their order.
func (d Daypart) HoursIn(hours []int) []int {
	var out []int
	for _, h := range hours {
		if DaypartOf(h) == d {
			out = append(out, h)
		}
	}
	return out
}

// DaypartTotals holds one covers figure per daypart, indexed by Daypart.
type DaypartTotals [4]float64

// Sum adds the four dayparts.
func (t DaypartTotals) Sum() float64 {
	return t[Breakfast] + t[Afternoon] + t[Evening] + t[Dinner]
}

// Forecast holds the daypart totals of each forecast day.
// Days absent from the map have no forecast.
type Forecast map[time.Weekday]DaypartTotals

// Total sums every day and daypart.
func (f Forecast) Total() float64 {
	total := 0.0
	for _, t := range f {
		total += t.Sum()
	}
	return total
}

// Clone returns a copy of the forecast.
func (f Forecast) Clone() Forecast {
	return maps.Clone(f)
}

// Shape is the within-daypart distribution of covers over hours for each day.
// Every row sums to 1, or to 0 when the daypart saw no covers that day.
type Shape struct {
	Daypart     Daypart      `json:"daypart"`
	Hours       []int        `json:"hours"`
	Proportions [7][]float64 `json:"proportions"`
}

// Row returns the proportions of a day.
func (s Shape) Row(day time.Weekday) []float64 {
	return s.Proportions[DayIndex(day)]
}

// Matrix returns the proportions as a matrix over the shape's hours.
func (s Shape) Matrix() Matrix {
	m := NewMatrix(s.Hours)
	for i := range s.Proportions {
		copy(m.Values[i], s.Proportions[i])
	}
	return m
}

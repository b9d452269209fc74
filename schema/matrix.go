package schema

import (
	"math"
	"slices"
	"time"
)

// Matrix is a day × hour grid. Rows follow DayOrder and columns follow Hours.
type Matrix struct {
	Hours  []int        `json:"hours"`
	Values [7][]float64 `json:"values"`
}

// NewMatrix allocates a zeroed matrix over the given hour columns.
func NewMatrix(hours []int) Matrix {
	m := Matrix{Hours: slices.Clone(hours)}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(hours))
	}
	return m
}

// NewRangeMatrix allocates a zeroed matrix over a contiguous hour range.
func NewRangeMatrix(r HourRange) Matrix {
	return NewMatrix(r.Hours())
}

// Col returns the column index of an hour.
func (m Matrix) Col(hour int) (int, bool) {
	idx := slices.Index(m.Hours, hour)
	return idx, idx >= 0
}

// At returns the value of a cell, or 0 if the hour is not a column.
func (m Matrix) At(day time.Weekday, hour int) float64 {
	col, ok := m.Col(hour)
	if !ok {
		return 0
	}
	return m.Values[DayIndex(day)][col]
}

// Set assigns a cell. Hours outside the columns are ignored.
func (m *Matrix) Set(day time.Weekday, hour int, v float64) {
	if col, ok := m.Col(hour); ok {
		m.Values[DayIndex(day)][col] = v
	}
}

// Add increments a cell. Hours outside the columns are ignored.
func (m *Matrix) Add(day time.Weekday, hour int, v float64) {
	if col, ok := m.Col(hour); ok {
		m.Values[DayIndex(day)][col] += v
	}
}

// Row returns the values of a day.
func (m Matrix) Row(day time.Weekday) []float64 {
	return m.Values[DayIndex(day)]
}

// RowTotal sums one day.
func (m Matrix) RowTotal(day time.Weekday) float64 {
	total := 0.0
	for _, v := range m.Row(day) {
		total += v
	}
	return total
}

// Total sums every cell.
func (m Matrix) Total() float64 {
	total := 0.0
	for _, d := range DayOrder {
		total += m.RowTotal(d)
	}
	return total
}

// Labels returns the "HH:00" label of every column.
func (m Matrix) Labels() []string {
	labels := make([]string, len(m.Hours))
	for i, h := range m.Hours {
		labels[i] = HourLabel(h)
	}
	return labels
}

// Range returns the span from the first to the last column.
func (m Matrix) Range() HourRange {
	if len(m.Hours) == 0 {
		return HourRange{First: 0, Last: -1}
	}
	return HourRange{First: slices.Min(m.Hours), Last: slices.Max(m.Hours)}
}

// Widen re-grids the matrix over r, filling new cells with 0.
// Columns outside r are dropped.
func (m Matrix) Widen(r HourRange) Matrix {
	out := NewRangeMatrix(r)
	for i := range m.Values {
		for j, h := range m.Hours {
			if col, ok := out.Col(h); ok {
				out.Values[i][col] = m.Values[i][j]
			}
		}
	}
	return out
}

// Round rounds every cell to the nearest whole number, halves to even.
func (m Matrix) Round() Matrix {
	out := m.Clone()
	for i := range out.Values {
		for j, v := range out.Values[i] {
			out.Values[i][j] = math.RoundToEven(v)
		}
	}
	return out
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := Matrix{Hours: slices.Clone(m.Hours)}
	for i := range m.Values {
		out.Values[i] = slices.Clone(m.Values[i])
	}
	return out
}

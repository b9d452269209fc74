package agg

import (
	"slices"

	"github.com/huangsam/shiftfit/schema"
)

// AggregateOptions controls how weekly matrices are averaged.
type AggregateOptions struct {
	// ZeroFillAbsent averages every cell over all weeks, counting a week with
	// no checks for that day and hour as zero covers.
	ZeroFillAbsent bool
}

type cellKey struct {
	day  int
	hour int
}

// DistinctWeeks returns the sorted ISO weeks present in txns.
func DistinctWeeks(txns []schema.Transaction) []schema.ISOWeek {
	seen := make(map[schema.ISOWeek]struct{})
	var weeks []schema.ISOWeek
	for _, t := range txns {
		w := schema.ISOWeek{Year: t.Year, Week: t.Week}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		weeks = append(weeks, w)
	}
	slices.SortFunc(weeks, func(a, b schema.ISOWeek) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Week - b.Week
	})
	return weeks
}

// AggregateWeeks sums guests by day and hour within each of the given weeks and
// averages the weekly sums cell by cell. By default a cell is averaged only over
// the weeks that saw checks for it. Columns span the observed hours; with no
// observations the matrix is all zeros over the default service window.
func AggregateWeeks(txns []schema.Transaction, weeks []schema.ISOWeek, opts AggregateOptions) schema.Matrix {
	wanted := make(map[schema.ISOWeek]struct{}, len(weeks))
	var order []schema.ISOWeek
	for _, w := range weeks {
		if _, dup := wanted[w]; !dup {
			wanted[w] = struct{}{}
			order = append(order, w)
		}
	}

	perWeek := make(map[schema.ISOWeek]map[cellKey]float64)
	observed := schema.HourRange{First: 0, Last: -1}
	for _, t := range txns {
		w := schema.ISOWeek{Year: t.Year, Week: t.Week}
		if _, ok := wanted[w]; !ok {
			continue
		}
		cells, ok := perWeek[w]
		if !ok {
			cells = make(map[cellKey]float64)
			perWeek[w] = cells
		}
		cells[cellKey{day: schema.DayIndex(t.Day), hour: t.Hour}] += t.Guests
		observed = observed.Union(schema.HourRange{First: t.Hour, Last: t.Hour})
	}

	if observed.Empty() {
		return schema.NewRangeMatrix(schema.DefaultServiceWindow)
	}

	m := schema.NewRangeMatrix(observed)
	for row := range m.Values {
		for col, hour := range m.Hours {
			key := cellKey{day: row, hour: hour}
			sum, contributors := 0.0, 0
			for _, w := range order {
				if v, ok := perWeek[w][key]; ok {
					sum += v
					contributors++
				}
			}
			if opts.ZeroFillAbsent {
				contributors = len(order)
			}
			if contributors > 0 {
				m.Values[row][col] = sum / float64(contributors)
			}
		}
	}
	return m
}

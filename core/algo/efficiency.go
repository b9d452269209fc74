package algo

import (
	"slices"

	"github.com/huangsam/shiftfit/schema"
)

// DefaultThresholds is the balanced band of covers per staff member.
var DefaultThresholds = schema.EfficiencyThresholds{Low: 2, High: 6}

// ToServiceHours moves wall-clock columns before ServiceDayStart to the end of
// the service day. Columns landing on the same hour are summed.
func ToServiceHours(m schema.Matrix) schema.Matrix {
	if !slices.ContainsFunc(m.Hours, func(h int) bool { return h < schema.ServiceDayStart }) {
		return m.Clone()
	}
	span := schema.HourRange{First: 0, Last: -1}
	for _, h := range m.Hours {
		s := schema.ServiceHour(h)
		span = span.Union(schema.HourRange{First: s, Last: s})
	}
	out := schema.NewRangeMatrix(span)
	for _, day := range schema.DayOrder {
		for j, h := range m.Hours {
			out.Add(day, schema.ServiceHour(h), m.Row(day)[j])
		}
	}
	return out
}

// Align widens both matrices to the union of their hour ranges.
func Align(a, b schema.Matrix) (schema.Matrix, schema.Matrix) {
	r := a.Range().Union(b.Range())
	if r.Empty() {
		r = schema.DefaultServiceWindow
	}
	return a.Widen(r), b.Widen(r)
}

// Label classifies one cell from its demand, staffing and thresholds.
func Label(demand, staff float64, t schema.EfficiencyThresholds) schema.EfficiencyLabel {
	switch {
	case demand <= 0:
		return schema.IdleLabel
	case staff <= 0:
		return schema.UnstaffedLabel
	}
	ratio := demand / staff
	switch {
	case ratio < t.Low:
		return schema.OverstaffedLabel
	case ratio > t.High:
		return schema.UnderstaffedLabel
	default:
		return schema.BalancedLabel
	}
}

// Efficiency divides demand by staffing hour by hour. Staffing is first moved
// onto service hours, then both matrices are aligned. Cells without staff
// get a ratio of 0.
func Efficiency(demand, staffing schema.Matrix, t schema.EfficiencyThresholds) schema.EfficiencyResult {
	d, s := Align(demand, ToServiceHours(staffing))
	ratio := schema.NewMatrix(d.Hours)

	res := schema.EfficiencyResult{Demand: d, Staffing: s}
	res.Summary.Counts = map[schema.EfficiencyLabel]int{}

	var sum float64
	var staffed int
	for i, day := range schema.DayOrder {
		labels := make([]schema.EfficiencyLabel, len(d.Hours))
		for j, h := range d.Hours {
			dv, sv := d.Values[i][j], s.Values[i][j]
			if sv > 0 {
				r := dv / sv
				ratio.Values[i][j] = r
				sum += r
				staffed++
				if r > res.Summary.PeakRatio {
					res.Summary.PeakRatio = r
					res.Summary.PeakDay = day.String()
					res.Summary.PeakHour = schema.HourLabel(h)
				}
			}
			labels[j] = Label(dv, sv, t)
			res.Summary.Counts[labels[j]]++
		}
		res.Labels[i] = labels
	}
	if staffed > 0 {
		res.Summary.MeanRatio = sum / float64(staffed)
	}
	res.Ratio = ratio
	return res
}

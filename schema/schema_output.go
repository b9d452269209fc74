package schema

import (
	"time"
)

// Profile is the typical week learned from a store's transaction history.
// It is the only artifact worth caching between runs.
type Profile struct {
	Store   string     `json:"store"`
	Month   time.Month `json:"month"`
	Weeks   []ISOWeek  `json:"weeks"`
	History Matrix     `json:"history"`
	Stats   CleanStats `json:"stats"`
}

// ProfileResult is a learned profile plus, on request, its daypart shapes.
type ProfileResult struct {
	Profile
	Shapes []Shape `json:"shapes,omitempty"`
	Cached bool    `json:"cached"`
}

// ForecastRow is the serializable form of one forecast day.
type ForecastRow struct {
	Day       string  `json:"day"`
	Breakfast float64 `json:"breakfast"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
	Dinner    float64 `json:"dinner"`
}

// ForecastRows flattens a forecast in DayOrder. Missing days are skipped.
func ForecastRows(f Forecast) []ForecastRow {
	var rows []ForecastRow
	for _, d := range DayOrder {
		t, ok := f[d]
		if !ok {
			continue
		}
		rows = append(rows, ForecastRow{
			Day:       d.String(),
			Breakfast: t[Breakfast],
			Afternoon: t[Afternoon],
			Evening:   t[Evening],
			Dinner:    t[Dinner],
		})
	}
	return rows
}

// DemandResult is the hourly demand forecast of one scenario.
type DemandResult struct {
	Scenario       string        `json:"scenario"`
	Store          string        `json:"store"`
	Month          time.Month    `json:"month"`
	WeeksUsed      int           `json:"weeks_used"`
	DeliveryCovers int64         `json:"delivery_covers"`
	Forecast       []ForecastRow `json:"forecast"`
	Raw            Matrix        `json:"-"`
	Demand         Matrix        `json:"demand"`
}

// CoverageResult is the hourly staffing coverage of one scenario.
type CoverageResult struct {
	Scenario string        `json:"scenario"`
	Roles    []string      `json:"roles,omitempty"`
	Staffing Matrix        `json:"staffing"`
	Stats    CoverageStats `json:"stats"`
}

// EfficiencyThresholds bound the covers-per-staff ratio considered balanced.
type EfficiencyThresholds struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// EfficiencySummary aggregates the cells of an efficiency matrix.
type EfficiencySummary struct {
	Counts    map[EfficiencyLabel]int `json:"counts"`
	PeakRatio float64                 `json:"peak_ratio"`
	PeakDay   string                  `json:"peak_day,omitempty"`
	PeakHour  string                  `json:"peak_hour,omitempty"`
	MeanRatio float64                 `json:"mean_ratio"`
}

// EfficiencyResult compares the demand and staffing of one scenario.
// All three matrices share the same hour columns.
type EfficiencyResult struct {
	Scenario string               `json:"scenario"`
	Demand   Matrix               `json:"demand"`
	Staffing Matrix               `json:"staffing"`
	Ratio    Matrix               `json:"ratio"`
	Labels   [7][]EfficiencyLabel `json:"labels"`
	Summary  EfficiencySummary    `json:"summary"`
}

// MatrixRowView is one day of a matrix in a render-friendly form.
type MatrixRowView struct {
	Day    string    `json:"day"`
	Values []float64 `json:"values"`
	Total  float64   `json:"total"`
}

// MatrixView is a labeled matrix for JSON and MCP consumers.
type MatrixView struct {
	Kind     MatrixKind      `json:"kind"`
	Scenario string          `json:"scenario,omitempty"`
	Hours    []string        `json:"hours"`
	Rows     []MatrixRowView `json:"rows"`
}

// View labels a matrix for rendering.
func (m Matrix) View(kind MatrixKind, scenario string) MatrixView {
	view := MatrixView{Kind: kind, Scenario: scenario, Hours: m.Labels()}
	for _, d := range DayOrder {
		view.Rows = append(view.Rows, MatrixRowView{
			Day:    d.String(),
			Values: m.Row(d),
			Total:  m.RowTotal(d),
		})
	}
	return view
}

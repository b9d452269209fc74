package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     string           `json:"last_run_id,omitempty"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord is one row of the run history table.
type RunRecord struct {
	RunID         string     `json:"run_id"`
	Command       string     `json:"command"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	RunDurationMs *int64     `json:"run_duration_ms,omitempty"`
	ScenarioCount int        `json:"scenario_count"`
	ConfigParams  string     `json:"config_params"`
}

// ScenarioRecord is the persisted summary of one scenario within a run.
type ScenarioRecord struct {
	RunID             string  `json:"run_id"`
	Scenario          string  `json:"scenario"`
	DemandTotal       float64 `json:"demand_total"`
	StaffingTotal     float64 `json:"staffing_total"`
	PeakRatio         float64 `json:"peak_ratio"`
	PeakDay           string  `json:"peak_day"`
	PeakHour          string  `json:"peak_hour"`
	MeanRatio         float64 `json:"mean_ratio"`
	UnderstaffedHours int     `json:"understaffed_hours"`
	OverstaffedHours  int     `json:"overstaffed_hours"`
	BalancedHours     int     `json:"balanced_hours"`
	UnstaffedHours    int     `json:"unstaffed_hours"`
}

// NewScenarioRecord summarizes an efficiency result for the history store.
func NewScenarioRecord(runID string, res EfficiencyResult) ScenarioRecord {
	return ScenarioRecord{
		RunID:             runID,
		Scenario:          res.Scenario,
		DemandTotal:       res.Demand.Total(),
		StaffingTotal:     res.Staffing.Total(),
		PeakRatio:         res.Summary.PeakRatio,
		PeakDay:           res.Summary.PeakDay,
		PeakHour:          res.Summary.PeakHour,
		MeanRatio:         res.Summary.MeanRatio,
		UnderstaffedHours: res.Summary.Counts[UnderstaffedLabel],
		OverstaffedHours:  res.Summary.Counts[OverstaffedLabel],
		BalancedHours:     res.Summary.Counts[BalancedLabel],
		UnstaffedHours:    res.Summary.Counts[UnstaffedLabel],
	}
}

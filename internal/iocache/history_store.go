package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
)

// Table names for run history.
const (
	runsTable      = "shiftfit_runs"
	scenariosTable = "shiftfit_scenario_results"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	for _, query := range []string{getCreateRunsQuery(backend), getCreateScenariosQuery(backend)} {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// getCreateRunsQuery returns the CREATE TABLE query for shiftfit_runs.
// Times are stored as unix milliseconds on every backend.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id VARCHAR(64) PRIMARY KEY,
			command VARCHAR(64) NOT NULL,
			start_time BIGINT NOT NULL,
			end_time BIGINT,
			run_duration_ms BIGINT,
			scenario_count INTEGER NOT NULL DEFAULT 0,
			config_params TEXT
		)
	`, quoteTableName(runsTable, backend))
}

// getCreateScenariosQuery returns the CREATE TABLE query for shiftfit_scenario_results.
func getCreateScenariosQuery(backend schema.DatabaseBackend) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id VARCHAR(64) NOT NULL,
			scenario VARCHAR(255) NOT NULL,
			demand_total DOUBLE PRECISION NOT NULL,
			staffing_total DOUBLE PRECISION NOT NULL,
			peak_ratio DOUBLE PRECISION NOT NULL,
			peak_day VARCHAR(16),
			peak_hour VARCHAR(8),
			mean_ratio DOUBLE PRECISION NOT NULL,
			understaffed_hours INTEGER NOT NULL,
			overstaffed_hours INTEGER NOT NULL,
			balanced_hours INTEGER NOT NULL,
			unstaffed_hours INTEGER NOT NULL,
			PRIMARY KEY (run_id, scenario)
		)
	`, quoteTableName(scenariosTable, backend))
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun inserts a new run row.
func (hs *HistoryStoreImpl) BeginRun(runID, command string, startTime time.Time, configParams map[string]any) error {
	if hs.disabled() {
		return nil
	}

	params, err := json.Marshal(configParams)
	if err != nil {
		return fmt.Errorf("failed to marshal config params: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, command, start_time, scenario_count, config_params) VALUES (%s)`,
		quoteTableName(runsTable, hs.backend), getPlaceholders(hs.backend, 5))
	if _, err := hs.db.Exec(query, runID, command, startTime.UnixMilli(), 0, string(params)); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", runID, err)
	}
	return nil
}

// EndRun records the completion time, duration and scenario count of a run.
func (hs *HistoryStoreImpl) EndRun(runID string, endTime time.Time, scenarios int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	var startMs int64
	selectQuery := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, getPlaceholder(hs.backend, 1))
	if err := hs.db.QueryRow(selectQuery, runID).Scan(&startMs); err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}

	endMs := endTime.UnixMilli()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, scenario_count = %s WHERE run_id = %s`,
		quotedTableName,
		getPlaceholder(hs.backend, 1), getPlaceholder(hs.backend, 2),
		getPlaceholder(hs.backend, 3), getPlaceholder(hs.backend, 4))
	if _, err := hs.db.Exec(updateQuery, endMs, endMs-startMs, scenarios, runID); err != nil {
		return fmt.Errorf("failed to update run %s: %w", runID, err)
	}
	return nil
}

// RecordScenario stores one scenario summary.
func (hs *HistoryStoreImpl) RecordScenario(r schema.ScenarioRecord) error {
	if hs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, scenario, demand_total, staffing_total, peak_ratio, peak_day, peak_hour,
		                mean_ratio, understaffed_hours, overstaffed_hours, balanced_hours, unstaffed_hours)
		VALUES (%s)
	`, quoteTableName(scenariosTable, hs.backend), getPlaceholders(hs.backend, 12))
	_, err := hs.db.Exec(query,
		r.RunID, r.Scenario, r.DemandTotal, r.StaffingTotal, r.PeakRatio, r.PeakDay, r.PeakHour,
		r.MeanRatio, r.UnderstaffedHours, r.OverstaffedHours, r.BalancedHours, r.UnstaffedHours,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scenario %q: %w", r.Scenario, err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: map[string]int64{},
	}
	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to count runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastMs, oldestMs int64
		rangeQuery := fmt.Sprintf("SELECT MAX(start_time), MIN(start_time) FROM %s", quotedRuns)
		if err := hs.db.QueryRow(rangeQuery).Scan(&lastMs, &oldestMs); err != nil {
			return status, fmt.Errorf("failed to get run times: %w", err)
		}
		status.LastRunTime = time.UnixMilli(lastMs)
		status.OldestRunTime = time.UnixMilli(oldestMs)

		lastQuery := fmt.Sprintf("SELECT run_id FROM %s ORDER BY start_time DESC LIMIT 1", quotedRuns)
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRunID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return status, fmt.Errorf("failed to get last run: %w", err)
		}
	}

	for _, table := range []string{runsTable, scenariosTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns returns every recorded run ordered by start time.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, command, start_time, end_time, run_duration_ms, scenario_count, config_params
		FROM %s ORDER BY start_time, run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RunRecord
	for rows.Next() {
		var (
			rec      schema.RunRecord
			startMs  int64
			endMs    sql.NullInt64
			duration sql.NullInt64
			params   sql.NullString
		)
		if err := rows.Scan(&rec.RunID, &rec.Command, &startMs, &endMs, &duration, &rec.ScenarioCount, &params); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.StartTime = time.UnixMilli(startMs)
		if endMs.Valid {
			end := time.UnixMilli(endMs.Int64)
			rec.EndTime = &end
		}
		if duration.Valid {
			d := duration.Int64
			rec.RunDurationMs = &d
		}
		rec.ConfigParams = params.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAllScenarios returns every recorded scenario summary.
func (hs *HistoryStoreImpl) GetAllScenarios() ([]schema.ScenarioRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, scenario, demand_total, staffing_total, peak_ratio, peak_day, peak_hour,
		mean_ratio, understaffed_hours, overstaffed_hours, balanced_hours, unstaffed_hours
		FROM %s ORDER BY run_id, scenario`, quoteTableName(scenariosTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ScenarioRecord
	for rows.Next() {
		var (
			r        schema.ScenarioRecord
			peakDay  sql.NullString
			peakHour sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.Scenario, &r.DemandTotal, &r.StaffingTotal, &r.PeakRatio, &peakDay, &peakHour,
			&r.MeanRatio, &r.UnderstaffedHours, &r.OverstaffedHours, &r.BalancedHours, &r.UnstaffedHours); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		r.PeakDay, r.PeakHour = peakDay.String, peakHour.String
		records = append(records, r)
	}
	return records, rows.Err()
}

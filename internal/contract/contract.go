// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/shiftfit/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetProfileStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore records engine runs and the per-scenario efficiency summaries.
type HistoryStore interface {
	// BeginRun records the start of a run identified by runID.
	BeginRun(runID, command string, startTime time.Time, configParams map[string]any) error

	// EndRun stamps the completion time and the number of scenarios evaluated.
	EndRun(runID string, endTime time.Time, scenarios int) error

	// RecordScenario stores the summary of one scenario.
	RecordScenario(record schema.ScenarioRecord) error

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllScenarios returns every recorded scenario summary.
	GetAllScenarios() ([]schema.ScenarioRecord, error)

	// Close closes the underlying connection.
	Close() error
}

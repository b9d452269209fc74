package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// MatrixKind names the quantity a matrix holds.
	MatrixKind string

	// EfficiencyLabel classifies a covers-per-staff ratio.
	EfficiencyLabel string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All matrix kinds produced by the engine.
const (
	HistoryMatrix    MatrixKind = "history"    // typical-week covers learned from transactions
	DemandMatrix     MatrixKind = "demand"     // forecast covers spread across hours
	StaffingMatrix   MatrixKind = "staffing"   // concurrently active shifts
	EfficiencyMatrix MatrixKind = "efficiency" // demand divided by staffing
)

// All efficiency labels.
const (
	IdleLabel         EfficiencyLabel = "Idle"
	OverstaffedLabel  EfficiencyLabel = "Overstaffed"
	BalancedLabel     EfficiencyLabel = "Balanced"
	UnderstaffedLabel EfficiencyLabel = "Understaffed"
	UnstaffedLabel    EfficiencyLabel = "Unstaffed"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

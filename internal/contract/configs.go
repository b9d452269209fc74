package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/shiftfit/schema"
	"github.com/shopspring/decimal"
)

// Default values for configuration.
const (
	DefaultPrecision      = 1
	MaxPrecision          = 3
	DefaultGuestCap       = 25.0
	DefaultSpendPerCover  = 30.0
	DefaultSpendPerHead   = "38.99"
	DefaultThresholdLow   = 2.0
	DefaultThresholdHigh  = 6.0
	DefaultScenarioName   = "default"
	ProfileCacheStaleness = 30 * 24 * time.Hour
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ThresholdsRawInput holds the covers-per-staff band from the YAML config file.
type ThresholdsRawInput struct {
	Low  *float64 `mapstructure:"low"`
	High *float64 `mapstructure:"high"`
}

// ScenarioRawInput is one scenario entry from the YAML config file.
type ScenarioRawInput struct {
	Name     string `mapstructure:"name"`
	Forecast string `mapstructure:"forecast"`
	Shifts   string `mapstructure:"shifts"`
	Tier     string `mapstructure:"tier"`
}

// ScenarioConfig pairs a demand forecast with the rota planned for it.
type ScenarioConfig struct {
	Name     string `yaml:"name" json:"name"`
	Forecast string `yaml:"forecast" json:"forecast"`
	Shifts   string `yaml:"shifts,omitempty" json:"shifts,omitempty"`
	Tier     string `yaml:"tier,omitempty" json:"tier,omitempty"`
}

// Config holds the runtime configuration for the engine.
// This struct remains the "final, validated" config.
type Config struct {
	TransactionsFile string     `yaml:"transactions"`
	ForecastFile     string     `yaml:"forecast"`
	ShiftsFile       string     `yaml:"shifts"`
	DeliveryFile     string     `yaml:"delivery"`
	Store            string     `yaml:"store"`
	Month            time.Month `yaml:"month"`

	Tier         string          `yaml:"tier"`
	WithDelivery bool            `yaml:"with-delivery"`
	SpendPerHead decimal.Decimal `yaml:"spend-per-head"`
	Roles        []string        `yaml:"roles"`

	GuestCap          float64 `yaml:"guest-cap"`
	SpendPerCover     float64 `yaml:"spend-per-cover"`
	AbsentWeeksAsZero bool    `yaml:"absent-weeks-as-zero"`

	Thresholds schema.EfficiencyThresholds `yaml:"thresholds"`
	Scenarios  []ScenarioConfig            `yaml:"scenarios"`

	ShowShapes bool              `yaml:"shapes"`
	Precision  int               `yaml:"precision"`
	Output     schema.OutputMode `yaml:"output"`
	OutputFile string            `yaml:"output-file"`
	Width      int               `yaml:"width"` // Terminal width override (0 = auto-detect)
	UseColors  bool              `yaml:"color"`
	Verbose    bool              `yaml:"verbose"`

	CacheBackend   schema.DatabaseBackend `yaml:"cache-backend"`
	CacheDBConnect string                 `yaml:"-"` // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend `yaml:"history-backend"`
	HistoryDBConnect string                 `yaml:"-"` // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Input tables ---
	Transactions string `mapstructure:"transactions"`
	Forecast     string `mapstructure:"forecast"`
	Shifts       string `mapstructure:"shifts"`
	Delivery     string `mapstructure:"delivery"`

	// --- Cleaning and profile ---
	Store             string  `mapstructure:"store"`
	Month             string  `mapstructure:"month"`
	GuestCap          float64 `mapstructure:"guest-cap"`
	SpendPerCover     float64 `mapstructure:"spend-per-cover"`
	AbsentWeeksAsZero bool    `mapstructure:"absent-weeks-as-zero"`
	Shapes            bool    `mapstructure:"shapes"`

	// --- Demand, coverage and efficiency ---
	Tier          string             `mapstructure:"tier"`
	WithDelivery  bool               `mapstructure:"with-delivery"`
	SpendPerHead  string             `mapstructure:"spend-per-head"`
	Roles         []string           `mapstructure:"roles"`
	ThresholdsStr string             `mapstructure:"thresholds-override"`
	Thresholds    ThresholdsRawInput `mapstructure:"thresholds"`
	Scenarios     []ScenarioRawInput `mapstructure:"scenarios"`

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Roles != nil {
		clone.Roles = append([]string(nil), c.Roles...)
	}
	if c.Scenarios != nil {
		clone.Scenarios = append([]ScenarioConfig(nil), c.Scenarios...)
	}
	return &clone
}

// ResolveScenarios returns the configured scenarios, or a single scenario
// built from the forecast, shifts and tier settings when none are configured.
func (c *Config) ResolveScenarios() []ScenarioConfig {
	if len(c.Scenarios) > 0 {
		return c.Scenarios
	}
	name := c.Tier
	if name == "" {
		name = DefaultScenarioName
	}
	return []ScenarioConfig{{Name: name, Forecast: c.ForecastFile, Shifts: c.ShiftsFile, Tier: c.Tier}}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCleaning(cfg, input); err != nil {
		return err
	}
	if err := processDelivery(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processScenarios(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Cache clearing deletes the SQLite file, so the two stores must not share one.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the input and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TransactionsFile = strings.TrimSpace(input.Transactions)
	cfg.ForecastFile = strings.TrimSpace(input.Forecast)
	cfg.ShiftsFile = strings.TrimSpace(input.Shifts)
	cfg.DeliveryFile = strings.TrimSpace(input.Delivery)
	cfg.Store = strings.TrimSpace(input.Store)
	cfg.Tier = strings.ToLower(strings.TrimSpace(input.Tier))
	cfg.ShowShapes = input.Shapes
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	month, err := ParseMonth(input.Month)
	if err != nil {
		return fmt.Errorf("invalid --month value: %w", err)
	}
	cfg.Month = month

	cfg.Roles = nil
	for _, r := range input.Roles {
		cfg.Roles = append(cfg.Roles, SplitList(r)...)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processCleaning validates the de-spiking settings of the transaction cleaner.
func processCleaning(cfg *Config, input *ConfigRawInput) error {
	if input.GuestCap <= 0 {
		return fmt.Errorf("guest-cap must be greater than 0 (received %g)", input.GuestCap)
	}
	if input.SpendPerCover <= 0 {
		return fmt.Errorf("spend-per-cover must be greater than 0 (received %g)", input.SpendPerCover)
	}
	cfg.GuestCap = input.GuestCap
	cfg.SpendPerCover = input.SpendPerCover
	cfg.AbsentWeeksAsZero = input.AbsentWeeksAsZero
	return nil
}

// processDelivery parses the delivery revenue settings.
func processDelivery(cfg *Config, input *ConfigRawInput) error {
	cfg.WithDelivery = input.WithDelivery

	raw := strings.TrimSpace(input.SpendPerHead)
	if raw == "" {
		raw = DefaultSpendPerHead
	}
	spend, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid spend-per-head %q: %w", input.SpendPerHead, err)
	}
	if !spend.IsPositive() {
		return fmt.Errorf("spend-per-head must be greater than 0 (received %s)", spend)
	}
	cfg.SpendPerHead = spend

	if cfg.WithDelivery && cfg.DeliveryFile == "" {
		return fmt.Errorf("--delivery is required when --with-delivery is set")
	}
	return nil
}

// processThresholds builds the covers-per-staff band. Defaults come first,
// then the config file, then the --thresholds-override flag.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	t := schema.EfficiencyThresholds{Low: DefaultThresholdLow, High: DefaultThresholdHigh}

	if input.Thresholds.Low != nil {
		t.Low = *input.Thresholds.Low
	}
	if input.Thresholds.High != nil {
		t.High = *input.Thresholds.High
	}

	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr, t)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		t = parsed
	}

	if t.Low < 0 || t.High < t.Low {
		return fmt.Errorf("thresholds must satisfy 0 <= low <= high (received low=%.2f high=%.2f)", t.Low, t.High)
	}
	cfg.Thresholds = t
	return nil
}

// processScenarios validates the scenarios listed in the config file.
func processScenarios(cfg *Config, input *ConfigRawInput) error {
	cfg.Scenarios = nil
	seen := make(map[string]struct{}, len(input.Scenarios))
	for i, raw := range input.Scenarios {
		sc := ScenarioConfig{
			Name:     strings.TrimSpace(raw.Name),
			Forecast: strings.TrimSpace(raw.Forecast),
			Shifts:   strings.TrimSpace(raw.Shifts),
			Tier:     strings.ToLower(strings.TrimSpace(raw.Tier)),
		}
		if sc.Name == "" {
			sc.Name = sc.Tier
		}
		if sc.Name == "" {
			return fmt.Errorf("scenario %d needs a name or a tier", i+1)
		}
		if _, dup := seen[sc.Name]; dup {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = struct{}{}
		if sc.Forecast == "" {
			return fmt.Errorf("scenario %q has no forecast file", sc.Name)
		}
		cfg.Scenarios = append(cfg.Scenarios, sc)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseThresholdsString parses a string like "low:2,high:6" on top of base.
func parseThresholdsString(s string, base schema.EfficiencyThresholds) (schema.EfficiencyThresholds, error) {
	out := base
	for _, pair := range SplitList(s) {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return base, fmt.Errorf("invalid threshold pair %q (expected key:value)", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return base, fmt.Errorf("invalid threshold value %q: %w", value, err)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "low":
			out.Low = v
		case "high":
			out.High = v
		default:
			return base, fmt.Errorf("unknown threshold %q (expected low or high)", key)
		}
	}
	return out, nil
}

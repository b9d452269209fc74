package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/iocache"
	"github.com/huangsam/shiftfit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup(open bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	if !open {
		return nil
	}
	// No history tracking for cache commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheDBFilePath returns the SQLite file backing the profile cache.
func cacheDBFilePath() string {
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.CacheDBConnect != "" {
		return cfg.CacheDBConnect
	}
	return contract.GetCacheDBFilePath()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup. This skips input table validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the learned profile cache",
	Long: `Manage the cache of learned typical weeks.

Shiftfit caches each profile keyed on the contents of the transactions file and
the cleaning options, so repeated forecasts skip parsing and aggregation.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached profiles

Examples:
  # Check cache status
  shiftfit cache status

  # Clear cache after correcting the transaction export
  shiftfit cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached profiles",
	Long: `Delete all cached profiles from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  shiftfit cache clear

  # Clear MySQL cache (set connection string via env variable)
  SHIFTFIT_CACHE_BACKEND=mysql SHIFTFIT_CACHE_DB_CONNECT="..." shiftfit cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return cacheSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the profile cache.

Displays:
- Backend type and connection status
- Total number of cached profiles
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  shiftfit cache status`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return cacheSetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetProfileStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

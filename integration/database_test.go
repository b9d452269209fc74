//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseBackend runs the cache and history commands against one database.
func exerciseBackend(t *testing.T, backend, connStr string) {
	t.Setenv("SHIFTFIT_CACHE_BACKEND", backend)
	t.Setenv("SHIFTFIT_CACHE_DB_CONNECT", connStr)
	t.Setenv("SHIFTFIT_HISTORY_BACKEND", backend)
	t.Setenv("SHIFTFIT_HISTORY_DB_CONNECT", connStr)

	_, err := runShiftfit(t, "cache", "clear")
	require.NoError(t, err)

	_, err = runShiftfit(t, "history", "clear")
	require.NoError(t, err)

	// Apply the history schema before anything writes to it
	_, err = runShiftfit(t, "history", "migrate")
	require.NoError(t, err)

	// Cold then warm run through the database cache
	_, err = runShiftfit(t, efficiencyArgs()...)
	require.NoError(t, err)
	_, err = runShiftfit(t, efficiencyArgs()...)
	require.NoError(t, err)

	out, err := runShiftfit(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Entries: 1")

	out, err = runShiftfit(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Runs: 2")

	prefix := filepath.Join(t.TempDir(), "history")
	out, err = runShiftfit(t, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Exported 2 runs")
	assert.FileExists(t, prefix+".runs.parquet")
	assert.FileExists(t, prefix+".scenario_results.parquet")
}

// TestShiftfitWithMySQL tests the shiftfit CLI with a MySQL backend.
func TestShiftfitWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "shiftfit",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/shiftfit?parseTime=true", host, port.Port())
	exerciseBackend(t, "mysql", connStr)
}

// TestShiftfitWithPostgres tests the shiftfit CLI with a PostgreSQL backend.
func TestShiftfitWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	exerciseBackend(t, "postgresql", connStr)
}

// Package main times the shiftfit CLI with and without the profile cache.
// Each command runs several times per phase; the first successful cached run
// is reported as cold and the rest are averaged as warm.
//
// Prerequisites:
// - shiftfit binary installed and available in PATH
// - A data directory holding transactions.csv, forecast_<tier>.csv,
//   shifts_<tier>.csv and delivery_sales.csv (the repo's testdata works)
//
// Usage: go run benchmark/main.go [data-dir]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the no-cache average, cold run and warm average of one command.
type BenchmarkResult struct {
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Tier        string
}

// benchCommand is one CLI invocation and the line that marks its success.
type benchCommand struct {
	name       string
	args       []string
	completion string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DataDir:     os.Args[1],
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Tier:        "high",
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("shiftfit", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

func dataFile(config BenchmarkConfig, name string) string {
	return filepath.Join(config.DataDir, name)
}

// checkPrerequisites verifies that the binary and the input tables exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("shiftfit"); err != nil {
		return fmt.Errorf("shiftfit binary not found in PATH")
	}
	for _, name := range []string{
		"transactions.csv",
		"delivery_sales.csv",
		"forecast_" + config.Tier + ".csv",
		"shifts_" + config.Tier + ".csv",
	} {
		if _, err := os.Stat(dataFile(config, name)); os.IsNotExist(err) {
			return fmt.Errorf("input table %s not found in %s", name, config.DataDir)
		}
	}
	return nil
}

func commands(config BenchmarkConfig) []benchCommand {
	common := []string{"--transactions", dataFile(config, "transactions.csv")}
	forecast := []string{"--forecast", dataFile(config, "forecast_"+config.Tier+".csv")}
	delivery := []string{"--with-delivery", "--delivery", dataFile(config, "delivery_sales.csv"), "--tier", config.Tier}
	shifts := []string{"--shifts", dataFile(config, "shifts_"+config.Tier+".csv")}

	join := func(parts ...[]string) []string {
		var out []string
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}
	return []benchCommand{
		{"profile", join(common, []string{"--shapes"}), "Profile built from"},
		{"demand", join(common, forecast, delivery), "Demand computed for"},
		{"efficiency", join(common, forecast, delivery, shifts), "Efficiency computed for"},
	}
}

// runBenchmarks executes every command in both cache phases
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %s, %v timeout, no-cache: %d runs, cache: %d runs\n",
		config.DataDir, config.Timeout, config.NoCacheRuns, config.CacheRuns)

	var results []BenchmarkResult
	for _, c := range commands(config) {
		results = append(results, runBenchmarkSuite(config, c))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, c benchCommand) BenchmarkResult {
	fmt.Printf("Running %s\n", c.name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, c, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Command:     c.name,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a command several times and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, c benchCommand, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{c.name, "--cache-backend", cacheBackend, "--color", "no"}, c.args...)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "shiftfit", args...).CombinedOutput()
		elapsed := time.Since(start)
		cancel()

		if err == nil && strings.Contains(string(output), c.completion) {
			times = append(times, elapsed.Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("shiftfit_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}

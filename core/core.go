// Package core wires ingestion, the demand pipeline and the writers together.
package core

import (
	"context"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteProfile learns the typical week of a store and prints it.
func ExecuteProfile(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetProfileResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteProfile(result, cfg, duration)
}

// ExecuteDemand reallocates every scenario's daypart forecast into hours and prints it.
func ExecuteDemand(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	results, err := GetDemandResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDemand(results, cfg, duration)
}

// ExecuteCoverage counts active shifts per hour for every scenario and prints it.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	results, err := GetCoverageResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteCoverage(results, cfg, duration)
}

// ExecuteEfficiency compares demand against staffing for every scenario.
// Each scenario summary is recorded in the history store when one is configured.
func ExecuteEfficiency(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	results, err := GetEfficiencyResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteEfficiency(results, cfg, duration)
}

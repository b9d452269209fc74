package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/shiftfit/core/algo"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/ingest"
	"github.com/huangsam/shiftfit/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	errNoForecast = errors.New("--forecast is required")
	errNoShifts   = errors.New("--shifts is required")
)

// GetDemandResults spreads each scenario's daypart forecast over the hours of
// the learned typical week, blending delivery covers in when requested.
func GetDemandResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.DemandResult, error) {
	ctx = withRunID(ctx)
	scenarios := cfg.ResolveScenarios()
	if err := requireFiles(cfg, true, false); err != nil {
		return nil, err
	}
	profile, _, err := loadProfile(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	delivery, err := loadDelivery(cfg)
	if err != nil {
		return nil, err
	}
	return runScenarios(ctx, scenarios, func(_ context.Context, sc contract.ScenarioConfig) (schema.DemandResult, error) {
		return demandFor(cfg, profile, delivery, sc)
	})
}

// GetCoverageResults counts the active shifts per hour of each scenario's rota.
func GetCoverageResults(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.CoverageResult, error) {
	ctx = withRunID(ctx)
	scenarios := cfg.ResolveScenarios()
	if err := requireFiles(cfg, false, true); err != nil {
		return nil, err
	}
	return runScenarios(ctx, scenarios, func(ctx context.Context, sc contract.ScenarioConfig) (schema.CoverageResult, error) {
		return coverageFor(ctx, cfg, sc)
	})
}

// GetEfficiencyResults computes demand and coverage for every scenario and
// divides one by the other hour by hour.
func GetEfficiencyResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.EfficiencyResult, error) {
	start := time.Now()
	ctx = withRunID(ctx)
	scenarios := cfg.ResolveScenarios()
	if err := requireFiles(cfg, true, true); err != nil {
		return nil, err
	}

	profile, _, err := loadProfile(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	delivery, err := loadDelivery(cfg)
	if err != nil {
		return nil, err
	}

	results, err := runScenarios(ctx, scenarios, func(ctx context.Context, sc contract.ScenarioConfig) (schema.EfficiencyResult, error) {
		d, err := demandFor(cfg, profile, delivery, sc)
		if err != nil {
			return schema.EfficiencyResult{}, err
		}
		c, err := coverageFor(ctx, cfg, sc)
		if err != nil {
			return schema.EfficiencyResult{}, err
		}
		res := algo.Efficiency(d.Demand, c.Staffing, cfg.Thresholds)
		res.Scenario = sc.Name
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	beginRun(ctx, cfg, mgr, "efficiency", start).finish(results)
	return results, nil
}

// runScenarios evaluates every scenario concurrently and keeps the input order.
// The first failure cancels the context handed to the remaining scenarios.
func runScenarios[T any](ctx context.Context, scenarios []contract.ScenarioConfig, fn func(context.Context, contract.ScenarioConfig) (T, error)) ([]T, error) {
	results := make([]T, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, sc)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			contract.Logger().Debug("scenario done", runFields(ctx, zap.String("scenario", sc.Name))...)
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// requireFiles checks that every scenario names the tables a command reads.
func requireFiles(cfg *contract.Config, forecast, shifts bool) error {
	if len(cfg.Scenarios) == 0 {
		if forecast && cfg.ForecastFile == "" {
			return errNoForecast
		}
		if shifts && cfg.ShiftsFile == "" {
			return errNoShifts
		}
		return nil
	}
	for _, sc := range cfg.Scenarios {
		if forecast && sc.Forecast == "" {
			return fmt.Errorf("scenario %q has no forecast file", sc.Name)
		}
		if shifts && sc.Shifts == "" {
			return fmt.Errorf("scenario %q has no shifts file", sc.Name)
		}
	}
	return nil
}

func loadDelivery(cfg *contract.Config) (ingest.DeliverySales, error) {
	if !cfg.WithDelivery {
		return nil, nil
	}
	return ingest.LoadDelivery(cfg.DeliveryFile)
}

func demandFor(cfg *contract.Config, profile schema.Profile, delivery ingest.DeliverySales, sc contract.ScenarioConfig) (schema.DemandResult, error) {
	forecast, err := ingest.LoadForecast(sc.Forecast)
	if err != nil {
		return schema.DemandResult{}, err
	}

	var covers int64
	if delivery != nil {
		sales, err := delivery.For(sc.Tier)
		if err != nil {
			return schema.DemandResult{}, err
		}
		covers = algo.DeliveryCovers(sales, cfg.SpendPerHead)
		forecast = algo.BlendDelivery(forecast, covers)
	}

	raw, rounded := algo.ForecastDemand(profile.History, forecast)
	return schema.DemandResult{
		Scenario:       sc.Name,
		Store:          profile.Store,
		Month:          profile.Month,
		WeeksUsed:      len(profile.Weeks),
		DeliveryCovers: covers,
		Forecast:       schema.ForecastRows(forecast),
		Raw:            raw,
		Demand:         rounded,
	}, nil
}

func coverageFor(ctx context.Context, cfg *contract.Config, sc contract.ScenarioConfig) (schema.CoverageResult, error) {
	shifts, err := ingest.LoadShifts(sc.Shifts, len(cfg.Roles) > 0)
	if err != nil {
		return schema.CoverageResult{}, err
	}
	if len(cfg.Roles) > 0 {
		present := algo.Roles(shifts)
		for _, role := range cfg.Roles {
			if !slices.Contains(present, role) {
				contract.Logger().Warn("Role not found in rota",
					runFields(ctx, zap.String("scenario", sc.Name), zap.String("role", role), zap.Strings("roles", present))...)
			}
		}
	}
	staffing, stats := algo.BuildCoverage(shifts, cfg.Roles)
	return schema.CoverageResult{
		Scenario: sc.Name,
		Roles:    cfg.Roles,
		Staffing: staffing,
		Stats:    stats,
	}, nil
}

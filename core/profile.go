package core

import (
	"context"
	"errors"

	"github.com/huangsam/shiftfit/core/agg"
	"github.com/huangsam/shiftfit/core/algo"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
	"go.uber.org/zap"
)

var errNoTransactions = errors.New("--transactions is required")

func profileOptions(cfg *contract.Config) agg.ProfileOptions {
	return agg.ProfileOptions{
		Clean: agg.CleanOptions{
			Store:         cfg.Store,
			Month:         cfg.Month,
			GuestCap:      cfg.GuestCap,
			SpendPerCover: cfg.SpendPerCover,
		},
		Aggregate: agg.AggregateOptions{ZeroFillAbsent: cfg.AbsentWeeksAsZero},
	}
}

// GetProfileResults learns the typical week for the configured store and month.
// Daypart shapes are attached when cfg.ShowShapes is set.
func GetProfileResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ProfileResult, error) {
	ctx = withRunID(ctx)
	p, cached, err := loadProfile(ctx, cfg, mgr)
	if err != nil {
		return schema.ProfileResult{}, err
	}
	result := schema.ProfileResult{Profile: p, Cached: cached}
	if cfg.ShowShapes {
		shapes := algo.ExtractShapes(p.History)
		result.Shapes = shapes[:]
	}
	return result, nil
}

func loadProfile(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.Profile, bool, error) {
	if cfg.TransactionsFile == "" {
		return schema.Profile{}, false, errNoTransactions
	}
	p, cached, err := cachedProfile(ctx, cfg, mgr)
	if err != nil {
		return schema.Profile{}, false, err
	}
	contract.Logger().Debug("profile ready", runFields(ctx,
		zap.String("store", p.Store),
		zap.Int("weeks", len(p.Weeks)),
		zap.Int("kept", p.Stats.Kept),
		zap.Int("malformed", p.Stats.Malformed),
		zap.Bool("cached", cached),
	)...)
	if len(p.Weeks) == 0 {
		contract.Logger().Warn("no transactions matched the store and month filters", runFields(ctx)...)
	}
	return p, cached, nil
}

package core

import (
	"context"
	"time"

	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/schema"
)

// runTracker records one execution in the history store.
// A nil tracker records nothing.
type runTracker struct {
	store contract.HistoryStore
	id    string
}

// beginRun inserts the run row when a history store is configured. It is
// called once the run has succeeded, with the time the run started.
// Tracking failures are logged and never fail the command.
func beginRun(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, command string, start time.Time) *runTracker {
	if mgr == nil {
		return nil
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return nil
	}

	scenarios := cfg.ResolveScenarios()
	names := make([]string, 0, len(scenarios))
	for _, sc := range scenarios {
		names = append(names, sc.Name)
	}
	configParams := map[string]any{
		"transactions":   cfg.TransactionsFile,
		"store":          cfg.Store,
		"month":          int(cfg.Month),
		"scenarios":      names,
		"roles":          cfg.Roles,
		"with_delivery":  cfg.WithDelivery,
		"spend_per_head": cfg.SpendPerHead.String(),
		"threshold_low":  cfg.Thresholds.Low,
		"threshold_high": cfg.Thresholds.High,
	}

	id := getRunID(ctx)
	if err := store.BeginRun(id, command, start, configParams); err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return nil
	}
	return &runTracker{store: store, id: id}
}

// finish stores every scenario summary and stamps the end of the run.
func (t *runTracker) finish(results []schema.EfficiencyResult) {
	if t == nil {
		return
	}
	for _, res := range results {
		if err := t.store.RecordScenario(schema.NewScenarioRecord(t.id, res)); err != nil {
			contract.LogWarn("Failed to record scenario", err)
		}
	}
	if err := t.store.EndRun(t.id, time.Now(), len(results)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/shiftfit/core/agg"
	"github.com/huangsam/shiftfit/internal/contract"
	"github.com/huangsam/shiftfit/internal/ingest"
	"github.com/huangsam/shiftfit/schema"
	"go.uber.org/zap"
)

// currentCacheVersion defines the version of the cached profile layout
const currentCacheVersion = 1

// cachedProfile returns the profile for the configured transactions, reading
// it from the profile store when a fresh entry exists.
func cachedProfile(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.Profile, bool, error) {
	opts := profileOptions(cfg)

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetProfileStore()
	}
	if store == nil {
		// Fallback to direct computation
		p, err := computeProfile(cfg.TransactionsFile, opts)
		return p, false, err
	}

	key, err := generateCacheKey(cfg.TransactionsFile, opts)
	if err != nil {
		return schema.Profile{}, false, err
	}

	if p, ok := checkCacheHit(store, key); ok {
		contract.Logger().Debug("profile cache hit", runFields(ctx, zap.String("key", key))...)
		return p, true, nil
	}

	contract.Logger().Debug("profile cache miss", runFields(ctx, zap.String("key", key))...)
	p, err := computeAndStore(ctx, cfg.TransactionsFile, opts, store, key)
	return p, false, err
}

// checkCacheHit attempts to retrieve and validate a cached profile
func checkCacheHit(store contract.CacheStore, key string) (schema.Profile, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil || version != currentCacheVersion {
		return schema.Profile{}, false
	}
	if time.Since(time.Unix(ts, 0)) > contract.ProfileCacheStaleness {
		return schema.Profile{}, false
	}
	var p schema.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return schema.Profile{}, false
	}
	return p, true
}

// computeAndStore builds the profile and stores it in the cache.
// A failed write only costs the next run a recomputation.
func computeAndStore(ctx context.Context, path string, opts agg.ProfileOptions, store contract.CacheStore, key string) (schema.Profile, error) {
	p, err := computeProfile(path, opts)
	if err != nil {
		return schema.Profile{}, err
	}
	storeProfile(ctx, store, key, p)
	return p, nil
}

// storeProfile writes p under key. Failures are logged as warnings.
func storeProfile(ctx context.Context, store contract.CacheStore, key string, p schema.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		contract.Logger().Warn("failed to encode profile", runFields(ctx, zap.Error(err))...)
		return
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.Logger().Warn("failed to cache profile", runFields(ctx, zap.Error(err))...)
	}
}

func computeProfile(path string, opts agg.ProfileOptions) (schema.Profile, error) {
	rows, err := ingest.LoadTransactions(path)
	if err != nil {
		return schema.Profile{}, err
	}
	return agg.BuildProfile(rows, opts), nil
}

// generateCacheKey hashes the transaction file contents together with every
// option that changes the resulting profile.
func generateCacheKey(path string, opts agg.ProfileOptions) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(h, "|%s|%d|%g|%g|%t",
		opts.Clean.Store,
		opts.Clean.Month,
		opts.Clean.GuestCap,
		opts.Clean.SpendPerCover,
		opts.Aggregate.ZeroFillAbsent,
	)
	return hex.EncodeToString(h.Sum(nil)), nil
}

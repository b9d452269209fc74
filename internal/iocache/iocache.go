// Package iocache persists learned profiles and run history.
package iocache

import (
	"sync"

	"github.com/huangsam/shiftfit/internal/contract"
)

// CacheStoreManager manages the profile cache and the run history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	profile      contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetProfileStore returns the profile CacheStore.
func (mgr *CacheStoreManager) GetProfileStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.profile
}

// GetHistoryStore returns the run HistoryStore, or nil when history is disabled.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

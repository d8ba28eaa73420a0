package preference_repo

import (
	"context"
	"sync"

	"tosipeli/internal/model"
	"tosipeli/internal/repository"
)

type memoryRepo struct {
	mtx   sync.RWMutex
	prefs map[string]model.PreferenceSelection
}

// NewMemoryRepository is used when no Redis address is configured.
// Stored preferences do not survive a restart.
func NewMemoryRepository() repository.PreferenceRepository {
	return &memoryRepo{
		prefs: make(map[string]model.PreferenceSelection),
	}
}

func (r *memoryRepo) Get(_ context.Context, deviceID string) (*model.PreferenceSelection, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	sel, ok := r.prefs[deviceID]
	if !ok {
		return nil, nil
	}
	return &sel, nil
}

func (r *memoryRepo) Save(_ context.Context, deviceID string, selection model.PreferenceSelection) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.prefs[deviceID] = selection
	return nil
}

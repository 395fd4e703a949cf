package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"

	"github.com/rs/zerolog"
)

// StorefrontServiceImpl implements ports.StorefrontService. The current store
// is explicit state behind this service, guarded by a mutex, instead of a
// process-wide mutable variable.
type StorefrontServiceImpl struct {
	catalogRepo ports.CatalogRepository
	rng         *rand.Rand
	log         zerolog.Logger

	mu      sync.RWMutex
	current domain.Store
}

// NewStorefrontService creates the service and selects an initial store.
func NewStorefrontService(ctx context.Context, catalogRepo ports.CatalogRepository, rng *rand.Rand, log zerolog.Logger) (*StorefrontServiceImpl, error) {
	s := &StorefrontServiceImpl{
		catalogRepo: catalogRepo,
		rng:         rng,
		log:         log,
	}
	if _, err := s.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("selecting initial store: %w", err)
	}
	return s, nil
}

// Current returns the currently selected store.
func (s *StorefrontServiceImpl) Current() domain.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh picks a new store at random.
func (s *StorefrontServiceImpl) Refresh(ctx context.Context) (domain.Store, error) {
	stores, err := s.catalogRepo.ListStores(ctx)
	if err != nil {
		return domain.Store{}, apperror.ErrDatabaseError(fmt.Errorf("list stores: %w", err))
	}
	if len(stores) == 0 {
		return domain.Store{}, apperror.ErrNotFound("Store")
	}

	s.mu.Lock()
	s.current = stores[s.rng.Intn(len(stores))]
	picked := s.current
	s.mu.Unlock()

	s.log.Info().Int("store_id", picked.ID).Str("name", picked.Name).Msg("storefront selected")
	return picked, nil
}

package service

import (
	"context"
	"math/rand"
	"testing"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStorefrontService_PicksInitialStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	ctx := context.Background()

	catalogRepo.EXPECT().ListStores(ctx).
		Return([]domain.Store{{ID: 1, Name: "Bazaar"}}, nil)

	svc, err := NewStorefrontService(ctx, catalogRepo, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "Bazaar", svc.Current().Name)
}

func TestStorefrontService_RefreshReplacesCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	ctx := context.Background()

	stores := []domain.Store{
		{ID: 1, Name: "Bazaar"},
		{ID: 2, Name: "Emporium"},
		{ID: 3, Name: "Outpost"},
	}
	catalogRepo.EXPECT().ListStores(ctx).Return(stores, nil).Times(2)

	svc, err := NewStorefrontService(ctx, catalogRepo, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.NoError(t, err)

	picked, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Contains(t, []int{1, 2, 3}, picked.ID)
	assert.Equal(t, picked, svc.Current())
}

func TestStorefrontService_NoStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	ctx := context.Background()

	catalogRepo.EXPECT().ListStores(ctx).Return(nil, nil)

	_, err := NewStorefrontService(ctx, catalogRepo, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.Error(t, err)
}

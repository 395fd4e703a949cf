package service

import (
	"context"
	"testing"
	"time"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/internal/core/ports/mocks"
	"webstore/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc         *AuthServiceImpl
	userRepo    *mocks.MockUserRepository
	walletRepo  *mocks.MockWalletRepository
	catalogRepo *mocks.MockCatalogRepository
	hashSvc     *mocks.MockHashService
	tokenSvc    *mocks.MockTokenService
	ctrl        *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		userRepo:    mocks.NewMockUserRepository(ctrl),
		walletRepo:  mocks.NewMockWalletRepository(ctrl),
		catalogRepo: mocks.NewMockCatalogRepository(ctrl),
		hashSvc:     mocks.NewMockHashService(ctrl),
		tokenSvc:    mocks.NewMockTokenService(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewAuthService(d.userRepo, d.walletRepo, d.catalogRepo, d.hashSvc, d.tokenSvc, zerolog.Nop())
	return d
}

func registerReq() ports.RegisterRequest {
	return ports.RegisterRequest{
		Email:    "shopper@example.com",
		Password: "Passw0rd12",
		Name:     "Ada",
		Surname:  "Lovelace",
		Age:      30,
		Address:  "12 Analytical Lane",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").Return(nil, nil)
	d.hashSvc.EXPECT().Hash("Passw0rd12").Return("hashed", nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			u.ID = 42
			return nil
		})
	d.catalogRepo.EXPECT().ListCurrencies(ctx).Return([]domain.Currency{{ID: 1}, {ID: 2}}, nil)

	var created *domain.Wallet
	d.walletRepo.EXPECT().Create(ctx, int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, w *domain.Wallet) error {
			created = w
			return nil
		})

	user, err := d.svc.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "hashed", user.PasswordHash)
	assert.False(t, user.GotBonus)

	// The fresh wallet starts every known currency at zero.
	require.NotNil(t, created)
	require.Len(t, created.Balances, 2)
	assert.True(t, created.Balances[1].Equal(decimal.Zero))
	assert.True(t, created.Balances[2].Equal(decimal.Zero))
	assert.Empty(t, created.Cart.Items)
	assert.Empty(t, created.Orders)
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").Return(&domain.User{ID: 1}, nil)

	_, err := d.svc.Register(ctx, registerReq())
	assertAppError(t, err, "AUTH_002")
}

func TestAuthService_Register_WalletAlreadyExists(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").Return(nil, nil)
	d.hashSvc.EXPECT().Hash(gomock.Any()).Return("hashed", nil)
	d.userRepo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			u.ID = 42
			return nil
		})
	d.catalogRepo.EXPECT().ListCurrencies(ctx).Return([]domain.Currency{{ID: 1}}, nil)
	d.walletRepo.EXPECT().Create(ctx, int64(42), gomock.Any()).
		Return(apperror.ErrAlreadyExists("Wallet"))

	_, err := d.svc.Register(ctx, registerReq())
	assertAppError(t, err, "WLT_004")
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	expiry := time.Now().Add(24 * time.Hour)
	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").
		Return(&domain.User{ID: 42, PasswordHash: "hashed"}, nil)
	d.hashSvc.EXPECT().Verify("Passw0rd12", "hashed").Return(true, nil)
	d.tokenSvc.EXPECT().Generate(int64(42)).Return("token", expiry, nil)

	token, exp, err := d.svc.Login(ctx, "shopper@example.com", "Passw0rd12")
	require.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.Equal(t, expiry, exp)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	_, _, err := d.svc.Login(ctx, "nobody@example.com", "whatever")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").
		Return(&domain.User{ID: 42, PasswordHash: "hashed"}, nil)
	d.hashSvc.EXPECT().Verify("wrong", "hashed").Return(false, nil)

	_, _, err := d.svc.Login(ctx, "shopper@example.com", "wrong")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_UpdateProfile_RewritesFields(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByID(ctx, int64(42)).
		Return(&domain.User{ID: 42, Email: "old@example.com", PasswordHash: "old"}, nil)
	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").Return(nil, nil)
	d.hashSvc.EXPECT().Hash("Passw0rd12").Return("newhash", nil)

	var updated *domain.User
	d.userRepo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) error {
			updated = u
			return nil
		})

	user, err := d.svc.UpdateProfile(ctx, 42, registerReq())
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", user.Email)
	assert.Equal(t, "newhash", user.PasswordHash)
	require.NotNil(t, updated)
	assert.Equal(t, "Ada", updated.Name)
}

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	d := setupAuthService(t)
	ctx := context.Background()

	d.userRepo.EXPECT().GetByID(ctx, int64(42)).
		Return(&domain.User{ID: 42, Email: "old@example.com"}, nil)
	d.userRepo.EXPECT().GetByEmail(ctx, "shopper@example.com").
		Return(&domain.User{ID: 99}, nil)

	_, err := d.svc.UpdateProfile(ctx, 42, registerReq())
	assertAppError(t, err, "AUTH_002")
}

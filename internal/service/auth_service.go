package service

import (
	"context"
	"fmt"
	"time"

	"webstore/internal/core/domain"
	"webstore/internal/core/ports"
	"webstore/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo    ports.UserRepository
	walletRepo  ports.WalletRepository
	catalogRepo ports.CatalogRepository
	hashSvc     ports.HashService
	tokenSvc    ports.TokenService
	log         zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	walletRepo ports.WalletRepository,
	catalogRepo ports.CatalogRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		walletRepo:  walletRepo,
		catalogRepo: catalogRepo,
		hashSvc:     hashSvc,
		tokenSvc:    tokenSvc,
		log:         log,
	}
}

// Register creates a new user and initializes their wallet with every known
// currency at zero balance.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check email: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        req.Email,
		Name:         req.Name,
		Surname:      req.Surname,
		Age:          req.Age,
		Address:      req.Address,
		PasswordHash: passwordHash,
		GotBonus:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create user: %w", err))
	}

	currencies, err := s.catalogRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list currencies: %w", err))
	}
	currencyIDs := make([]int, 0, len(currencies))
	for _, c := range currencies {
		currencyIDs = append(currencyIDs, c.ID)
	}

	if err := s.walletRepo.Create(ctx, user.ID, domain.NewWallet(currencyIDs)); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login validates credentials and returns a session token.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.ErrDatabaseError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(user.ID)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}

// GetProfile returns the user record.
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("User")
	}
	return user, nil
}

// UpdateProfile overwrites the user's account data, including the password.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID int64, req ports.RegisterRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("User")
	}

	if req.Email != user.Email {
		other, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("check email: %w", err))
		}
		if other != nil {
			return nil, apperror.ErrEmailExists()
		}
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user.Email = req.Email
	user.Name = req.Name
	user.Surname = req.Surname
	user.Age = req.Age
	user.Address = req.Address
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update user: %w", err))
	}

	return user, nil
}

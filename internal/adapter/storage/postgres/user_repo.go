package postgres

import (
	"context"
	"errors"
	"fmt"

	"webstore/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user and fills in the generated ID.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, surname, age, address, password_hash, got_bonus, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		u.Email, u.Name, u.Surname, u.Age, u.Address,
		u.PasswordHash, u.GotBonus, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, name, surname, age, address, password_hash, got_bonus, created_at, updated_at
		FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.Surname, &u.Age, &u.Address,
		&u.PasswordHash, &u.GotBonus, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, name, surname, age, address, password_hash, got_bonus, created_at, updated_at
		FROM users WHERE email = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Surname, &u.Age, &u.Address,
		&u.PasswordHash, &u.GotBonus, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update rewrites a user record.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users
		SET email=$1, name=$2, surname=$3, age=$4, address=$5, password_hash=$6, updated_at=NOW()
		WHERE id=$7`

	_, err := r.pool.Exec(ctx, query,
		u.Email, u.Name, u.Surname, u.Age, u.Address, u.PasswordHash, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// MarkBonusClaimed sets the one-time bonus flag.
func (r *UserRepo) MarkBonusClaimed(ctx context.Context, id int64) error {
	query := `UPDATE users SET got_bonus=TRUE, updated_at=NOW() WHERE id=$1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark bonus claimed: %w", err)
	}
	return nil
}

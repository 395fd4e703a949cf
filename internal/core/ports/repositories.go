package ports

import (
	"context"

	"webstore/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user and fills in its assigned ID.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// MarkBonusClaimed sets the one-time bonus flag on the user record.
	MarkBonusClaimed(ctx context.Context, id int64) error
}

// CatalogRepository defines read access to the catalog. The catalog is
// read-mostly; nothing in the wallet ledger mutates it.
type CatalogRepository interface {
	GetItem(ctx context.Context, id int) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	// SearchItems matches name substrings, optionally narrowed to a category.
	// Results come back in insertion order.
	SearchItems(ctx context.Context, nameSubstring string, categoryID *int) ([]domain.Item, error)
	GetCurrency(ctx context.Context, id int) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListStores(ctx context.Context) ([]domain.Store, error)
}

// WalletRepository persists one wallet document per user. Implementations
// rewrite the document whole; callers serialize access per user.
type WalletRepository interface {
	// Create stores a fresh wallet. Fails with AlreadyExists when the user
	// already has one.
	Create(ctx context.Context, userID int64, w *domain.Wallet) error
	// Get loads the document. Fails with NotFound when the user has no
	// wallet, and with a corruption error when the document cannot be
	// decoded; corrupt documents are never repaired.
	Get(ctx context.Context, userID int64) (*domain.Wallet, error)
	// Save overwrites the document.
	Save(ctx context.Context, userID int64, w *domain.Wallet) error
}

package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"webstore/internal/core/domain"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already exists")
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *inMemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	u.UpdatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *inMemoryUserRepo) MarkBonusClaimed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	u.GotBonus = true
	return nil
}

// --- In-Memory Catalog Repo ---

// inMemoryCatalogRepo serves a small fixed catalog. The catalog is read-only
// at runtime, so no locking is needed once constructed.
type inMemoryCatalogRepo struct {
	items      []domain.Item
	currencies []domain.Currency
	categories []domain.Category
	stores     []domain.Store
}

func newInMemoryCatalogRepo() *inMemoryCatalogRepo {
	return &inMemoryCatalogRepo{
		currencies: []domain.Currency{
			{ID: 1, Name: "Gold", Logotype: "gold.png", IsInteger: false},
			{ID: 2, Name: "Gems", Logotype: "gems.png", IsInteger: true},
		},
		categories: []domain.Category{
			{ID: 1, Name: "Weapons"},
			{ID: 2, Name: "Armor"},
		},
		items: []domain.Item{
			{ID: 1, Name: "Iron Sword", CategoryID: 1, Description: "A trusty blade;Damage 12;Weight 3", PhotoName: "iron_sword.png"},
			{ID: 2, Name: "Oak Shield", CategoryID: 2, Description: "Solid oak;Block 8;Weight 5", PhotoName: "oak_shield.png"},
			{ID: 3, Name: "Steel Sword", CategoryID: 1, Description: "Forged steel;Damage 18;Weight 4", PhotoName: "steel_sword.png"},
			{ID: 4, Name: "Leather Cap", CategoryID: 2, Description: "Light headgear;Armor 2;Weight 1", PhotoName: "leather_cap.png"},
		},
		stores: []domain.Store{
			{ID: 1, Name: "The Rusty Anvil", Slogan: "Gear up!", Logotype: "anvil.png", Icon: "anvil_icon.png"},
		},
	}
}

func (r *inMemoryCatalogRepo) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	for _, it := range r.items {
		if it.ID == id {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCatalogRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	return append([]domain.Item{}, r.items...), nil
}

func (r *inMemoryCatalogRepo) SearchItems(ctx context.Context, nameSubstring string, categoryID *int) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range r.items {
		if !strings.Contains(strings.ToLower(it.Name), strings.ToLower(nameSubstring)) {
			continue
		}
		if categoryID != nil && it.CategoryID != *categoryID {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *inMemoryCatalogRepo) GetCurrency(ctx context.Context, id int) (*domain.Currency, error) {
	for _, c := range r.currencies {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCatalogRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return append([]domain.Currency{}, r.currencies...), nil
}

func (r *inMemoryCatalogRepo) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryCatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, r.categories...), nil
}

func (r *inMemoryCatalogRepo) ListStores(ctx context.Context) ([]domain.Store, error) {
	return append([]domain.Store{}, r.stores...), nil
}

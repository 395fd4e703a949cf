package postgres

import (
	"context"
	"errors"
	"fmt"

	"webstore/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements ports.CatalogRepository over the relational catalog
// tables. The catalog is read-only at runtime; rows are seeded out of band.
type CatalogRepo struct {
	pool Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

const itemColumns = `id, name, category_id, description, special_price, special_currency_id, photo_name`

func scanItem(row pgx.Row) (*domain.Item, error) {
	it := &domain.Item{}
	err := row.Scan(
		&it.ID, &it.Name, &it.CategoryID, &it.Description,
		&it.SpecialPrice, &it.SpecialCurrencyID, &it.PhotoName,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// GetItem fetches one item, or nil when absent.
func (r *CatalogRepo) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return it, nil
}

// ListItems returns the whole catalog in insertion order.
func (r *CatalogRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return collectItems(rows)
}

// SearchItems matches item names by substring, case-insensitively, optionally
// narrowed to a category.
func (r *CatalogRepo) SearchItems(ctx context.Context, nameSubstring string, categoryID *int) ([]domain.Item, error) {
	pattern := "%" + nameSubstring + "%"

	if categoryID != nil {
		query := `SELECT ` + itemColumns + ` FROM items WHERE name ILIKE $1 AND category_id = $2 ORDER BY id`
		rows, err := r.pool.Query(ctx, query, pattern, *categoryID)
		if err != nil {
			return nil, fmt.Errorf("search items: %w", err)
		}
		return collectItems(rows)
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE name ILIKE $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return collectItems(rows)
}

// GetCurrency fetches one currency, or nil when absent.
func (r *CatalogRepo) GetCurrency(ctx context.Context, id int) (*domain.Currency, error) {
	query := `SELECT id, name, logotype, is_integer FROM currencies WHERE id = $1`

	c := &domain.Currency{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Logotype, &c.IsInteger)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency by id: %w", err)
	}
	return c, nil
}

// ListCurrencies returns all currencies in insertion order.
func (r *CatalogRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT id, name, logotype, is_integer FROM currencies ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.ID, &c.Name, &c.Logotype, &c.IsInteger); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate currencies: %w", err)
	}
	return currencies, nil
}

// GetCategory fetches one category, or nil when absent.
func (r *CatalogRepo) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`

	c := &domain.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories in insertion order.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// ListStores returns all storefront identities.
func (r *CatalogRepo) ListStores(ctx context.Context) ([]domain.Store, error) {
	query := `SELECT id, name, slogan, logotype, icon FROM stores ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Slogan, &s.Logotype, &s.Icon); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

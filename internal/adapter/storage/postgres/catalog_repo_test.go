package postgres

import (
	"context"
	"testing"

	"webstore/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemTestColumns() []string {
	return []string{"id", "name", "category_id", "description", "special_price", "special_currency_id", "photo_name"}
}

func TestCatalogRepo_GetItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	price := decimal.RequireFromString("499")
	currencyID := 2

	mock.ExpectQuery("SELECT .+ FROM items WHERE id").
		WithArgs(7).
		WillReturnRows(pgxmock.NewRows(itemTestColumns()).
			AddRow(7, "Astrolabe", 3, "brass;hand made", &price, &currencyID, "astrolabe.png"))

	item, err := repo.GetItem(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Astrolabe", item.Name)
	require.NotNil(t, item.SpecialPrice)
	assert.True(t, item.SpecialPrice.Equal(price))
	require.NotNil(t, item.SpecialCurrencyID)
	assert.Equal(t, 2, *item.SpecialCurrencyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetItem_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM items WHERE id").
		WithArgs(999).
		WillReturnRows(pgxmock.NewRows(itemTestColumns()))

	item, err := repo.GetItem(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_ListItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM items ORDER BY id").
		WillReturnRows(pgxmock.NewRows(itemTestColumns()).
			AddRow(1, "Astrolabe", 3, "brass", (*decimal.Decimal)(nil), (*int)(nil), "astrolabe.png").
			AddRow(2, "Sextant", 3, "polished", (*decimal.Decimal)(nil), (*int)(nil), "sextant.png"))

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Sextant", items[1].Name)
	assert.Nil(t, items[0].SpecialPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_SearchItems_WithCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	categoryID := 3

	mock.ExpectQuery("SELECT .+ FROM items WHERE name ILIKE .+ AND category_id").
		WithArgs("%lab%", 3).
		WillReturnRows(pgxmock.NewRows(itemTestColumns()).
			AddRow(1, "Astrolabe", 3, "brass", (*decimal.Decimal)(nil), (*int)(nil), "astrolabe.png"))

	items, err := repo.SearchItems(context.Background(), "lab", &categoryID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Astrolabe", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_SearchItems_NoCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM items WHERE name ILIKE").
		WithArgs("%lab%").
		WillReturnRows(pgxmock.NewRows(itemTestColumns()))

	items, err := repo.SearchItems(context.Background(), "lab", nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetCurrency(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM currencies WHERE id").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "logotype", "is_integer"}).
			AddRow(2, "Gold", "gold.png", true))

	c, err := repo.GetCurrency(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Gold", c.Name)
	assert.True(t, c.IsInteger)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_ListCurrencies(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM currencies ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "logotype", "is_integer"}).
			AddRow(1, "Gems", "gems.png", false).
			AddRow(2, "Gold", "gold.png", true))

	currencies, err := repo.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, []domain.Currency{
		{ID: 1, Name: "Gems", Logotype: "gems.png"},
		{ID: 2, Name: "Gold", Logotype: "gold.png", IsInteger: true},
	}, currencies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetCategory_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM categories WHERE id").
		WithArgs(99).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

	c, err := repo.GetCategory(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_ListStores(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM stores ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slogan", "logotype", "icon"}).
			AddRow(1, "Bazaar", "Everything under the sun", "bazaar.png", "bazaar.ico"))

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Bazaar", stores[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

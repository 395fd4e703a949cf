package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "webstore/internal/adapter/http/handler"
	fileStorage "webstore/internal/adapter/storage/file"
	redisStorage "webstore/internal/adapter/storage/redis"
	"webstore/internal/core/ports"
	"webstore/internal/service"
	"webstore/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack on in-memory storage: miniredis
// behind the rate limiter, an afero memory filesystem behind the wallet store,
// and in-memory user/catalog repos. This exercises the real HTTP layer,
// middleware, handlers, services and the wallet document codec end-to-end.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("debug", false)

	userRepo := newInMemoryUserRepo()
	catalogRepo := newInMemoryCatalogRepo()
	walletRepo, err := fileStorage.NewWalletStore(afero.NewMemMapFs(), "/accounts")
	require.NoError(t, err)

	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	amountGen := service.NewRandomAmountGenerator(rand.New(rand.NewSource(1)))

	authSvc := service.NewAuthService(userRepo, walletRepo, catalogRepo, hashSvc, tokenSvc, log)
	walletSvc := service.NewWalletService(walletRepo, userRepo, catalogRepo, amountGen, rand.New(rand.NewSource(2)), log)
	catalogSvc := service.NewCatalogService(catalogRepo, amountGen, rand.New(rand.NewSource(3)), log)
	storefrontSvc, err := service.NewStorefrontService(context.Background(), catalogRepo, rand.New(rand.NewSource(4)), log)
	require.NoError(t, err)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		WalletSvc:      walletSvc,
		CatalogSvc:     catalogSvc,
		StorefrontSvc:  storefrontSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server: server,
		redis:  mr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	regBody, _ := json.Marshal(map[string]interface{}{
		"email":    "shopper@example.com",
		"password": "Superpass12",
		"name":     "Ada",
		"surname":  "Lovelace",
		"age":      30,
		"address":  "12 Analytical Ln",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var regResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regResp))
	data := regResp["data"].(map[string]interface{})
	assert.Equal(t, "shopper@example.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "password_hash")

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "shopper@example.com",
		"password": "Superpass12",
	})
	resp2, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	var loginResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&loginResp))
	loginData := loginResp["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
	assert.Greater(t, loginData["expiry"].(float64), float64(time.Now().Unix()))
}

func TestIntegration_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	regBody, _ := json.Marshal(map[string]interface{}{
		"email":    "dup@example.com",
		"password": "Superpass12",
		"name":     "Dup",
		"surname":  "User",
		"age":      25,
	})

	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp2, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)

	body, _ := io.ReadAll(resp2.Body)
	assert.Contains(t, string(body), "AUTH_002")
}

func TestIntegration_WeakPassword(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	regBody, _ := json.Marshal(map[string]interface{}{
		"email":    "weak@example.com",
		"password": "short1",
		"name":     "Weak",
		"surname":  "Pass",
		"age":      20,
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AUTH_004")
}

func TestIntegration_LoginWrongCredentials(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "Wrongpass12",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	for _, path := range []string{"/api/v1/wallet/balances", "/api/v1/orders", "/api/v1/users/me"} {
		req, _ := http.NewRequest(http.MethodGet, app.server.URL+path, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestIntegration_FreshWalletBalancesAreZero(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "fresh@example.com")

	balances := getBalances(t, app, token)
	require.Len(t, balances, 2)
	assert.True(t, balances[1].IsZero())
	assert.True(t, balances[2].IsZero())
}

func TestIntegration_Profile(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "profile@example.com")

	req, _ := http.NewRequest(http.MethodGet, app.server.URL+"/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "profile@example.com", data["email"])
	assert.Equal(t, false, data["got_bonus"])
}

func TestIntegration_OrderLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "orders@example.com")

	// Fund the wallet with the welcome bonus and read back the balances.
	claimBonus(t, app, token)
	funded := getBalances(t, app, token)
	goldBefore := funded[1]

	// Price the cart line at exactly the gold balance so placement drains it.
	addBody, _ := json.Marshal(map[string]interface{}{
		"item_id":     1,
		"currency_id": 1,
		"price":       goldBefore.String(),
	})
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/wallet/cart", addBody)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Place the order.
	resp = doAuthed(t, app, token, http.MethodPost, "/api/v1/orders", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var placeResp struct {
		Data struct {
			OrderID int `json:"order_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &placeResp))
	orderID := placeResp.Data.OrderID
	require.NotZero(t, orderID)

	// Gold is spent, the cart is empty.
	drained := getBalances(t, app, token)
	assert.True(t, drained[1].IsZero(), "gold balance should be drained, got %s", drained[1])

	resp = doAuthed(t, app, token, http.MethodGet, "/api/v1/wallet/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cartResp struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &cartResp))
	assert.Empty(t, cartResp.Data.Items)

	// The order is retrievable.
	resp = doAuthed(t, app, token, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Refund restores the balance and removes the order.
	resp = doAuthed(t, app, token, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/refund", orderID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	restored := getBalances(t, app, token)
	assert.True(t, restored[1].Equal(goldBefore), "refund should restore %s, got %s", goldBefore, restored[1])

	resp = doAuthed(t, app, token, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestIntegration_PlaceOrder_InsufficientFunds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "broke@example.com")

	addBody, _ := json.Marshal(map[string]interface{}{
		"item_id":     1,
		"currency_id": 1,
		"price":       "999999999",
	})
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/wallet/cart", addBody)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doAuthed(t, app, token, http.MethodPost, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Contains(t, string(readBody(t, resp)), "WLT_001")
}

func TestIntegration_AddToCart_UnknownCurrency(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "currency@example.com")

	addBody, _ := json.Marshal(map[string]interface{}{
		"item_id":     1,
		"currency_id": 99,
		"price":       "10",
	})
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/wallet/cart", addBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(readBody(t, resp)), "WLT_006")
}

func TestIntegration_Exchange_InsufficientFunds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "exchange@example.com")

	exBody, _ := json.Marshal(map[string]interface{}{
		"from_currency_id": 1,
		"to_currency_id":   2,
		"rate_amount":      "3.5",
	})
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/wallet/exchange", exBody)
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
}

func TestIntegration_ExchangeBoard(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := registerAndLogin(t, app, "board@example.com")

	resp := doAuthed(t, app, token, http.MethodGet, "/api/v1/wallet/exchange", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var boardResp struct {
		Data []struct {
			From struct {
				ID int `json:"id"`
			} `json:"from"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &boardResp))
	require.Len(t, boardResp.Data, 2)
	for _, q := range boardResp.Data {
		assert.False(t, q.Amount.IsNegative())
	}
}

func TestIntegration_CatalogAndStorefront(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// Home page
	resp, err := http.Get(app.server.URL + "/api/v1/catalog/home")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Item detail carries split description properties and a quote
	resp, err = http.Get(app.server.URL + "/api/v1/catalog/items/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detailResp struct {
		Data struct {
			Item struct {
				Name string `json:"name"`
			} `json:"item"`
			Properties []string `json:"properties"`
			Quote      struct {
				CurrencyID int             `json:"currency_id"`
				Price      decimal.Decimal `json:"price"`
			} `json:"quote"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &detailResp))
	assert.Equal(t, "Iron Sword", detailResp.Data.Item.Name)
	assert.Equal(t, []string{"A trusty blade", "Damage 12", "Weight 3"}, detailResp.Data.Properties)
	assert.Contains(t, []int{1, 2}, detailResp.Data.Quote.CurrencyID)

	// Search narrowed to a category
	resp, err = http.Get(app.server.URL + "/api/v1/catalog/search?name=sword&category_id=1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var searchResp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &searchResp))
	require.Len(t, searchResp.Data, 2)

	// Storefront identity
	resp, err = http.Get(app.server.URL + "/api/v1/storefront")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var storeResp struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &storeResp))
	assert.Equal(t, "The Rusty Anvil", storeResp.Data.Name)
}

func TestIntegration_LoginRateLimit(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	loginBody, _ := json.Marshal(map[string]string{
		"email":    "limited@example.com",
		"password": "Wrongpass12",
	})

	// The login window allows 10 requests per minute per client.
	var last int
	for i := 0; i < 11; i++ {
		resp, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
		require.NoError(t, err)
		last = resp.StatusCode
		resp.Body.Close()
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

// --- Helpers ---

func registerAndLogin(t *testing.T, app *testApp, email string) string {
	t.Helper()
	regBody, _ := json.Marshal(map[string]interface{}{
		"email":    email,
		"password": "Superpass12",
		"name":     "Test",
		"surname":  "Shopper",
		"age":      30,
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "Superpass12",
	})
	resp2, err := http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&loginResp))
	return loginResp.Data.Token
}

func doAuthed(t *testing.T, app *testApp, token, method, path string, body []byte) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, app.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return b
}

func getBalances(t *testing.T, app *testApp, token string) map[int]decimal.Decimal {
	t.Helper()
	resp := doAuthed(t, app, token, http.MethodGet, "/api/v1/wallet/balances", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var balResp struct {
		Data map[int]decimal.Decimal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &balResp))
	return balResp.Data
}

func claimBonus(t *testing.T, app *testApp, token string) map[int]decimal.Decimal {
	t.Helper()
	resp := doAuthed(t, app, token, http.MethodPost, "/api/v1/wallet/bonus", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bonusResp struct {
		Data struct {
			Amounts map[int]decimal.Decimal `json:"amounts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(readBody(t, resp), &bonusResp))
	return bonusResp.Data.Amounts
}

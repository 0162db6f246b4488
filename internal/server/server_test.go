package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eco-electric-api/internal/client"
	"eco-electric-api/internal/model"
	"eco-electric-api/internal/repository"
	"eco-electric-api/internal/service"
	"eco-electric-api/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakePaymentClient struct {
	calls    int
	amount   int64
	currency string
}

func (f *fakePaymentClient) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*client.PaymentIntent, error) {
	f.calls++
	f.amount = amount
	f.currency = currency
	return &client.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

type testEnv struct {
	srv      *Server
	issuer   *token.Issuer
	userRepo repository.UserRepository
	payments *fakePaymentClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Order{},
		&model.Tool{},
		&model.Review{},
	))

	issuer := token.NewIssuer("test_secret", time.Hour)
	payments := &fakePaymentClient{}

	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	srv := NewServer(
		service.NewOrderService(orderRepo),
		service.NewUserService(userRepo, issuer),
		service.NewPaymentService(payments, "usd"),
		service.NewCatalogService(toolRepo, reviewRepo),
		issuer,
		userRepo,
	)

	return &testEnv{srv: srv, issuer: issuer, userRepo: userRepo, payments: payments}
}

func (env *testEnv) do(t *testing.T, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	env.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	raw, err := env.issuer.Issue(email)
	require.NoError(t, err)
	return raw
}

func TestUpsertUser_ReturnsRecordAndToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/users/alice@example.com",
		`{"name":"Alice","phone":"555-0101"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result model.User `json:"result"`
		Token  string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Result.Email)
	require.NotEmpty(t, resp.Token)

	id, err := env.issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", id.Email)
}

func TestListOrders_OwnerScoped(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com","order":{"tool":"drill","quantity":2}}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"email":"bob@example.com","order":{"tool":"saw","quantity":1}}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	alice := env.tokenFor(t, "alice@example.com")

	// owner match succeeds and returns only Alice's orders
	rec = env.do(t, http.MethodGet, "/api/orders?email=alice@example.com", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "alice@example.com", orders[0].Email)

	// Alice's token cannot list Bob's orders
	rec = env.do(t, http.MethodGet, "/api/orders?email=bob@example.com", "", alice)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bob@example.com")

	// no token at all
	rec = env.do(t, http.MethodGet, "/api/orders?email=alice@example.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListOrders_AllRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com","order":{"tool":"drill"}}`, "")
	env.do(t, http.MethodPost, "/api/orders",
		`{"email":"bob@example.com","order":{"tool":"saw"}}`, "")

	_, err := env.userRepo.Upsert(ctx, &model.User{Email: "root@example.com"})
	require.NoError(t, err)
	require.NoError(t, env.userRepo.SetRole(ctx, "root@example.com", model.RoleAdmin))

	rec := env.do(t, http.MethodGet, "/api/orders", "", env.tokenFor(t, "alice@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders", "", env.tokenFor(t, "root@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com","order":{"tool":"drill","quantity":2}}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// round trip
	rec = env.do(t, http.MethodGet, "/api/orders/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "alice@example.com", fetched.Email)
	assert.JSONEq(t, `{"tool":"drill","quantity":2}`, string(fetched.Items))

	// replace is a full payload swap
	rec = env.do(t, http.MethodPut, "/api/orders/1",
		`{"order":{"tool":"drill","quantity":5}}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var replaced model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replaced))
	assert.JSONEq(t, `{"tool":"drill","quantity":5}`, string(replaced.Items))

	rec = env.do(t, http.MethodDelete, "/api/orders/1", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/orders/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/orders/9999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// a syntactically invalid id reads the same as a missing one
	rec = env.do(t, http.MethodGet, "/api/orders/not-an-id", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// id 0 is not a valid identifier either
	rec = env.do(t, http.MethodGet, "/api/orders/0", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReplaceOrder_ZeroID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/orders/0",
		`{"order":{"tool":"drill"}}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// nothing may be stored under a fresh id as a side effect
	rec = env.do(t, http.MethodGet, "/api/orders/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_RejectsMissingEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/orders",
		`{"order":{"tool":"drill"}}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty object and empty list payloads read the same
	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com","order":{}}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/orders",
		`{"email":"alice@example.com","order":[]}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromoteAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, email := range []string{"root@example.com", "alice@example.com"} {
		_, err := env.userRepo.Upsert(ctx, &model.User{Email: email})
		require.NoError(t, err)
	}
	require.NoError(t, env.userRepo.SetRole(ctx, "root@example.com", model.RoleAdmin))

	// non-admin caller is rejected
	rec := env.do(t, http.MethodPut, "/api/users/admin/alice@example.com", "", env.tokenFor(t, "alice@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/users/admin/alice@example.com", "", env.tokenFor(t, "root@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/alice@example.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin":true}`, rec.Body.String())
}

func TestCheckAdmin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/nobody@example.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin":false}`, rec.Body.String())
}

func TestCreatePaymentIntent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/create-payment-intent", `{"price":19.99}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_test_secret"}`, rec.Body.String())
	assert.EqualValues(t, 1999, env.payments.amount)
	assert.Equal(t, "usd", env.payments.currency)
}

func TestCreatePaymentIntent_NonPositivePrice(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/create-payment-intent", `{"price":0}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.payments.calls)
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)

	// review creation requires a token
	rec := env.do(t, http.MethodPost, "/api/reviews",
		`{"name":"Alice","rating":5,"comment":"great drill"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/reviews",
		`{"name":"Alice","rating":5,"comment":"great drill"}`, env.tokenFor(t, "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var review model.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, "alice@example.com", review.Email)

	rec = env.do(t, http.MethodGet, "/api/reviews", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []model.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 1)
}

func TestShutdown_Graceful(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, env.srv.Shutdown(ctx))
}

func TestToolQuantityDecrement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userRepo.Upsert(ctx, &model.User{Email: "root@example.com"})
	require.NoError(t, err)
	require.NoError(t, env.userRepo.SetRole(ctx, "root@example.com", model.RoleAdmin))

	rec := env.do(t, http.MethodPost, "/api/tools",
		`{"name":"Cordless Drill","availableQuantity":10,"minOrderQuantity":1,"price":49.99}`,
		env.tokenFor(t, "root@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/tools/1/quantity", `{"quantity":3}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tool model.Tool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tool))
	assert.Equal(t, 7, tool.AvailableQuantity)
}

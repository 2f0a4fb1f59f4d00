package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/infrastructure/repository"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withOperator(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if name != "" {
			c.Set(OperatorKey, name)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, "smart-billing")
	token, _, err := jwt.GenerateAccessToken("cashier", "Front Desk")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", AuthMiddleware(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, GetOperator(c)+"/"+c.GetString(OperatorNameKey))
	})

	w := serve(r, http.MethodGet, "/", "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cashier/Front Desk", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/", "Authorization", token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/", "Authorization", "Bearer junk").Code)
}

func TestOperatorRateLimiter(t *testing.T) {
	rl := NewOperatorRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	r := gin.New()
	r.GET("/a", withOperator("alice"), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", withOperator("bob"), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/a").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/a").Code)

	w := serve(r, http.MethodGet, "/a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Each operator has its own budget
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/b").Code)
	assert.Equal(t, 2, rl.Stats()["active_clients"])
}

func TestOperatorRateLimiter_Cleanup(t *testing.T) {
	rl := NewOperatorRateLimiter(RateLimiterConfig{EntryTTL: time.Minute})
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("operator:alice")
	now = now.Add(2 * time.Minute)
	rl.getLimiter("operator:bob")
	rl.cleanup()

	assert.Equal(t, 1, rl.Stats()["active_clients"])
}

func idempotentRouter(cfg IdempotencyConfig, operator string, calls *int) *gin.Engine {
	r := gin.New()
	handler := func(c *gin.Context) {
		*calls++
		if c.Query("fail") != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"call": *calls})
	}
	r.POST("/bills", withOperator(operator), IdempotencyRequired(cfg), handler)
	r.POST("/other", withOperator(operator), IdempotencyRequired(cfg), handler)
	return r
}

func TestIdempotencyRequired(t *testing.T) {
	calls := 0
	repo := repository.NewMemoryIdempotencyRepository()
	r := idempotentRouter(IdempotencyConfig{Repo: repo}, "cashier", &calls)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/bills").Code)

	// Failures are not stored
	w := serve(r, http.MethodPost, "/bills?fail=1", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodPost, "/bills", IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"call":2}`, w.Body.String())

	w = serve(r, http.MethodPost, "/bills", IdempotencyKeyHeader, "k1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"call":2}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 2, calls)

	w = serve(r, http.MethodPost, "/other", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyRequired_KeysArePerOperator(t *testing.T) {
	calls := 0
	repo := repository.NewMemoryIdempotencyRepository()
	cfg := IdempotencyConfig{Repo: repo}

	serve(idempotentRouter(cfg, "alice", &calls), http.MethodPost, "/bills", IdempotencyKeyHeader, "same")
	w := serve(idempotentRouter(cfg, "bob", &calls), http.MethodPost, "/bills", IdempotencyKeyHeader, "same")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 2, calls)

	calls = 0
	w = serve(idempotentRouter(cfg, "", &calls), http.MethodPost, "/bills", IdempotencyKeyHeader, "same")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, calls)
}

type brokenRepo struct{}

func (brokenRepo) GetByKey(context.Context, string, string) (*entity.IdempotencyKey, error) {
	return nil, errors.New("connection refused")
}
func (brokenRepo) Create(context.Context, *entity.IdempotencyKey) error { return nil }
func (brokenRepo) DeleteExpired(context.Context) error                  { return nil }

func TestIdempotencyRequired_RepoFailure(t *testing.T) {
	calls := 0
	r := idempotentRouter(IdempotencyConfig{Repo: brokenRepo{}}, "cashier", &calls)

	w := serve(r, http.MethodPost, "/bills", IdempotencyKeyHeader, "k1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, calls)
}

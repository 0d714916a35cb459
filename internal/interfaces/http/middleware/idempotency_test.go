package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-membership.backend/pkg/redis"
)

func setupIdempotencyRouter(t *testing.T, handlerCalls *int32, status int) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	r := gin.New()
	r.POST("/api/members", IdempotencyMiddleware(), func(c *gin.Context) {
		atomic.AddInt32(handlerCalls, 1)
		c.JSON(status, gin.H{"success": status < 300, "calls": atomic.LoadInt32(handlerCalls)})
	})
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/members", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	var calls int32
	r := setupIdempotencyRouter(t, &calls, http.StatusCreated)

	first := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Hit"))

	second := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestIdempotency_DistinctKeysProcessSeparately(t *testing.T) {
	var calls int32
	r := setupIdempotencyRouter(t, &calls, http.StatusCreated)

	postWithKey(r, "key-1")
	postWithKey(r, "key-2")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_NoKeyBypassesGuard(t *testing.T) {
	var calls int32
	r := setupIdempotencyRouter(t, &calls, http.StatusCreated)

	postWithKey(r, "")
	postWithKey(r, "")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_FailedResponseIsNotReplayed(t *testing.T) {
	var calls int32
	r := setupIdempotencyRouter(t, &calls, http.StatusBadRequest)

	first := postWithKey(r, "key-1")
	require.Equal(t, http.StatusBadRequest, first.Code)

	// the lock is released, a retry reaches the handler again
	second := postWithKey(r, "key-1")
	require.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_InFlightRequestConflicts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	// simulate a concurrent request holding the processing lock
	require.NoError(t, redis.Set(t.Context(), "idempotency:/api/members:key-1", "processing", time.Minute))

	r := gin.New()
	r.POST("/api/members", IdempotencyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	w := postWithKey(r, "key-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, 2) // 2 requests per second, burst of 2

	router := gin.New()
	router.Use(RateLimit(rl))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// First two requests should succeed
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Third request should be rate limited
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Exhaust one key
	assert.True(t, rl.getLimiter("user:a").Allow())
	assert.False(t, rl.getLimiter("user:a").Allow())

	// A different key still has its own budget
	assert.True(t, rl.getLimiter("user:b").Allow())
}

func TestRateLimitKeysOnAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tm := testTokenManager()
	rl := NewRateLimiter(1, 1)

	// Wired the way the router does it: identity resolution first,
	// then the limiter, so authenticated callers get their own bucket.
	router := gin.New()
	router.Use(OptionalAuth(tm), RateLimit(rl))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		router.ServeHTTP(w, req)
		return w.Code
	}

	tokenA, err := tm.IssueAccessToken("user-a")
	assert.NoError(t, err)
	tokenB, err := tm.IssueAccessToken("user-b")
	assert.NoError(t, err)

	// Anonymous requests share the IP bucket
	assert.Equal(t, http.StatusOK, do(""))
	assert.Equal(t, http.StatusTooManyRequests, do(""))

	// Each authenticated user has an independent bucket, unaffected by
	// the exhausted IP bucket
	assert.Equal(t, http.StatusOK, do(tokenA))
	assert.Equal(t, http.StatusOK, do(tokenB))
	assert.Equal(t, http.StatusTooManyRequests, do(tokenA))
}

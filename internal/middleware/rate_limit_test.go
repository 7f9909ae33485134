package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func limitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/recipes", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	}, rl.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	client := setupRedis(t)
	rl := NewRecipeCreationRateLimiter(client, 2, time.Hour, zap.NewNop())
	r := limitedRouter(rl)

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodPost, "/recipes", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "2", last.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestRateLimitSeparateWindows(t *testing.T) {
	client := setupRedis(t)
	rl := NewImageUploadRateLimiter(client, 1, time.Minute, zap.NewNop())
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }

	allowed, _, _, err := rl.IsAllowed(ctx, "7")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _, err = rl.IsAllowed(ctx, "7")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, _, err = rl.IsAllowed(ctx, "8")
	require.NoError(t, err)
	assert.True(t, allowed)

	rl.now = func() time.Time { return base.Add(time.Minute) }
	allowed, _, _, err = rl.IsAllowed(ctx, "7")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	r := limitedRouter(NewRecipeCreationRateLimiter(client, 1, time.Hour, zap.NewNop()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimitRequiresUser(t *testing.T) {
	rl := NewRecipeCreationRateLimiter(nil, 1, time.Hour, zap.NewNop())
	r := gin.New()
	r.POST("/recipes", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/api"
	"github.com/dshills/qfscore/internal/cache"
	"github.com/dshills/qfscore/internal/store/memory"
)

// skipUnlessIntegration skips the test unless QFSCORE_INTEGRATION=1.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("QFSCORE_INTEGRATION") != "1" {
		t.Skip("skipping integration test (set QFSCORE_INTEGRATION=1 to run)")
	}
}

// redisClient connects to REDIS_ADDR, defaulting to localhost.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis ping %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Serves a donor score through the router backed by a real Redis cache.
func TestIntegrationDonorScoreRedisCache(t *testing.T) {
	skipUnlessIntegration(t)

	s, err := memory.FromBatch(loadRound(t))
	if err != nil {
		t.Fatal(err)
	}
	rc := cache.NewRedis(redisClient(t))

	// A unique profile name keeps keys from earlier runs out of the way.
	prof := "it-" + uuid.NewString()
	h := api.NewHandler(zap.NewNop(), api.Options{Donors: s, Cache: rc, CacheTTL: time.Minute})
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(zap.NewNop(), h)

	get := func() map[string]any {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/donors/alice/trust-score", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var m map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
			t.Fatal(err)
		}
		return m
	}

	ctx := context.Background()
	first := get()
	if first["totalScore"] != float64(96) {
		t.Errorf("totalScore = %v, want 96", first["totalScore"])
	}
	second := get()
	if second["cached"] != true {
		t.Errorf("second request should be cached: %v", second)
	}

	got, ok, err := rc.Get(ctx, cache.DonorKey("default", "alice"))
	if err != nil || !ok {
		t.Fatalf("cache lookup: ok=%v err=%v", ok, err)
	}
	if got.TotalScore != 96 {
		t.Errorf("cached TotalScore = %d, want 96", got.TotalScore)
	}

	// Set and read back under an isolated key.
	if err := rc.Set(ctx, cache.DonorKey(prof, "alice"), got, time.Second); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := rc.Get(ctx, cache.DonorKey(prof, "alice")); !ok {
		t.Error("expected isolated key to be present")
	}
}

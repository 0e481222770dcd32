package testkit

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"inkarena/internal/platform/store"
)

// KV starts an in-process redis and returns a bound KV seam.
// The clock only advances via mr.FastForward, which is what TTL tests want.
func KV(t *testing.T) (store.KV, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisKV(client), mr
}

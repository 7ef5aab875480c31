package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheDeleteByPatternPrefix(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(16))
	defer mc.Close()
	ctx := context.Background()

	keys := []string{"resp:model", "resp:trends:7", "historical:twitter:30"}
	for _, k := range keys {
		if err := mc.Set(ctx, k, "v", time.Minute); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}

	if err := mc.DeleteByPattern(ctx, BuildPattern("resp:")); err != nil {
		t.Fatalf("DeleteByPattern: %v", err)
	}

	for _, k := range []string{"resp:model", "resp:trends:7"} {
		if ok, _ := mc.Exists(ctx, k); ok {
			t.Errorf("%q should be gone", k)
		}
	}
	if ok, _ := mc.Exists(ctx, "historical:twitter:30"); !ok {
		t.Error("unrelated key dropped by prefix invalidation")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ok, err := mc.Expire(ctx, "k", -time.Second); err != nil || !ok {
		t.Fatalf("Expire = %v, %v", ok, err)
	}

	var dest interface{}
	if err := mc.Get(ctx, "k", &dest); err != ErrCacheMiss {
		t.Fatalf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want hit", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() after Delete = hit, want miss")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	// Negative TTL means no expiry is recorded (ttl <= 0), so this hits.
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Error("Get() with ttl<=0 = miss, want hit (no expiry)")
	}
}

func TestFileCache_ExpiredEntryIsMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() after expiry = hit, want miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get() = ok=%v err=%v, want miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestHash_Deterministic(t *testing.T) {
	a := Hash([]byte("snapshot"))
	b := Hash([]byte("snapshot"))
	if a != b {
		t.Error("Hash() differs for identical input")
	}
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if Hash([]byte("other")) == a {
		t.Error("Hash() collides for different input")
	}
}

func TestHashJSON(t *testing.T) {
	type snap struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	h1, err := HashJSON([]snap{{Name: "a", Version: "1"}})
	if err != nil {
		t.Fatalf("HashJSON() error = %v", err)
	}
	h2, err := HashJSON([]snap{{Name: "a", Version: "1"}})
	if err != nil {
		t.Fatalf("HashJSON() error = %v", err)
	}
	if h1 != h2 {
		t.Error("HashJSON() differs for identical input")
	}

	h3, _ := HashJSON([]snap{{Name: "a", Version: "2"}})
	if h3 == h1 {
		t.Error("HashJSON() identical for different input")
	}
}

func TestPlanKey(t *testing.T) {
	if got := PlanKey("abc"); got != "plan:abc" {
		t.Errorf("PlanKey() = %q, want %q", got, "plan:abc")
	}
}

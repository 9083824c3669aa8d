package kvstore

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key is a miss, not an error", func(t *testing.T) {
		s := NewMemoryStore()
		v, ok, err := s.Get(ctx, "nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || v != "" {
			t.Errorf("expected miss, got ok=%v value=%q", ok, v)
		}
	})

	t.Run("set is immediately visible", func(t *testing.T) {
		s := NewMemoryStore()
		if err := s.Set(ctx, "cart", `{"id":"c1"}`); err != nil {
			t.Fatalf("set: %v", err)
		}
		v, ok, _ := s.Get(ctx, "cart")
		if !ok || v != `{"id":"c1"}` {
			t.Errorf("expected stored value, got ok=%v value=%q", ok, v)
		}
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		s := NewMemoryStore()
		_ = s.Set(ctx, "cart", "x")
		if err := s.Remove(ctx, "cart"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if _, ok, _ := s.Get(ctx, "cart"); ok {
			t.Error("expected key to be gone")
		}
	})

	t.Run("watchers observe writes and removals", func(t *testing.T) {
		s := NewMemoryStore()
		var keys []string
		s.Watch(func(key string) { keys = append(keys, key) })

		_ = s.Set(ctx, "a", "1")
		_ = s.Remove(ctx, "a")

		if len(keys) != 2 || keys[0] != "a" || keys[1] != "a" {
			t.Errorf("expected [a a], got %v", keys)
		}
	})
}

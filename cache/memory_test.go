package cache

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Get on empty store
	val, ok := store.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if val != nil {
		t.Error("Get on empty store should return nil value")
	}

	key := "employees"
	value := []byte(`[{"id":"1"}]`)
	if err := store.Set(ctx, key, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after Delete should return ok=false")
	}

	// Delete is idempotent
	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete on non-existent key should not error, got: %v", err)
	}
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("v1"))
	_ = store.Set(ctx, "k", []byte("v2"))

	got, _ := store.Get(ctx, "k")
	if string(got) != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestMemoryStore_Keys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		_ = store.Set(ctx, k, []byte(k))
	}

	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	sort.Strings(keys)
	if fmt.Sprint(keys) != "[a b c]" {
		t.Errorf("Keys = %v, want [a b c]", keys)
	}
}

func TestMemoryStore_Reset(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "employees", []byte("1"))
	_ = store.Set(ctx, `paginatedTransactions@{"page":0}`, []byte("2"))

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	for _, k := range []string{"employees", `paginatedTransactions@{"page":0}`} {
		if _, ok := store.Get(ctx, k); ok {
			t.Errorf("key %q survived Reset", k)
		}
	}
	if store.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", store.Len())
	}

	// Store is usable after Reset
	_ = store.Set(ctx, "employees", []byte("3"))
	if _, ok := store.Get(ctx, "employees"); !ok {
		t.Error("Set after Reset should be visible")
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = store.Set(ctx, key, []byte("v"))
			store.Get(ctx, key)
			_, _ = store.Keys(ctx)
			if i%10 == 0 {
				_ = store.Delete(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte(`{"a":1}`)
	if err := store.Set(ctx, "employees", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[5] = '9'

	got, _ := store.Get(ctx, "employees")
	if string(got) != `{"a":1}` {
		t.Fatalf("after changing the Set argument, Get = %s, want {\"a\":1}", got)
	}

	got[5] = '9'
	again, _ := store.Get(ctx, "employees")
	if string(again) != `{"a":1}` {
		t.Errorf("after changing a Get result, Get = %s, want {\"a\":1}", again)
	}
}

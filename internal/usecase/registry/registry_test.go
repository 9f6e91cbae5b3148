package registry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistry_PutGetDelete(t *testing.T) {
	r := New[int]()

	r.Put("a", 1)
	if v, ok := r.Get("a"); !ok || v != 1 {
		t.Fatalf("expected 1, got %d (%v)", v, ok)
	}

	r.Delete("a")
	if _, ok := r.Get("a"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestRegistry_PutIfAbsent(t *testing.T) {
	r := New[string]()

	if !r.PutIfAbsent("k", "first") {
		t.Fatal("first PutIfAbsent should succeed")
	}
	if r.PutIfAbsent("k", "second") {
		t.Fatal("second PutIfAbsent should fail")
	}
	if v, _ := r.Get("k"); v != "first" {
		t.Fatalf("expected first value kept, got %q", v)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			r.Put(key, n)
			if v, ok := r.Get(key); !ok || v != n {
				t.Errorf("lost write for %s", key)
			}
		}(i)
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", r.Len())
	}
}

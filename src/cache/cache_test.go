package cache_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/cache"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openStore(t *testing.T) *cache.Store {
	store, err := cache.Open("", nil)
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSetGet(t *testing.T) {
	store := openStore(t)

	var missing entry
	if store.Get("absent", &missing) {
		t.Fatal("expected miss for unknown key")
	}

	store.Set("k", entry{Name: "a", Count: 1})
	var got entry
	if !store.Get("k", &got) {
		t.Fatal("expected hit")
	}
	if got.Name != "a" || got.Count != 1 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestStoreSetReplacesWholeEntry(t *testing.T) {
	store := openStore(t)

	store.Set("k", entry{Name: "a", Count: 1})
	store.Set("k", entry{Name: "b"})

	var got entry
	if !store.Get("k", &got) {
		t.Fatal("expected hit")
	}
	// the second Set replaces the document; nothing of the first survives
	if got.Name != "b" || got.Count != 0 {
		t.Fatalf("expected full replacement, got %+v", got)
	}
}

func TestStoreInvalidateByPrefix(t *testing.T) {
	store := openStore(t)
	p1 := uuid.New()
	p2 := uuid.New()
	r1 := uuid.New()

	store.Set(cache.RequestList(p1), []entry{{Name: "a"}})
	store.Set(cache.RequestDetail(p1, r1), entry{Name: "a"})
	store.Set(cache.ProposalList(p1), []entry{{Name: "b"}})
	store.Set(cache.RequestList(p2), []entry{{Name: "c"}})

	// a list key is also the prefix of nothing else; detail keys share the
	// project-scoped prefix with themselves only
	store.Invalidate(cache.RequestList(p1), cache.RequestDetail(p1, r1))

	var out []entry
	if store.Get(cache.RequestList(p1), &out) {
		t.Fatal("request list should be invalidated")
	}
	var one entry
	if store.Get(cache.RequestDetail(p1, r1), &one) {
		t.Fatal("request detail should be invalidated")
	}
	if !store.Get(cache.ProposalList(p1), &out) {
		t.Fatal("proposal keys must survive a request-side invalidation")
	}
	if !store.Get(cache.RequestList(p2), &out) {
		t.Fatal("other projects must be untouched")
	}
}

func TestStoreDropsUndecodableEntry(t *testing.T) {
	store := openStore(t)

	store.Set("k", "just a string")

	var got entry
	if store.Get("k", &got) {
		t.Fatal("expected miss for undecodable entry")
	}

	// the stale entry is gone entirely, not just unreadable
	var raw string
	if store.Get("k", &raw) {
		t.Fatal("expected entry to be dropped after decode failure")
	}
}

func TestKeyBuildersAreHierarchical(t *testing.T) {
	p := uuid.New()
	r := uuid.New()

	list := cache.RequestList(p)
	detail := cache.RequestDetail(p, r)
	if list == detail {
		t.Fatal("list and detail keys must differ")
	}
	if cache.RequestList(p) != list {
		t.Fatal("key builders must be deterministic")
	}
	if cache.Dashboard(p) == cache.ProjectDetail(p) {
		t.Fatal("dashboard and project detail keys must differ")
	}
}

package predicates

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryInterning(t *testing.T) {
	reg := NewRegistry()
	a, err := reg.Get("PColor")
	if err != nil {
		t.Fatal(err)
	}
	b, err := reg.Get("PColor")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("not interned")
	}
	if *a != MustNew("PColor") {
		t.Fatal()
	}
	if reg.Len() != 1 {
		t.Fatalf("got %d", reg.Len())
	}

	// registries are isolated
	other := NewRegistry()
	c, err := other.Get("PColor")
	if err != nil {
		t.Fatal(err)
	}
	if c == a {
		t.Fatal("shared instance")
	}
	if *c != *a {
		t.Fatal()
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("bogus")
	if !errors.Is(err, ErrUnknownPredicate) {
		t.Fatalf("got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatal()
	}
}

func TestRegistryParseString(t *testing.T) {
	reg := NewRegistry()
	preds, err := reg.ParseString(" r PColor  1 index\tAPour ")
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 5 {
		t.Fatalf("got %v", preds)
	}
	if preds[4].Type() != TypeAction {
		t.Fatalf("got %v", preds[4].Type())
	}
	_, err = reg.ParseString("r what")
	if !errors.Is(err, ErrUnknownPredicate) {
		t.Fatalf("got %v", err)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	results := make([]*Predicate, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := reg.Get("index")
			if err != nil {
				panic(err)
			}
			results[i] = p
		}()
	}
	wg.Wait()
	for _, p := range results {
		if p != results[0] {
			t.Fatal("not interned")
		}
	}
}

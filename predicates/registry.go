package predicates

import (
	"strings"
	"sync"
)

// Registry interns predicates so that each distinct name has one canonical instance.
type Registry struct {
	mu    sync.RWMutex
	preds map[string]*Predicate
}

func NewRegistry() *Registry {
	return &Registry{
		preds: make(map[string]*Predicate),
	}
}

func (r *Registry) Get(name string) (*Predicate, error) {
	r.mu.RLock()
	p, ok := r.preds[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	pred, err := New(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok = r.preds[name]; ok {
		return p, nil
	}
	p = &pred
	r.preds[name] = p
	return p, nil
}

func (r *Registry) Parse(names ...string) ([]Predicate, error) {
	ret := make([]Predicate, 0, len(names))
	for _, name := range names {
		p, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, *p)
	}
	return ret, nil
}

// ParseString parses a whitespace separated program.
func (r *Registry) ParseString(program string) ([]Predicate, error) {
	return r.Parse(strings.Fields(program)...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.preds)
}

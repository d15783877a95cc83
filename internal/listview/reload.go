package listview

import (
	"sort"
	"sync"
)

// ReloadToken is an invalidation counter owned by a parent view. A
// successful mutation bumps it once; every bound controller refetches.
type ReloadToken struct {
	mu    sync.Mutex
	value uint64
	next  int
	subs  map[int]func(uint64)
}

func NewReloadToken() *ReloadToken {
	return &ReloadToken{subs: make(map[int]func(uint64))}
}

func (t *ReloadToken) Value() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Bump increments the token and notifies subscribers in subscription order.
// Subscribers run on the caller's goroutine.
func (t *ReloadToken) Bump() uint64 {
	t.mu.Lock()
	t.value++
	v := t.value
	ids := make([]int, 0, len(t.subs))
	for id := range t.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(uint64), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, t.subs[id])
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return v
}

// Subscribe registers fn and returns the function that removes it.
func (t *ReloadToken) Subscribe(fn func(uint64)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.subs == nil {
		t.subs = make(map[int]func(uint64))
	}
	id := t.next
	t.next++
	t.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

func (t *ReloadToken) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

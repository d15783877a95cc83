package reports

import (
	"context"
	"errors"
	"sync"
)

// Snapshot is what a report screen renders.
type Snapshot struct {
	Kind    Kind   `json:"kind"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Result  Result `json:"result"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// View holds the state of one report screen. Every load clears the previous
// rows first, so a kind switch never shows the old kind's data.
type View struct {
	adapter *Adapter

	mu     sync.Mutex
	seq    uint64
	kind   Kind
	page   int
	size   int
	result Result
	busy   bool
	err    *FetchError
}

func NewView(a *Adapter, kind Kind, size int) *View {
	if size <= 0 {
		size = 20
	}
	return &View{adapter: a, kind: kind, size: size, result: emptyResult(kind)}
}

// SetKind switches report and rewinds to page 0.
func (v *View) SetKind(ctx context.Context, k Kind) Snapshot {
	v.mu.Lock()
	size := v.size
	v.mu.Unlock()
	return v.Load(ctx, k, 0, size)
}

func (v *View) SetPage(ctx context.Context, page int) Snapshot {
	v.mu.Lock()
	kind, size := v.kind, v.size
	v.mu.Unlock()
	return v.Load(ctx, kind, page, size)
}

// Load fetches kind/page/size and applies it if no newer load started in
// the meantime. The returned snapshot is the view's state afterwards.
func (v *View) Load(ctx context.Context, kind Kind, page, size int) Snapshot {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = v.size
	}

	v.mu.Lock()
	v.seq++
	seq := v.seq
	v.kind, v.page, v.size = kind, page, size
	v.result = emptyResult(kind)
	v.err = nil
	v.busy = true
	v.mu.Unlock()

	res, err := v.adapter.Load(ctx, kind, page, size)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq == v.seq {
		v.busy = false
		v.result = res
		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				fe = &FetchError{Kind: kind, Message: DefaultMessage, Err: err}
			}
			v.err = fe
			v.result = emptyResult(kind)
		}
	}
	return v.snapshotLocked()
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	s := Snapshot{
		Kind:    v.kind,
		Page:    v.page,
		Size:    v.size,
		Result:  v.result,
		Loading: v.busy,
	}
	if v.err != nil {
		s.Error = v.err.Message
	}
	return s
}

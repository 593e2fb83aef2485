package transport

import (
	"sync"

	"github.com/l3montree-dev/honeypot-dashboard/packages/store"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

// ViewStore keeps the recent snapshots of every view.
type ViewStore struct {
	historySize int
	views       map[string]store.Store[types.Snapshot]
	lock        sync.Mutex
	msgs        chan types.Snapshot
}

func NewViewStore(historySize int) *ViewStore {
	v := &ViewStore{
		historySize: historySize,
		views:       make(map[string]store.Store[types.Snapshot]),
		msgs:        make(chan types.Snapshot, listenBuffer),
	}
	go func() {
		for msg := range v.msgs {
			v.Store(msg)
		}
	}()
	return v
}

func (v *ViewStore) Listen() chan<- types.Snapshot {
	return v.msgs
}

func (v *ViewStore) view(name string) store.Store[types.Snapshot] {
	v.lock.Lock()
	defer v.lock.Unlock()
	s, ok := v.views[name]
	if !ok {
		s = store.NewFIFO[types.Snapshot](v.historySize)
		v.views[name] = s
	}
	return s
}

func (v *ViewStore) Store(snapshot types.Snapshot) {
	v.view(snapshot.View).Store(snapshot) // nolint
}

func (v *ViewStore) Latest(view string) (types.Snapshot, bool) {
	return store.Last(v.view(view))
}

// History returns the kept snapshots of view, oldest first.
func (v *ViewStore) History(view string) []types.Snapshot {
	return v.view(view).Get()
}

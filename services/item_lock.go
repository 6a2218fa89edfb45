package services

import (
	"sync"
	"time"

	"gudang-app/types"
)

// itemLocks menserialisasi alokasi per item_code. Alokasi item berbeda boleh
// jalan paralel; alokasi item yang sama antri di channel berkapasitas satu.
type itemLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[string]chan struct{})}
}

func (l *itemLocks) get(itemCode string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[itemCode]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[itemCode] = ch
	}
	return ch
}

// acquire menunggu giliran alokasi untuk satu item, maksimal selama timeout.
func (l *itemLocks) acquire(itemCode string, timeout time.Duration) error {
	select {
	case l.get(itemCode) <- struct{}{}:
		return nil
	case <-time.After(timeout):
		return &types.LockTimeoutError{ItemCode: itemCode}
	}
}

func (l *itemLocks) release(itemCode string) {
	<-l.get(itemCode)
}

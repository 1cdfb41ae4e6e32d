package service

import (
	"sync"
	"time"

	"backoffice/internal/model"
)

// OrderBoard is the in-memory view of orders the console last fetched. It is patched after confirmed
// writes instead of being re-fetched; concurrent writers to the same order resolve last-write-wins.
type OrderBoard struct {
	mu     sync.RWMutex
	ids    []string
	orders map[string]model.Order
}

func NewOrderBoard() *OrderBoard {
	return &OrderBoard{orders: make(map[string]model.Order)}
}

// ReplaceAll swaps the board for a freshly fetched list, keeping its order.
func (b *OrderBoard) ReplaceAll(orders []model.Order) {
	ids := make([]string, 0, len(orders))
	byID := make(map[string]model.Order, len(orders))
	for _, o := range orders {
		if _, dup := byID[o.ID]; !dup {
			ids = append(ids, o.ID)
		}
		byID[o.ID] = o
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ids = ids
	b.orders = byID
}

// Put inserts or replaces one order. New orders go to the top of the list.
func (b *OrderBoard) Put(o model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orders[o.ID]; !ok {
		b.ids = append([]string{o.ID}, b.ids...)
	}
	b.orders[o.ID] = o
}

func (b *OrderBoard) Get(id string) (model.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[id]
	return o, ok
}

func (b *OrderBoard) List() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Order, 0, len(b.ids))
	for _, id := range b.ids {
		out = append(out, b.orders[id])
	}
	return out
}

// PatchStatus sets the status of a known order and reports whether it was on the board.
func (b *OrderBoard) PatchStatus(id string, status model.Status, at time.Time) (model.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[id]
	if !ok {
		return model.Order{}, false
	}
	o.Status = status
	o.UpdatedAt = at
	b.orders[id] = o
	return o, true
}

func (b *OrderBoard) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.orders[id]; !ok {
		return
	}
	delete(b.orders, id)
	for i, existing := range b.ids {
		if existing == id {
			b.ids = append(b.ids[:i], b.ids[i+1:]...)
			break
		}
	}
}

package orders

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps orders in process memory. It backs tests and local
// development when no Mongo URI is configured. The mutex only makes it safe
// under the server's request concurrency; like the document store it provides
// no cross-request ordering guarantees.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]Order{}}
}

func (s *MemoryStore) InsertOrder(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[order.ID] = order
	return nil
}

func (s *MemoryStore) GetOrderByID(_ context.Context, id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.m[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return order, nil
}

func (s *MemoryStore) ListOrdersByUser(_ context.Context, userID string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.m {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ListAllOrders(_ context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.m))
	for _, o := range s.m {
		out = append(out, o)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) SetOrderPaid(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.m[order.ID]
	if !ok {
		return ErrNotFound
	}
	stored.IsPaid = order.IsPaid
	stored.PaidAt = order.PaidAt
	stored.PaymentResult = order.PaymentResult
	stored.UpdatedAt = order.UpdatedAt
	s.m[order.ID] = stored
	return nil
}

func (s *MemoryStore) SetOrderDelivered(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.m[order.ID]
	if !ok {
		return ErrNotFound
	}
	stored.IsDelivered = order.IsDelivered
	stored.DeliveredAt = order.DeliveredAt
	stored.UpdatedAt = order.UpdatedAt
	s.m[order.ID] = stored
	return nil
}

func sortNewestFirst(out []Order) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}

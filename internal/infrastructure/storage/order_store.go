package storage

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// OrderStore persists the ordered order collection as a single JSON array.
// There is no long-lived in-memory copy: every operation loads the document
// fresh and every mutation serializes the whole collection back. The mutex
// serializes the load-modify-store sequence across concurrent handlers.
type OrderStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewOrderStore(path string, log zerolog.Logger) *OrderStore {
	return &OrderStore{path: path, log: log}
}

// load reads the full collection. Corruption is fail-soft: an unparsable
// document is logged and treated as empty rather than propagated.
func (s *OrderStore) load() []domain.Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("failed to read order document, treating as empty")
		}
		return []domain.Order{}
	}
	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt order document, treating as empty")
		return []domain.Order{}
	}
	return orders
}

func (s *OrderStore) save(orders []domain.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// LoadAll returns the collection in insertion order.
func (s *OrderStore) LoadAll(_ context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Append adds one order to the end of the collection.
func (s *OrderStore) Append(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	return s.save(append(orders, o))
}

// UpdateStatus changes only the status field of the matching record.
func (s *OrderStore) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, domain.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	for i := range orders {
		if orders[i].ID == id {
			orders[i].Status = status
			return true, s.save(orders)
		}
	}
	return false, nil
}

// Delete removes the matching record and returns what remains. Absent ids
// leave the collection untouched.
func (s *OrderStore) Delete(_ context.Context, id string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.load()
	remaining := make([]domain.Order, 0, len(orders))
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, o)
	}
	if !found {
		return orders, nil
	}
	return remaining, s.save(remaining)
}

// FindByID returns the matching record or domain.ErrOrderNotFound.
func (s *OrderStore) FindByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.load() {
		if o.ID == id {
			clone := o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

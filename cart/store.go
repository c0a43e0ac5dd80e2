package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrNoData is returned by a Persister when nothing has been saved yet.
var ErrNoData = errors.New("cart: no stored data")

// Persister is durable storage for one serialized cart.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store owns the line items of one shopper. All mutations go through its
// methods so the one-line-per-Key invariant holds; after every mutation the
// full collection is written to the Persister.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	persister Persister
	logger    *zap.Logger
}

// NewStore rehydrates the cart once from p. Missing or unreadable data
// yields an empty cart; it never fails.
func NewStore(ctx context.Context, p Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{persister: p, logger: logger}

	data, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrNoData):
		return s
	case err != nil:
		logger.Warn("cart load failed, starting empty", zap.Error(err))
		return s
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("stored cart unparsable, starting empty", zap.Error(err))
		return s
	}
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		s.merge(it, it.Quantity)
	}
	return s
}

// MaxLineQuantity caps a single line. Larger requests are clamped to it.
const MaxLineQuantity = 99

func clampQuantity(q int) int {
	if q > MaxLineQuantity {
		return MaxLineQuantity
	}
	return q
}

// Add puts quantity units of the snapshot's variant in the cart, merging with
// an existing line of the same Key. Quantities below 1 count as 1 and a line
// never grows past MaxLineQuantity.
func (s *Store) Add(ctx context.Context, snapshot LineItem, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.merge(snapshot, quantity)
	return s.persist(ctx)
}

func (s *Store) merge(snapshot LineItem, quantity int) {
	for i := range s.items {
		if s.items[i].Key() == snapshot.Key() {
			s.items[i].Quantity = clampQuantity(s.items[i].Quantity + clampQuantity(quantity))
			return
		}
	}
	snapshot.Quantity = clampQuantity(quantity)
	s.items = append(s.items, snapshot)
}

// UpdateQuantity sets the quantity of a line. Below 1 the line is removed;
// above MaxLineQuantity it is clamped. Stock is checked at checkout.
func (s *Store) UpdateQuantity(ctx context.Context, key Key, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.remove(key)
		return s.persist(ctx)
	}
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity = clampQuantity(quantity)
			return s.persist(ctx)
		}
	}
	return nil
}

// Remove deletes the line with key. Absent keys are a no-op.
func (s *Store) Remove(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.remove(key) {
		return nil
	}
	return s.persist(ctx)
}

func (s *Store) remove(key Key) bool {
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persist(ctx)
}

// ItemCount is the sum of all quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.persister.Save(ctx, data); err != nil {
		s.logger.Error("cart save failed", zap.Error(err))
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func line(productID, variantID uint, price int64) LineItem {
	return LineItem{
		ProductID:   productID,
		ProductName: "Runner",
		VariantID:   variantID,
		Size:        "41",
		Price:       decimal.NewFromInt(price),
	}
}

func newTestStore(t *testing.T) (*Store, *MemoryPersister) {
	t.Helper()
	p := NewMemoryPersister(nil)
	return NewStore(context.Background(), p, nil), p
}

func TestAdd_MergesSameKey(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for _, q := range []int{1, 2, 4} {
		if err := s.Add(ctx, line(1, 10, 500), q); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", items[0].Quantity)
	}
}

func TestAdd_DistinctVariantsAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_ = s.Add(ctx, line(1, 10, 500), 1)
	_ = s.Add(ctx, line(1, 11, 500), 1)
	_ = s.Add(ctx, line(2, 10, 500), 1)

	if s.Len() != 3 {
		t.Errorf("expected 3 lines, got %d", s.Len())
	}
}

func TestAdd_QuantityBelowOneCountsAsOne(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_ = s.Add(ctx, line(1, 10, 500), 0)
	_ = s.Add(ctx, line(1, 10, 500), -3)

	if got := s.Items()[0].Quantity; got != 2 {
		t.Errorf("expected quantity 2, got %d", got)
	}
}

func TestAdd_MergeNeverOverflows(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	if err := s.Add(ctx, line(1, 10, 500), math.MaxInt); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, line(1, 10, 500), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := s.Items()
	if len(items) != 1 || items[0].Quantity != MaxLineQuantity {
		t.Fatalf("expected one line at %d, got %+v", MaxLineQuantity, items)
	}
	totals := Compute(items, "dhaka", DefaultShippingTable())
	if totals.Subtotal.IsNegative() || !totals.Subtotal.Equal(decimal.NewFromInt(500*MaxLineQuantity)) {
		t.Errorf("unexpected subtotal %s", totals.Subtotal)
	}
}

func TestNewStore_ClampsStoredQuantity(t *testing.T) {
	stored, _ := json.Marshal([]LineItem{{ProductID: 1, VariantID: 10, Price: decimal.NewFromInt(5), Quantity: math.MaxInt}})
	s := NewStore(context.Background(), NewMemoryPersister(stored), nil)

	if items := s.Items(); len(items) != 1 || items[0].Quantity != MaxLineQuantity {
		t.Errorf("expected stored line clamped to %d, got %+v", MaxLineQuantity, items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{"set higher", 9, 1, 9},
		{"set to one", 1, 1, 1},
		{"zero removes", 0, 0, 0},
		{"negative removes", -2, 0, 0},
		{"above cap clamps", MaxLineQuantity + 1, 1, MaxLineQuantity},
		{"max int clamps", math.MaxInt, 1, MaxLineQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestStore(t)
			_ = s.Add(ctx, line(1, 10, 500), 3)

			if err := s.UpdateQuantity(ctx, Key{1, 10}, tt.quantity); err != nil {
				t.Fatalf("update: %v", err)
			}

			items := s.Items()
			if len(items) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d", tt.wantLines, len(items))
			}
			if tt.wantLines == 1 && items[0].Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, items[0].Quantity)
			}
			for _, it := range items {
				if it.Quantity < 1 {
					t.Errorf("line %+v has quantity below 1", it.Key())
				}
			}
		})
	}
}

func TestUpdateQuantity_UnknownKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_ = s.Add(ctx, line(1, 10, 500), 1)

	if err := s.UpdateQuantity(ctx, Key{9, 9}, 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.ItemCount() != 1 {
		t.Errorf("expected item count 1, got %d", s.ItemCount())
	}
}

func TestRemove_AbsentKeyIsNotAnError(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Remove(context.Background(), Key{1, 1}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestItemCount_TracksEveryMutation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_ = s.Add(ctx, line(1, 10, 500), 2)
	if s.ItemCount() != 2 {
		t.Errorf("after add: expected 2, got %d", s.ItemCount())
	}
	_ = s.Add(ctx, line(2, 20, 100), 3)
	if s.ItemCount() != 5 {
		t.Errorf("after second add: expected 5, got %d", s.ItemCount())
	}
	_ = s.UpdateQuantity(ctx, Key{1, 10}, 1)
	if s.ItemCount() != 4 {
		t.Errorf("after update: expected 4, got %d", s.ItemCount())
	}
	_ = s.Remove(ctx, Key{2, 20})
	if s.ItemCount() != 1 {
		t.Errorf("after remove: expected 1, got %d", s.ItemCount())
	}
	_ = s.Clear(ctx)
	if s.ItemCount() != 0 {
		t.Errorf("after clear: expected 0, got %d", s.ItemCount())
	}
}

func TestPersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)

	_ = s.Add(ctx, line(1, 10, 500), 2)

	var stored []LineItem
	if err := json.Unmarshal(p.Bytes(), &stored); err != nil {
		t.Fatalf("stored data not a JSON array: %v", err)
	}
	if len(stored) != 1 || stored[0].Quantity != 2 {
		t.Errorf("unexpected stored cart %+v", stored)
	}

	_ = s.Clear(ctx)
	if string(p.Bytes()) != "[]" {
		t.Errorf("expected empty JSON array after clear, got %s", p.Bytes())
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, p := newTestStore(t)
	_ = s.Add(ctx, line(1, 10, 500), 3)
	_ = s.Add(ctx, line(2, 20, 120), 1)
	_ = s.Add(ctx, line(3, 30, 75), 2)
	_ = s.Remove(ctx, Key{2, 20})

	reloaded := NewStore(ctx, NewMemoryPersister(p.Bytes()), nil)

	want := quantitiesByKey(s.Items())
	got := quantitiesByKey(reloaded.Items())
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for k, q := range want {
		if got[k] != q {
			t.Errorf("key %+v: expected quantity %d, got %d", k, q, got[k])
		}
	}
	for _, it := range reloaded.Items() {
		if !it.Price.Equal(decimal.NewFromInt(map[uint]int64{1: 500, 3: 75}[it.ProductID])) {
			t.Errorf("price for product %d not preserved: %s", it.ProductID, it.Price)
		}
	}
}

func quantitiesByKey(items []LineItem) map[Key]int {
	out := map[Key]int{}
	for _, it := range items {
		out[it.Key()] = it.Quantity
	}
	return out
}

func TestNewStore_CorruptDataStartsEmpty(t *testing.T) {
	s := NewStore(context.Background(), NewMemoryPersister([]byte("{not json")), nil)
	if s.Len() != 0 {
		t.Errorf("expected empty cart, got %d lines", s.Len())
	}
}

func TestNewStore_DropsInvalidAndMergesDuplicateStoredLines(t *testing.T) {
	raw := `[{"product_id":1,"variant_id":2,"price":"10","quantity":2},
		{"product_id":1,"variant_id":2,"price":"10","quantity":3},
		{"product_id":5,"variant_id":6,"price":"10","quantity":0}]`

	s := NewStore(context.Background(), NewMemoryPersister([]byte(raw)), nil)

	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Errorf("expected one merged line of 5, got %+v", items)
	}
}

type failingLoader struct{}

func (failingLoader) Load(context.Context) ([]byte, error) { return nil, errors.New("disk gone") }
func (failingLoader) Save(context.Context, []byte) error   { return nil }

func TestNewStore_LoadErrorStartsEmpty(t *testing.T) {
	s := NewStore(context.Background(), failingLoader{}, nil)
	if s.Len() != 0 {
		t.Errorf("expected empty cart, got %d lines", s.Len())
	}
}

func TestSaveFailureStillAppliesMutation(t *testing.T) {
	p := NewMemoryPersister(nil)
	p.SaveErr = errors.New("quota exceeded")
	s := NewStore(context.Background(), p, nil)

	err := s.Add(context.Background(), line(1, 10, 500), 1)

	if err == nil {
		t.Fatal("expected save error")
	}
	if s.ItemCount() != 1 {
		t.Errorf("expected mutation applied, item count %d", s.ItemCount())
	}
}

func TestItems_ReturnsCopyInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_ = s.Add(ctx, line(3, 1, 1), 1)
	_ = s.Add(ctx, line(1, 1, 1), 1)
	_ = s.Add(ctx, line(2, 1, 1), 1)

	items := s.Items()
	order := []uint{items[0].ProductID, items[1].ProductID, items[2].ProductID}
	if order[0] != 3 || order[1] != 1 || order[2] != 2 {
		t.Errorf("expected insertion order [3 1 2], got %v", order)
	}

	items[0].Quantity = 99
	if s.Items()[0].Quantity != 1 {
		t.Error("mutating returned slice changed the store")
	}
}

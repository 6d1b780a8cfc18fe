package cart

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordingStorage struct {
	saves [][]Item
	items []Item
	err   error
}

func (s *recordingStorage) Load() ([]Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *recordingStorage) Save(items []Item) error {
	cp := make([]Item, len(items))
	copy(cp, items)
	s.saves = append(s.saves, cp)
	return s.err
}

func TestAddIncrementsExistingItem(t *testing.T) {
	c := New(&recordingStorage{})

	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 49.99})
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 49.99})

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", items[0].Quantity)
	}
	if c.Count() != 2 {
		t.Errorf("expected count 2, got %d", c.Count())
	}
}

func TestDecreaseQtyFloorsAtOne(t *testing.T) {
	c := New(&recordingStorage{})
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 10})

	c.DecreaseQty("p1")
	c.DecreaseQty("p1")

	if got := c.Items()[0].Quantity; got != 1 {
		t.Errorf("expected quantity floored at 1, got %d", got)
	}
}

func TestRemoveThenAddStartsAtOne(t *testing.T) {
	c := New(&recordingStorage{})
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 10})
	c.IncreaseQty("p1")
	c.IncreaseQty("p1")

	c.Remove("p1")
	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart after remove")
	}

	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 10})
	if got := c.Items()[0].Quantity; got != 1 {
		t.Errorf("expected quantity 1 after re-add, got %d", got)
	}
}

func TestTotalAndCount(t *testing.T) {
	c := New(&recordingStorage{})
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 49.99})
	c.IncreaseQty("p1")
	c.Add(Item{ProductID: "p2", Title: "Mouse", Price: 19.99})

	if c.Count() != 3 {
		t.Errorf("expected count 3, got %d", c.Count())
	}
	if got := c.Total().StringFixed(2); got != "119.97" {
		t.Errorf("expected total 119.97, got %s", got)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	storage := &recordingStorage{}
	c := New(storage)

	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 10})
	c.IncreaseQty("p1")
	c.DecreaseQty("p1")
	c.Remove("p1")
	c.Clear()

	if len(storage.saves) != 5 {
		t.Errorf("expected 5 saves, got %d", len(storage.saves))
	}
}

func TestRestoreFromStorage(t *testing.T) {
	storage := &recordingStorage{items: []Item{{ProductID: "p1", Title: "Keyboard", Price: 10, Quantity: 3}}}
	c := New(storage)

	if c.Count() != 3 {
		t.Errorf("expected restored count 3, got %d", c.Count())
	}
}

func TestFailsOpenOnStorageError(t *testing.T) {
	storage := &recordingStorage{err: errors.New("disk gone")}
	c := New(storage)

	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart on load failure")
	}
	// Mutations must not surface the save failure either.
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 10})
	if c.Count() != 1 {
		t.Errorf("expected count 1, got %d", c.Count())
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	storage := NewFileStorage(path)

	c := New(storage)
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 49.99})
	c.Add(Item{ProductID: "p1", Title: "Keyboard", Price: 49.99})

	restored := New(NewFileStorage(path))
	if restored.Count() != 2 {
		t.Errorf("expected restored count 2, got %d", restored.Count())
	}
}

func TestFileStorageCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(NewFileStorage(path))
	if len(c.Items()) != 0 {
		t.Errorf("expected empty cart from corrupt storage")
	}
}

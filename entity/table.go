package entity

import (
	"github.com/elliotchance/orderedmap/v2"
)

// MaxEntities is the fixed capacity of the tracking table. Capture calls for new
// entities beyond this count are dropped.
const MaxEntities = 128

// Table is a fixed-capacity collection of tracking slots keyed by the host's
// entity handle. Slot storage is pre-sized at construction; tracking a new entity
// never allocates pose memory.
type Table struct {
	slots  [MaxEntities]Slot
	lookup *orderedmap.OrderedMap[uint32, int]
	free   []int
}

// NewTable returns an empty table with all slots unused.
func NewTable() *Table {
	t := &Table{
		lookup: orderedmap.NewOrderedMap[uint32, int](),
		free:   make([]int, 0, MaxEntities),
	}
	for i := MaxEntities - 1; i >= 0; i-- {
		t.free = append(t.free, i)
	}
	return t
}

// Find returns the active slot tracking the given id, if any.
func (t *Table) Find(id uint32) (*Slot, bool) {
	idx, ok := t.lookup.Get(id)
	if !ok {
		return nil, false
	}
	return &t.slots[idx], true
}

// Insert returns the slot tracking the given id, claiming a fresh one if the id is
// not yet tracked. It returns false only when the id is untracked and the table is
// at capacity.
func (t *Table) Insert(id uint32) (*Slot, bool) {
	if s, ok := t.Find(id); ok {
		return s, true
	}
	if len(t.free) == 0 {
		return nil, false
	}

	idx := t.free[len(t.free)-1]
	t.free = t.free[:len(t.free)-1]

	s := &t.slots[idx]
	s.reset()
	s.ID = id
	s.Active = true

	t.lookup.Set(id, idx)
	return s, true
}

// Remove marks the slot tracking the given id unused and makes it available for
// reuse. It reports whether the id was tracked.
func (t *Table) Remove(id uint32) bool {
	idx, ok := t.lookup.Get(id)
	if !ok {
		return false
	}
	t.slots[idx].reset()
	t.free = append(t.free, idx)
	t.lookup.Delete(id)
	return true
}

// RemoveAll releases every tracked slot. Hosts must call this at world-teardown
// boundaries, since recycled entity handles are otherwise indistinguishable from
// long-lived ones.
func (t *Table) RemoveAll() {
	for el := t.lookup.Front(); el != nil; el = el.Next() {
		t.slots[el.Value].reset()
		t.free = append(t.free, el.Value)
	}
	t.lookup = orderedmap.NewOrderedMap[uint32, int]()
}

// Count returns the amount of active slots.
func (t *Table) Count() int {
	return t.lookup.Len()
}

// All calls f for every active slot in insertion order, stopping early if f
// returns false.
func (t *Table) All(f func(*Slot) bool) {
	for el := t.lookup.Front(); el != nil; el = el.Next() {
		if !f(&t.slots[el.Value]) {
			return
		}
	}
}

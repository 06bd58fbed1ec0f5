package wallet

// Arena is a fixed-capacity sequence of optional slots.
//
// Capacity is set at construction and never changes. Insert is first-fit:
// a value always lands in the lowest-indexed empty slot. Slot order carries
// no meaning beyond allocation and is stable across reads.
type Arena[T any] struct {
	slots []*T
}

// NewArena returns an arena with n empty slots.
func NewArena[T any](n int) *Arena[T] {
	if n < 0 {
		n = 0
	}
	return &Arena[T]{slots: make([]*T, n)}
}

func (a *Arena[T]) Cap() int { return len(a.slots) }

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int {
	n := 0
	for _, s := range a.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Full reports whether no slot is empty.
func (a *Arena[T]) Full() bool {
	for _, s := range a.slots {
		if s == nil {
			return false
		}
	}
	return true
}

// Empty reports whether no slot is occupied.
func (a *Arena[T]) Empty() bool {
	for _, s := range a.slots {
		if s != nil {
			return false
		}
	}
	return true
}

// Insert stores a copy of v in the first empty slot and returns its index.
// It returns -1, false when the arena is full; the arena is then unchanged.
func (a *Arena[T]) Insert(v T) (int, bool) {
	for i, s := range a.slots {
		if s == nil {
			a.slots[i] = &v
			return i, true
		}
	}
	return -1, false
}

// At returns the value in slot i.
func (a *Arena[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(a.slots) || a.slots[i] == nil {
		return zero, false
	}
	return *a.slots[i], true
}

// Set overwrites slot i; a nil v empties it.
func (a *Arena[T]) Set(i int, v *T) bool {
	if i < 0 || i >= len(a.slots) {
		return false
	}
	if v == nil {
		a.slots[i] = nil
		return true
	}
	c := *v
	a.slots[i] = &c
	return true
}

// FindFunc returns the first occupied slot whose value satisfies match.
func (a *Arena[T]) FindFunc(match func(*T) bool) (int, T, bool) {
	var zero T
	for i, s := range a.slots {
		if s != nil && match(s) {
			return i, *s, true
		}
	}
	return -1, zero, false
}

// RemoveFunc empties the first occupied slot whose value satisfies match.
// At most one slot is cleared.
func (a *Arena[T]) RemoveFunc(match func(*T) bool) (int, bool) {
	for i, s := range a.slots {
		if s != nil && match(s) {
			a.slots[i] = nil
			return i, true
		}
	}
	return -1, false
}

// Values returns copies of the occupied slots in slot order.
func (a *Arena[T]) Values() []T {
	out := make([]T, 0, len(a.slots))
	for _, s := range a.slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Slots returns a copy of every slot, nil for empty ones.
func (a *Arena[T]) Slots() []*T {
	out := make([]*T, len(a.slots))
	for i, s := range a.slots {
		if s != nil {
			c := *s
			out[i] = &c
		}
	}
	return out
}

// Clear empties every slot.
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		a.slots[i] = nil
	}
}

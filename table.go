package lockhash

import "fmt"

// Table is a fixed-capacity, lock-free open-addressing hash table
// keyed by 32-bit integers. It is sized once, at construction, and
// never grows or shrinks: when a probe chain saturates, Insert fails
// rather than displacing or rehashing.
//
// A Table's zero value is not usable; construct one with New. Every
// method except Close is safe to call concurrently from any number of
// goroutines, subject to the single-writer-per-key contract described
// on Insert and Remove.
type Table[V any] struct {
	name       string
	bits       uint
	size       uint32
	maxProbes  uint32
	keyEmpty   uint32
	valueEmpty V
	hash       HashFunc
	slots      []Slot[V]
	stats      Stats
	registry   *Registry
}

// New constructs a Table sized to 1<<bits primary slots plus MaxProbes
// trailing slots, so that every probe chain [start, start+MaxProbes)
// stays in-bounds without modular arithmetic. Every slot's key starts
// at KeyEmpty. The table registers itself with the configured registry
// (DefaultRegistry unless overridden by WithRegistry) unless that
// registry is nil or already full, in which case the table is still
// fully usable but absent from FormatAll's output.
func New[V any](name string, bits uint, opts ...Option[V]) (*Table[V], error) {
	if bits < 1 || bits > 30 {
		return nil, fmt.Errorf("%w: got %d", ErrBitsOutOfRange, bits)
	}

	cfg := config[V]{
		name:      name,
		bits:      bits,
		hash:      HashAvalanche,
		maxProbes: DefaultMaxProbes,
		keyEmpty:  DefaultKeyEmpty,
		registry:  DefaultRegistry,
		allocator: defaultAllocator[V]{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxProbes == 0 {
		return nil, ErrMaxProbesZero
	}

	size := uint32(1) << bits
	slots := cfg.allocator.AllocSlots(int(size + cfg.maxProbes))
	for i := range slots {
		slots[i].key.Store(cfg.keyEmpty)
		slots[i].value = cfg.valueEmpty
	}

	t := &Table[V]{
		name:       name,
		bits:       bits,
		size:       size,
		maxProbes:  cfg.maxProbes,
		keyEmpty:   cfg.keyEmpty,
		valueEmpty: cfg.valueEmpty,
		hash:       cfg.hash,
		slots:      slots,
		registry:   cfg.registry,
	}
	if t.registry != nil {
		t.registry.register(t)
	}
	return t, nil
}

// Name returns the table's display name, set at construction and used
// only by the registry.
func (t *Table[V]) Name() string { return t.name }

// Size returns the number of primary slots (1<<bits), not counting the
// MaxProbes trailing slots reserved for probe-chain overflow.
func (t *Table[V]) Size() int { return int(t.size) }

// MemoryBytes returns the size in bytes of the backing slot array,
// size+MaxProbes slots each sizeof(Slot[V]).
func (t *Table[V]) MemoryBytes() int {
	return len(t.slots) * int(slotSize[V]())
}

// Stats returns a point-in-time snapshot of the table's nine operation
// counters.
func (t *Table[V]) Stats() StatsSnapshot { return t.stats.Snapshot() }

// index computes the home slot for key: the starting index of its
// probe chain.
func (t *Table[V]) index(key uint32) uint32 {
	return t.hash(key) & (t.size - 1)
}

// Insert claims or overwrites the slot for key, returning true on
// success and false if key's probe chain is saturated (every one of
// the MaxProbes slots starting at its home index is occupied by a
// different key).
//
// Calling Insert with key == the table's KeyEmpty sentinel always
// returns false without touching the table: the source leaves this
// case undefined (the CAS would spuriously "succeed" against any FREE
// slot without changing its observable state), and this implementation
// rejects it outright rather than reproduce that ambiguity.
//
// Single-writer-per-key contract: at most one goroutine may call
// Insert for a given key at a time, and it must not overlap a Remove
// of the same key. Violating this contract cannot corrupt the table
// (every mutation the contract would race against is still performed
// through an atomic CAS or store), but it can produce surprising
// results — e.g. two concurrent inserts of the same key may both
// report success while only one value survives.
func (t *Table[V]) Insert(key uint32, value V) bool {
	if key == t.keyEmpty {
		return false
	}
	start := t.index(key)
	t.stats.insert.add(1)

	for i := uint32(0); i < t.maxProbes; i++ {
		s := &t.slots[start+i]
		swapped := s.key.CompareAndSwap(t.keyEmpty, key)
		if swapped {
			s.value = value
			return true
		}
		if s.key.Load() == key {
			s.value = value
			t.stats.overwritten.add(1)
			return true
		}
		t.stats.collision.add(1)
	}

	t.stats.insertErr.add(1)
	return false
}

// Lookup searches key's probe chain and returns its value and true on
// a match, or the zero value and false if key is not present within
// MaxProbes slots of its home index. Looking up the KeyEmpty sentinel
// always fails, since it marks free slots rather than a stored key.
//
// Lookup never writes to the table. It may pass over a FREE slot left
// behind by a concurrent Remove of a different key that used to occupy
// an earlier position in this chain — it simply treats FREE as "not a
// match" and keeps probing, the same as the source.
func (t *Table[V]) Lookup(key uint32) (V, bool) {
	start := t.index(key)
	t.stats.search.add(1)
	if key == t.keyEmpty {
		t.stats.searchErr.add(1)
		var zero V
		return zero, false
	}

	for i := uint32(0); i < t.maxProbes; i++ {
		s := &t.slots[start+i]
		if s.key.Load() == key {
			v := s.value
			t.stats.searchOk.add(1)
			return v, true
		}
	}

	t.stats.searchErr.add(1)
	var zero V
	return zero, false
}

// Remove clears key's slot and returns its value and true on success,
// or the zero value and false if key is not present within MaxProbes
// slots of its home index. Removing the KeyEmpty sentinel always fails.
//
// Remove requires single-writer-per-key: only one goroutine may remove
// a given key at a time, and no goroutine may concurrently Insert that
// same key. Under that contract, no CAS is needed — between the moment
// this call observes key in a slot and the moment it clears it, no
// other goroutine can transition that slot, because concurrent Inserts
// of other keys skip over an occupied slot and a concurrent Insert of
// this key is forbidden by the contract.
func (t *Table[V]) Remove(key uint32) (V, bool) {
	start := t.index(key)
	t.stats.remove.add(1)
	if key == t.keyEmpty {
		t.stats.removeErr.add(1)
		var zero V
		return zero, false
	}

	for i := uint32(0); i < t.maxProbes; i++ {
		s := &t.slots[start+i]
		if s.key.Load() == key {
			v := s.value
			s.value = t.valueEmpty
			s.key.Store(t.keyEmpty)
			return v, true
		}
	}

	t.stats.removeErr.add(1)
	var zero V
	return zero, false
}

// Close unregisters the table and releases its backing slot array.
// Close is not concurrent-safe: the caller must ensure no Insert,
// Lookup, or Remove is in flight.
func (t *Table[V]) Close() {
	if t.registry != nil {
		t.registry.unregister(t)
	}
	t.slots = nil
}

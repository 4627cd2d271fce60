package lockhash

import "sync/atomic"

// paddedCounter is a single 64-bit monotonic counter isolated to its
// own cache line, the same trick the corpus uses for striped size
// counters (counterStripe), applied here per-counter rather than
// per-stripe since Stats has a fixed, small set of independently-hot
// fields (insert, remove and search run concurrently on every table).
type paddedCounter struct {
	v atomic.Uint64
	//lint:ignore U1000 prevents false sharing between counters
	_ [(cacheLineSize - 8) % cacheLineSize]byte
}

func (c *paddedCounter) add(delta uint64) { c.v.Add(delta) }
func (c *paddedCounter) load() uint64     { return c.v.Load() }

// Stats holds the nine monotonically non-decreasing operation counters
// a Table maintains over its lifetime. Exactness under concurrent
// mutation is not guaranteed or required: the counters exist for
// operational visibility, not for correctness of the table's core
// operations.
type Stats struct {
	insert      paddedCounter
	remove      paddedCounter
	search      paddedCounter
	collision   paddedCounter
	overwritten paddedCounter
	insertErr   paddedCounter
	removeErr   paddedCounter
	searchOk    paddedCounter
	searchErr   paddedCounter
}

// StatsSnapshot is a point-in-time, non-atomic copy of Stats, safe to
// print, compare, or hold onto after the originating Table has moved
// on.
type StatsSnapshot struct {
	Insert      uint64
	Remove      uint64
	Search      uint64
	Collision   uint64
	Overwritten uint64
	InsertErr   uint64
	RemoveErr   uint64
	SearchOk    uint64
	SearchErr   uint64
}

// Snapshot copies the current value of every counter.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Insert:      s.insert.load(),
		Remove:      s.remove.load(),
		Search:      s.search.load(),
		Collision:   s.collision.load(),
		Overwritten: s.overwritten.load(),
		InsertErr:   s.insertErr.load(),
		RemoveErr:   s.removeErr.load(),
		SearchOk:    s.searchOk.load(),
		SearchErr:   s.searchErr.load(),
	}
}

// Ops returns the total number of insert, remove and search calls
// observed, matching the "Ops" column the original C registry dump
// printed (hashtable->__stat.insert+remove+search).
func (s StatsSnapshot) Ops() uint64 {
	return s.Insert + s.Remove + s.Search
}

// statNames mirrors hashtable_stat_names from the source and fixes the
// column order Registry.FormatAll renders counters in.
var statNames = [...]string{
	"Insert", "Remove", "Search", "Collision", "Overwritten",
	"Insert_err", "Remove_err", "Search_ok", "Search_err",
}

func (s StatsSnapshot) values() [9]uint64 {
	return [9]uint64{
		s.Insert, s.Remove, s.Search, s.Collision, s.Overwritten,
		s.InsertErr, s.RemoveErr, s.SearchOk, s.SearchErr,
	}
}

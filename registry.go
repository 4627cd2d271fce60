package lockhash

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/larytet/lockfree-hashtable/tracelog"
)

// Registered is the view of a Table a Registry needs: enough to print
// one row of introspection output. Table[V] implements it for any V.
type Registered interface {
	Name() string
	Size() int
	MemoryBytes() int
	Stats() StatsSnapshot
}

// Registry is a process-wide, bounded-capacity list of live tables,
// used only so an operator can print a tabular summary of everything
// that's running. It is never consulted on the hot path: Insert,
// Lookup and Remove never touch a Registry.
type Registry struct {
	mu       sync.Mutex
	capacity int
	tables   []Registered
}

// DefaultRegistry is the registry every Table registers with unless
// constructed with WithRegistry. Its capacity (64) matches the fixed
// hashtable_registry[64] array of the source.
var DefaultRegistry = NewRegistry(64)

// NewRegistry returns an empty Registry that holds up to capacity
// tables.
func NewRegistry(capacity int) *Registry {
	return &Registry{capacity: capacity}
}

// register adds t to the registry. A second call with the same table
// is a no-op, matching hashtable_registry_add's idempotence. If the
// registry is already at capacity, t is logged and left unregistered;
// it remains fully usable, just absent from FormatAll.
func (r *Registry) register(t Registered) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tables {
		if existing == t {
			return
		}
	}
	if len(r.tables) >= r.capacity {
		tracelog.Warningf("registry: capacity (%d) exhausted, %q will not appear in FormatAll", r.capacity, t.Name())
		return
	}
	r.tables = append(r.tables, t)
}

// unregister removes t from the registry, if present.
func (r *Registry) unregister(t Registered) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.tables {
		if existing == t {
			r.tables = append(r.tables[:i], r.tables[i+1:]...)
			return
		}
	}
}

// FormatAll renders a fixed-width table of every registered table's
// name, size, memory footprint, total op count, and nine counters, one
// newline-terminated row per table plus a header row. Its output is
// for operator consumption; nothing in this package parses it back.
func (r *Registry) FormatAll(w io.Writer) (int, error) {
	r.mu.Lock()
	tables := make([]Registered, len(r.tables))
	copy(tables, r.tables)
	r.mu.Unlock()

	counter := &countingWriter{w: w}
	tw := tabwriter.NewWriter(counter, 0, 4, 2, ' ', 0)

	header := []any{"Name", "Size", "Memory", "Ops"}
	for _, n := range statNames {
		header = append(header, n)
	}
	if err := writeRow(tw, header); err != nil {
		return counter.n, err
	}

	for _, t := range tables {
		snap := t.Stats()
		row := []any{t.Name(), t.Size(), t.MemoryBytes(), snap.Ops()}
		for _, v := range snap.values() {
			row = append(row, v)
		}
		if err := writeRow(tw, row); err != nil {
			return counter.n, err
		}
	}

	if err := tw.Flush(); err != nil {
		return counter.n, err
	}
	return counter.n, nil
}

func writeRow(tw *tabwriter.Writer, fields []any) error {
	for i, f := range fields {
		sep := "\t"
		if i == len(fields)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(tw, "%v%s", f, sep); err != nil {
			return err
		}
	}
	return nil
}

// countingWriter wraps an io.Writer to report total bytes written,
// letting FormatAll return a bytes-written count (the original C
// hashtable_show returned the byte count snprintf produced).
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

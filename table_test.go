package lockhash

import "testing"

func TestNewValidatesBits(t *testing.T) {
	if _, err := New[int]("t", 0); err == nil {
		t.Fatal("New with bits=0 should fail")
	}
	if _, err := New[int]("t", 31); err == nil {
		t.Fatal("New with bits=31 should fail")
	}
	if _, err := New[int]("t", 8); err != nil {
		t.Fatalf("New with bits=8 should succeed, got %v", err)
	}
}

func TestNewValidatesMaxProbes(t *testing.T) {
	if _, err := New[int]("t", 8, WithMaxProbes[int](0)); err == nil {
		t.Fatal("New with MaxProbes=0 should fail")
	}
}

func TestInsertLookupRoundTrip(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	if !tbl.Insert(42, 100) {
		t.Fatal("insert(42, 100) should succeed")
	}
	v, ok := tbl.Lookup(42)
	if !ok || v != 100 {
		t.Fatalf("lookup(42) = (%d, %v), want (100, true)", v, ok)
	}
}

func TestInsertOverwrite(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	if !tbl.Insert(42, 100) {
		t.Fatal("first insert should succeed")
	}
	if !tbl.Insert(42, 200) {
		t.Fatal("overwrite insert should succeed")
	}
	v, ok := tbl.Lookup(42)
	if !ok || v != 200 {
		t.Fatalf("lookup(42) = (%d, %v), want (200, true)", v, ok)
	}
	if snap := tbl.Stats(); snap.Overwritten < 1 {
		t.Errorf("Overwritten = %d, want >= 1", snap.Overwritten)
	}
}

func TestRemoveRoundTrip(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	tbl.Insert(42, 100)
	v, ok := tbl.Remove(42)
	if !ok || v != 100 {
		t.Fatalf("remove(42) = (%d, %v), want (100, true)", v, ok)
	}
	if _, ok := tbl.Lookup(42); ok {
		t.Fatal("lookup after remove should fail")
	}
}

func TestRemoveFromEmptyTable(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := tbl.Remove(42); ok {
		t.Fatal("remove from empty table should fail")
	}
	if snap := tbl.Stats(); snap.RemoveErr != 1 {
		t.Errorf("RemoveErr = %d, want 1", snap.RemoveErr)
	}
}

func TestInsertRejectsKeyEmpty(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	if tbl.Insert(0, 1) {
		t.Fatal("insert with key == KeyEmpty should fail")
	}
	if _, ok := tbl.Lookup(0); ok {
		t.Fatal("lookup of KeyEmpty should never succeed")
	}
}

// TestBoundaryProbeSaturation reproduces the spec's worked example: with
// bits=8, MaxProbes=4, the identity hash and KeyEmpty=0, keys that are
// exact multiples of size all collide at slot 0.
func TestBoundaryProbeSaturation(t *testing.T) {
	tbl, err := New[int]("t", 8,
		WithHash[int](HashIdentity),
		WithMaxProbes[int](4),
		WithRegistry[int](nil),
	)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []uint32{256, 512, 768, 1024} {
		if !tbl.Insert(key, int(key)) {
			t.Fatalf("insert(%d) should succeed", key)
		}
	}
	if tbl.Insert(1280, 1280) {
		t.Fatal("fifth colliding insert should fail (probe chain saturated)")
	}
	if snap := tbl.Stats(); snap.InsertErr != 1 {
		t.Errorf("InsertErr = %d, want 1", snap.InsertErr)
	}
}

// TestScenarioSingleThreadFillAndDrain is end-to-end scenario 1 from the
// spec's testable properties: insert 1..16, look each up, remove each,
// and check the resulting counters.
func TestScenarioSingleThreadFillAndDrain(t *testing.T) {
	tbl, err := New[int]("t", 8,
		WithHash[int](HashIdentity),
		WithMaxProbes[int](4),
		WithRegistry[int](nil),
	)
	if err != nil {
		t.Fatal(err)
	}

	for key := uint32(1); key <= 16; key++ {
		if !tbl.Insert(key, int(key)) {
			t.Fatalf("insert(%d) should succeed", key)
		}
	}
	for key := uint32(1); key <= 16; key++ {
		v, ok := tbl.Lookup(key)
		if !ok || v != int(key) {
			t.Fatalf("lookup(%d) = (%d, %v), want (%d, true)", key, v, ok, key)
		}
	}
	for key := uint32(1); key <= 16; key++ {
		v, ok := tbl.Remove(key)
		if !ok || v != int(key) {
			t.Fatalf("remove(%d) = (%d, %v), want (%d, true)", key, v, ok, key)
		}
	}

	snap := tbl.Stats()
	if snap.Insert != 16 || snap.Remove != 16 || snap.Search != 16 || snap.SearchOk != 16 {
		t.Errorf("unexpected stats after fill/drain: %+v", snap)
	}

	if _, ok := tbl.Lookup(1); ok {
		t.Fatal("lookup(1) after full drain should fail")
	}
}

// TestScenarioForcedCollisionChain is end-to-end scenario 2.
func TestScenarioForcedCollisionChain(t *testing.T) {
	tbl, err := New[int]("t", 8,
		WithHash[int](HashIdentity),
		WithMaxProbes[int](4),
		WithRegistry[int](nil),
	)
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []uint32{256, 512, 768, 1024} {
		if !tbl.Insert(key, int(key)) {
			t.Fatalf("insert(%d) should succeed", key)
		}
	}

	if v, ok := tbl.Lookup(256); !ok || v != 256 {
		t.Fatalf("lookup(256) = (%d, %v), want (256, true)", v, ok)
	}
	if v, ok := tbl.Lookup(512); !ok || v != 512 {
		t.Fatalf("lookup(512) = (%d, %v), want (512, true)", v, ok)
	}
	if _, ok := tbl.Lookup(384); ok {
		t.Fatal("lookup(384) should fail, it was never inserted")
	}
	if snap := tbl.Stats(); snap.SearchErr != 1 {
		t.Errorf("SearchErr = %d, want 1", snap.SearchErr)
	}

	if tbl.Insert(1280, 1280) {
		t.Fatal("insert(1280) should fail, chain is saturated")
	}
	if snap := tbl.Stats(); snap.InsertErr != 1 {
		t.Errorf("InsertErr = %d, want 1", snap.InsertErr)
	}

	if _, ok := tbl.Remove(512); !ok {
		t.Fatal("remove(512) should succeed")
	}
	if v, ok := tbl.Lookup(768); !ok || v != 768 {
		t.Fatalf("lookup(768) after removing 512 = (%d, %v), want (768, true)", v, ok)
	}
}

// TestScenarioOverwrite is end-to-end scenario 3.
func TestScenarioOverwrite(t *testing.T) {
	tbl, err := New[int]("t", 8, WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	tbl.Insert(42, 100)
	tbl.Insert(42, 200)
	v, ok := tbl.Lookup(42)
	if !ok || v != 200 {
		t.Fatalf("lookup(42) = (%d, %v), want (200, true)", v, ok)
	}
	if snap := tbl.Stats(); snap.Overwritten < 1 {
		t.Errorf("Overwritten = %d, want >= 1", snap.Overwritten)
	}
}

func TestMemoryBytesReflectsSlotCount(t *testing.T) {
	tbl, err := New[int]("t", 8, WithMaxProbes[int](4), WithRegistry[int](nil))
	if err != nil {
		t.Fatal(err)
	}

	want := (256 + 4) * int(slotSize[int]())
	if got := tbl.MemoryBytes(); got != want {
		t.Errorf("MemoryBytes() = %d, want %d", got, want)
	}
}

func TestCloseUnregisters(t *testing.T) {
	reg := NewRegistry(4)
	tbl, err := New[int]("closeme", 4, WithRegistry[int](reg))
	if err != nil {
		t.Fatal(err)
	}

	if len(reg.tables) != 1 {
		t.Fatalf("table should be registered after construction, got %d entries", len(reg.tables))
	}
	tbl.Close()
	if len(reg.tables) != 0 {
		t.Errorf("table should be unregistered after Close, got %d entries", len(reg.tables))
	}
}

func TestWithValueEmptyUsedOnRemove(t *testing.T) {
	tbl, err := New[string]("t", 8,
		WithValueEmpty[string]("<empty>"),
		WithRegistry[string](nil),
	)
	if err != nil {
		t.Fatal(err)
	}

	tbl.Insert(42, "hello")
	v, ok := tbl.Remove(42)
	if !ok || v != "hello" {
		t.Fatalf("remove(42) = (%q, %v), want (hello, true)", v, ok)
	}
	if got := tbl.slots[tbl.index(42)].value; got != "<empty>" {
		t.Errorf("slot value after remove = %q, want %q", got, "<empty>")
	}
}

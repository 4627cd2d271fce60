// Command lockhashdemo exercises a lockhash.Table the way the original
// C demo driver (original_source/hashtable_test.cpp) did: a
// synchronous insert/remove smoke pass, then one worker goroutine per
// requested CPU core repeatedly inserting, looking up, and removing a
// thread-local key, with the registry's formatted stats printed to
// stdout once a second until the process is interrupted.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larytet/lockfree-hashtable"
	"github.com/larytet/lockfree-hashtable/launcher"
	"github.com/larytet/lockfree-hashtable/tracelog"
)

func main() {
	bits := flag.Uint("bits", 8, "log2 of the table's primary slot count")
	maxProbes := flag.Uint("max-probes", 4, "probe chain bound")
	workers := flag.Int("workers", 4, "number of churn worker goroutines to launch")
	period := flag.Duration("print-period", time.Second, "how often to print the registry")
	flag.Parse()

	table, err := lockhash.New[uint32]("demo",
		*bits,
		lockhash.WithMaxProbes[uint32](uint32(*maxProbes)),
	)
	if err != nil {
		tracelog.Errorf("failed to construct table: %v", err)
		os.Exit(1)
	}
	defer table.Close()

	if err := synchronousSmokePass(table, *workers); err != nil {
		tracelog.Errorf("%v", err)
		os.Exit(1)
	}
	tracelog.Infof("synchronous smoke pass ok, launching %d workers", *workers)

	stopAll, waitAll := launcher.LaunchAll(*workers, func(core int, stop <-chan struct{}) {
		churn(table, core, stop)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-sig:
			break loop
		case <-ticker.C:
			if _, err := lockhash.DefaultRegistry.FormatAll(os.Stdout); err != nil {
				tracelog.Errorf("FormatAll: %v", err)
			}
		}
	}

	stopAll()
	waitAll()
	lockhash.DefaultRegistry.FormatAll(os.Stdout)
}

// synchronousSmokePass mirrors the source's synchronous_access: insert
// then remove one key per requested worker, single-threaded, before
// any concurrent access begins.
func synchronousSmokePass(table *lockhash.Table[uint32], workers int) error {
	for i := 0; i < workers; i++ {
		key := uint32(i + 1)
		if !table.Insert(key, key) {
			return fmt.Errorf("smoke pass: insert %d failed", key)
		}
	}
	for i := 0; i < workers; i++ {
		key := uint32(i + 1)
		if _, ok := table.Remove(key); !ok {
			return fmt.Errorf("smoke pass: remove %d failed", key)
		}
	}
	return nil
}

// churn repeatedly inserts, looks up, and removes a key unique to
// core, matching thread_job in the original source: it keys on
// 1<<(8+core%16), so workers whose core%16 differ use distinct keys
// (distinct keys may still share a home index under the avalanche
// hash), and treats any unexpected result as fatal to this worker.
func churn(table *lockhash.Table[uint32], core int, stop <-chan struct{}) {
	key := uint32(1) << uint(8+core%16)
	for {
		select {
		case <-stop:
			return
		default:
		}

		if !table.Insert(key, key) {
			tracelog.Errorf("worker %d: insert %d failed", core, key)
			return
		}
		if v, ok := table.Lookup(key); !ok || v != key {
			tracelog.Errorf("worker %d: lookup %d returned (%v, %v)", core, key, v, ok)
			return
		}
		if _, ok := table.Lookup(^key); ok {
			tracelog.Errorf("worker %d: lookup of absent key %d unexpectedly succeeded", core, ^key)
			return
		}
		if v, ok := table.Remove(key); !ok || v != key {
			tracelog.Errorf("worker %d: remove %d returned (%v, %v)", core, key, v, ok)
			return
		}
		if _, ok := table.Lookup(key); ok {
			tracelog.Errorf("worker %d: lookup after remove of %d unexpectedly succeeded", core, key)
			return
		}
	}
}

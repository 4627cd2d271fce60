package lockhash

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// cacheLineSize is the padding unit used to keep independently-mutated
// Stats counters from sharing a cache line under concurrent access. Computed the same way the corpus's concurrent maps do it:
// from the size of golang.org/x/sys/cpu's platform-specific pad type
// rather than a hardcoded 64.
const cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

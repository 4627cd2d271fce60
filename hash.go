package lockhash

// HashFunc computes the 32-bit hash of a 32-bit key. A Table consults
// its HashFunc once per operation to obtain the home index of the
// probe chain; the function itself is pure and holds no state.
type HashFunc func(key uint32) uint32

// HashAvalanche is the default hash: a Jenkins-style integer avalanche
// mixer that turns small or clustered inputs (thread IDs, in the
// motivating use case, tend to be numerically close to one another)
// into high-entropy output. The sequence below must be reproduced
// bit-exactly — all arithmetic is unsigned 32-bit with wraparound.
func HashAvalanche(key uint32) uint32 {
	key = ^key + (key << 10)
	key = key ^ (key >> 7)
	key = key + (key << 1)
	key = key ^ (key >> 2)
	key = key * 187
	key = key ^ (key >> 11)
	return key
}

// HashIdentity returns key unchanged. It exists so tests can force
// deterministic collisions: supplying keys that are exact multiples of
// the table size all resolve to the same home index under this hash.
func HashIdentity(key uint32) uint32 {
	return key
}

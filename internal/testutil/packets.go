package testutil

import "math/rand"

// FixedPacketSizes is the packet-size schedule used by every
// streaming-equivalence test.
var FixedPacketSizes = []int{
	1, 2, 3, 16, 64, 100, 200, 512,
	1000, 1024, 1200, 2048, 4000, 4096, 5000,
}

// FixedPartition splits [0, n) into consecutive chunks of the given size
// (the final chunk may be shorter) and returns the chunk lengths.
func FixedPartition(n, size int) []int {
	var out []int
	for pos := 0; pos < n; {
		m := size
		if n-pos < m {
			m = n - pos
		}
		out = append(out, m)
		pos += m
	}
	return out
}

// RandomPartition splits [0, n) into chunks of seeded random lengths
// uniform in [1, max] and returns the chunk lengths.
func RandomPartition(n, max int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	var out []int
	for pos := 0; pos < n; {
		m := 1 + rng.Intn(max)
		if n-pos < m {
			m = n - pos
		}
		out = append(out, m)
		pos += m
	}
	return out
}

package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Hasher fingerprints n uint64 values that arrive in any order from
// concurrent workers. The digest depends only on the value at each position.
type Hasher struct {
	mut    sync.Mutex
	data   []byte
	filled []bool
}

// NewUint64Hasher returns a hasher expecting positions 0..n-1
func NewUint64Hasher(n int) *Hasher {
	return &Hasher{
		data:   make([]byte, 8*n),
		filled: make([]bool, n),
	}
}

// MustPutUint64 stores the value at position n. It panics when n is out of
// range or was already written.
func (h *Hasher) MustPutUint64(n int, value uint64) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if n < 0 || n >= len(h.filled) {
		panic("hasher position out of range")
	}
	if h.filled[n] {
		println(n, value)
		panic("duplicate write")
	}
	h.filled[n] = true
	binary.BigEndian.PutUint64(h.data[8*n:], value)
}

// Sum returns the digest of all positions, unwritten ones count as zero
func (h *Hasher) Sum() (ret [32]byte) {
	h.mut.Lock()
	ret = sha256.Sum256(h.data)
	h.mut.Unlock()
	return
}

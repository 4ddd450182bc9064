package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Hasher fingerprints n uint16 values written in any order from any goroutine.
// The sum only depends on the value stored at each position.
type Hasher struct {
	mut     sync.Mutex
	data    []byte
	written []bool
}

// NewUint16Hasher creates a hasher for n values
func NewUint16Hasher(n int) *Hasher {
	return &Hasher{
		data:    make([]byte, 2*n),
		written: make([]bool, n),
	}
}

// MustPutUint16 stores value at position n. Panics when n is out of range or already written.
func (h *Hasher) MustPutUint16(n int, value uint16) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if h.written[n] {
		panic("duplicate write")
	}
	h.written[n] = true
	binary.LittleEndian.PutUint16(h.data[2*n:], value)
}

// Sum returns the sha256 of all values in position order. Unwritten positions count as zero.
func (h *Hasher) Sum() [32]byte {
	h.mut.Lock()
	defer h.mut.Unlock()
	return sha256.Sum256(h.data)
}

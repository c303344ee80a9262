package shower

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"
)

var seedCounter uint64

// NewSeed returns a seed for a shower's random stream. Seeds are drawn from
// the operating system's entropy source and mixed with a process-wide
// counter, so showers created in quick succession never share a stream.
func NewSeed() uint64 {
	n := atomic.AddUint64(&seedCounter, 1)

	var buf [8]byte
	var seed uint64
	if _, err := crand.Read(buf[:]); err == nil {
		seed = binary.LittleEndian.Uint64(buf[:])
	} else {
		seed = uint64(time.Now().UnixNano())
	}
	return splitmix(seed ^ splitmix(n))
}

// splitmix is the finaliser of the SplitMix64 generator.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

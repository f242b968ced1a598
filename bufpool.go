package pokebuf

import (
	"bytes"
	"sync"
)

// SCRATCH_SIZE is the default scratch buffer capacity. Requests for larger
// bounds are rounded up to whole multiples of it.
const SCRATCH_SIZE = 4096

// bytesBufPool reuses buffers for slurping readers in Read.
// This reduces GC pressure by avoiding frequent allocations. We pool
// *bytes.Buffer because they are easily reset and resized.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common record sizes.
		return bytes.NewBuffer(make([]byte, 0, SCRATCH_SIZE))
	},
}

// scratchPool holds byte slices used as poke destinations in Write.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, SCRATCH_SIZE)
		return &b
	},
}

// getScratch returns a pooled slice with length at least n.
func getScratch(n int) *[]byte {
	p := scratchPool.Get().(*[]byte)
	if len(*p) < n {
		*p = make([]byte, Roundup(n, SCRATCH_SIZE))
	}
	return p
}

func putScratch(p *[]byte) {
	scratchPool.Put(p)
}

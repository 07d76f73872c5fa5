package device

import (
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// Allocator hands out memory from the host-managed heap. Every call is one
// round trip to the host; there is no device-side bookkeeping.
type Allocator struct {
	host ports.HostBridge
}

// Allocate reserves size bytes and returns their address, or 0 when the host
// cannot satisfy the request. Callers must check for 0.
func (a *Allocator) Allocate(size uint64) uint64 {
	return a.host.Allocate(size)
}

// Release returns memory obtained from Allocate. Releasing 0 or releasing the
// same address twice is undefined.
func (a *Allocator) Release(addr uint64) {
	a.host.Deallocate(addr)
}

// AllocateBytes is Allocate as a byte slice. It returns nil on failure and
// for n == 0. The slice must be handed back with ReleaseBytes.
func (a *Allocator) AllocateBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	p := abi.Pointer(a.Allocate(uint64(n)))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// ReleaseBytes releases a slice obtained from AllocateBytes.
func (a *Allocator) ReleaseBytes(b []byte) {
	if cap(b) == 0 {
		return
	}
	a.Release(abi.Address(unsafe.Pointer(unsafe.SliceData(b))))
}

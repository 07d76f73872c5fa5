package ports

import (
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// HostBridge is the set of host-resident routines a lane reaches across the
// host/accelerator boundary. Every method blocks the calling lane until the
// host responds; there is no timeout and no cancellation.
//
// Implementations must be safe for concurrent use by any number of lanes.
// Each call is independent: the driver allocates a channel per call, so a
// response is always paired with its own request.
type HostBridge interface {
	// CallHostFunction runs the host function identified by req.Function with
	// seven argument words and returns its two result words.
	CallHostFunction(req entities.HostCallRequest) entities.HostCallResponse

	// Allocate requests size bytes from the host-managed heap.
	// It returns 0 when the host cannot satisfy the request.
	Allocate(size uint64) uint64

	// Deallocate returns memory obtained from Allocate.
	Deallocate(addr uint64)

	// WriteConsole prints length bytes starting at p on the host's stdout.
	WriteConsole(p unsafe.Pointer, length int32)
}

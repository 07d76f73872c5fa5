package ports

import (
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// Intrinsics are the per-lane compiler primitives of the accelerator.
// Values are relative to the lane that calls them.
type Intrinsics interface {
	// WorkitemID returns the lane's index within its work-group.
	WorkitemID() entities.Dim3
	// WorkgroupID returns the work-group's index within the dispatch.
	WorkgroupID() entities.Dim3
	// Barrier blocks until every wavefront of the work-group has arrived.
	Barrier()
	// MemRealTime returns a constant-rate counter, consistent across the chip.
	MemRealTime() uint64
	// WavefrontSize returns the lane count of one wavefront.
	WavefrontSize() uint32
	// DispatchID returns the identifier of the running dispatch.
	DispatchID() uint64
	// Halt stops the calling lane. On hardware it does not return.
	Halt()

	// DispatchPtr returns the packet used to launch the running kernel.
	DispatchPtr() unsafe.Pointer
	// QueuePtr returns the queue descriptor of the running dispatch.
	QueuePtr() unsafe.Pointer
	// KernargSegmentPtr returns the start of the kernel argument segment.
	KernargSegmentPtr() unsafe.Pointer
	// ImplicitargPtr returns the start of the implicit argument segment.
	ImplicitargPtr() unsafe.Pointer
}

//go:build wasip1

package device

import (
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// Host-resident routines linked in from the device libraries.

//go:wasmimport amdgpu __ockl_call_host_function
func ocklCallHostFunction(fn, a0, a1, a2, a3, a4, a5, a6 uint64, out unsafe.Pointer)

//go:wasmimport amdgpu __amdgpu_util_alloc
func utilAlloc(size uint64) uint64

//go:wasmimport amdgpu __amdgpu_util_dealloc
func utilDealloc(addr uint64)

//go:wasmimport amdgpu __amdgpu_util_print_stdout
func utilPrintStdout(p unsafe.Pointer, length int32)

//go:wasmimport amdgpu __amdgpu_util_dispatch_ptr
func utilDispatchPtr() unsafe.Pointer

//go:wasmimport amdgpu __amdgpu_util_queue_ptr
func utilQueuePtr() unsafe.Pointer

//go:wasmimport amdgpu __amdgpu_util_kernarg_segment_ptr
func utilKernargSegmentPtr() unsafe.Pointer

//go:wasmimport amdgpu __amdgpu_util_implicitarg_ptr
func utilImplicitargPtr() unsafe.Pointer

// Compiler intrinsics.

//go:wasmimport amdgpu llvm.amdgcn.workitem.id.x
func workitemIDX() uint32

//go:wasmimport amdgpu llvm.amdgcn.workitem.id.y
func workitemIDY() uint32

//go:wasmimport amdgpu llvm.amdgcn.workitem.id.z
func workitemIDZ() uint32

//go:wasmimport amdgpu llvm.amdgcn.workgroup.id.x
func workgroupIDX() uint32

//go:wasmimport amdgpu llvm.amdgcn.workgroup.id.y
func workgroupIDY() uint32

//go:wasmimport amdgpu llvm.amdgcn.workgroup.id.z
func workgroupIDZ() uint32

//go:wasmimport amdgpu llvm.amdgcn.s.barrier
func sBarrier()

//go:wasmimport amdgpu llvm.amdgcn.s.memrealtime
func sMemRealTime() uint64

//go:wasmimport amdgpu llvm.amdgcn.wavefrontsize
func wavefrontSize() uint32

//go:wasmimport amdgpu llvm.amdgcn.dispatch.id
func dispatchID() uint64

//go:wasmimport amdgpu llvm.amdgcn.s.sethalt
func sSetHalt(code int32)

type nativeHost struct{}

var _ ports.HostBridge = nativeHost{}

func (nativeHost) CallHostFunction(req entities.HostCallRequest) entities.HostCallResponse {
	var out [2]uint64
	a := req.Args
	ocklCallHostFunction(req.Function, a[0], a[1], a[2], a[3], a[4], a[5], a[6], unsafe.Pointer(&out))
	return abi.PackWord128(out)
}

func (nativeHost) Allocate(size uint64) uint64 { return utilAlloc(size) }

func (nativeHost) Deallocate(addr uint64) { utilDealloc(addr) }

func (nativeHost) WriteConsole(p unsafe.Pointer, length int32) { utilPrintStdout(p, length) }

type nativeIntrinsics struct{}

var _ ports.Intrinsics = nativeIntrinsics{}

func (nativeIntrinsics) WorkitemID() entities.Dim3 {
	return entities.Dim3{X: workitemIDX(), Y: workitemIDY(), Z: workitemIDZ()}
}

func (nativeIntrinsics) WorkgroupID() entities.Dim3 {
	return entities.Dim3{X: workgroupIDX(), Y: workgroupIDY(), Z: workgroupIDZ()}
}

func (nativeIntrinsics) Barrier()              { sBarrier() }
func (nativeIntrinsics) MemRealTime() uint64   { return sMemRealTime() }
func (nativeIntrinsics) WavefrontSize() uint32 { return wavefrontSize() }
func (nativeIntrinsics) DispatchID() uint64    { return dispatchID() }
func (nativeIntrinsics) Halt()                 { sSetHalt(1) }

func (nativeIntrinsics) DispatchPtr() unsafe.Pointer       { return utilDispatchPtr() }
func (nativeIntrinsics) QueuePtr() unsafe.Pointer          { return utilQueuePtr() }
func (nativeIntrinsics) KernargSegmentPtr() unsafe.Pointer { return utilKernargSegmentPtr() }
func (nativeIntrinsics) ImplicitargPtr() unsafe.Pointer    { return utilImplicitargPtr() }

// NewNative builds a Runtime over the host routines linked into the device
// program.
func NewNative(opts ...Option) (*Runtime, error) {
	return New(nativeHost{}, opts...), nil
}

// NativeIntrinsics returns the hardware intrinsics of the calling lane.
func NativeIntrinsics() (ports.Intrinsics, error) {
	return nativeIntrinsics{}, nil
}

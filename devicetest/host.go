// Package devicetest provides in-process stand-ins for the accelerator host
// and lane intrinsics so device code can be exercised with go test.
package devicetest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// DefaultHeapLimit caps the bytes a FakeHost hands out at once.
const DefaultHeapLimit = 16 * 1024 * 1024

// HostFunc is a host-resident function reachable through CallHostFunction.
type HostFunc func(args [entities.HostCallArgs]uint64) entities.Word128

// FakeHost is a ports.HostBridge backed by Go memory. It is safe for
// concurrent use by any number of lanes.
//
// Unknown handles answer with a zero result. Allocations beyond the heap
// limit answer with address 0.
type FakeHost struct {
	funcs       map[uint64]HostFunc
	consoleHook func([]byte)

	mu        sync.Mutex
	heap      map[uint64][]byte
	heapUsed  uint64
	heapLimit uint64
	prints    [][]byte
	calls     []entities.HostCallRequest
}

var _ ports.HostBridge = (*FakeHost)(nil)

// HostOption configures a FakeHost.
type HostOption func(*hostBuilder)

type hostBuilder struct {
	funcs       map[uint64]HostFunc
	heapLimit   uint64
	consoleHook func([]byte)
	errors      []error
}

// WithFunction registers fn under handle.
func WithFunction(handle uint64, fn HostFunc) HostOption {
	return func(b *hostBuilder) {
		if fn == nil {
			b.errors = append(b.errors, fmt.Errorf("host function %#x is nil", handle))
			return
		}
		if _, exists := b.funcs[handle]; exists {
			b.errors = append(b.errors, fmt.Errorf("duplicate host function handle: %#x", handle))
			return
		}
		b.funcs[handle] = fn
	}
}

// WithHeapLimit sets the number of bytes that may be live at once.
func WithHeapLimit(limit uint64) HostOption {
	return func(b *hostBuilder) {
		b.heapLimit = limit
	}
}

// WithConsoleHook runs hook on every print before it is recorded. A hook that
// panics simulates a failing console.
func WithConsoleHook(hook func([]byte)) HostOption {
	return func(b *hostBuilder) {
		b.consoleHook = hook
	}
}

// NewFakeHost creates a FakeHost. It fails if a handle is registered twice.
func NewFakeHost(opts ...HostOption) (*FakeHost, error) {
	b := &hostBuilder{
		funcs:     make(map[uint64]HostFunc),
		heapLimit: DefaultHeapLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	return &FakeHost{
		funcs:       b.funcs,
		consoleHook: b.consoleHook,
		heap:        make(map[uint64][]byte),
		heapLimit:   b.heapLimit,
	}, nil
}

// CallHostFunction implements ports.HostBridge.
func (h *FakeHost) CallHostFunction(req entities.HostCallRequest) entities.HostCallResponse {
	h.mu.Lock()
	h.calls = append(h.calls, req)
	h.mu.Unlock()

	fn, ok := h.funcs[req.Function]
	if !ok {
		return entities.Word128{}
	}
	return fn(req.Args)
}

// Allocate implements ports.HostBridge. The returned memory stays pinned
// until Deallocate.
func (h *FakeHost) Allocate(size uint64) uint64 {
	if size == 0 {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.heapUsed+size > h.heapLimit || h.heapUsed+size < h.heapUsed {
		return 0
	}

	buf := make([]byte, size)
	addr := abi.Address(unsafe.Pointer(&buf[0]))
	h.heap[addr] = buf
	h.heapUsed += size
	return addr
}

// Deallocate implements ports.HostBridge. Unknown addresses are ignored.
func (h *FakeHost) Deallocate(addr uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf, ok := h.heap[addr]
	if !ok {
		return
	}
	delete(h.heap, addr)
	h.heapUsed -= uint64(len(buf))
}

// WriteConsole implements ports.HostBridge.
func (h *FakeHost) WriteConsole(p unsafe.Pointer, length int32) {
	data := abi.ReadBytes(p, int(length))
	if h.consoleHook != nil {
		h.consoleHook(data)
	}

	h.mu.Lock()
	h.prints = append(h.prints, data)
	h.mu.Unlock()
}

// Console returns everything printed so far, concatenated in arrival order.
func (h *FakeHost) Console() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	for _, p := range h.prints {
		b.Write(p)
	}
	return b.String()
}

// Prints returns each host print as a separate string, in arrival order.
func (h *FakeHost) Prints() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.prints))
	for i, p := range h.prints {
		out[i] = string(p)
	}
	return out
}

// Calls returns the host function requests received so far.
func (h *FakeHost) Calls() []entities.HostCallRequest {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]entities.HostCallRequest, len(h.calls))
	copy(out, h.calls)
	return out
}

// Live reports the number of outstanding allocations and their total size.
func (h *FakeHost) Live() (count int, bytes uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.heap), h.heapUsed
}

// Handles returns the registered function handles in ascending order.
func (h *FakeHost) Handles() []uint64 {
	handles := make([]uint64, 0, len(h.funcs))
	for handle := range h.funcs {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

package devicetest

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// FakeLane is a ports.Intrinsics for one simulated lane.
type FakeLane struct {
	Workitem  entities.Dim3
	Workgroup entities.Dim3
	Width     entities.ExecutionWidth
	Dispatch  uint64
	// Packet is returned by DispatchPtr. Its KernargAddress backs KernargSegmentPtr.
	Packet *entities.DispatchPacket
	// Queue and Implicitarg are returned as-is by their accessors.
	Queue       unsafe.Pointer
	Implicitarg unsafe.Pointer
	// Group is the work-group barrier. A nil Group makes Barrier a no-op.
	Group *Barrier

	clock  atomic.Uint64
	halted atomic.Bool
}

var _ ports.Intrinsics = (*FakeLane)(nil)

func (l *FakeLane) WorkitemID() entities.Dim3  { return l.Workitem }
func (l *FakeLane) WorkgroupID() entities.Dim3 { return l.Workgroup }
func (l *FakeLane) DispatchID() uint64         { return l.Dispatch }

// WavefrontSize returns Width, or 64 when Width is unset.
func (l *FakeLane) WavefrontSize() uint32 {
	if !l.Width.Valid() {
		return uint32(entities.Wave64)
	}
	return uint32(l.Width)
}

// MemRealTime returns a strictly increasing counter.
func (l *FakeLane) MemRealTime() uint64 {
	return l.clock.Add(1)
}

func (l *FakeLane) Barrier() {
	if l.Group != nil {
		l.Group.Wait()
	}
}

// Halt records the halt; the device runtime ends the goroutine itself.
func (l *FakeLane) Halt() {
	l.halted.Store(true)
}

// Halted reports whether the lane executed its halt primitive.
func (l *FakeLane) Halted() bool {
	return l.halted.Load()
}

func (l *FakeLane) DispatchPtr() unsafe.Pointer {
	if l.Packet == nil {
		return nil
	}
	return unsafe.Pointer(l.Packet)
}

func (l *FakeLane) QueuePtr() unsafe.Pointer { return l.Queue }

func (l *FakeLane) KernargSegmentPtr() unsafe.Pointer {
	if l.Packet == nil {
		return nil
	}
	return abi.Pointer(l.Packet.KernargAddress)
}

func (l *FakeLane) ImplicitargPtr() unsafe.Pointer { return l.Implicitarg }

// Barrier is a reusable work-group barrier for n lanes.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int
	waiting int
	gen     uint64
}

// NewBarrier returns a barrier released when n lanes are waiting.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until n lanes have called Wait in the current round.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	b.waiting++
	if b.waiting == b.n {
		b.waiting = 0
		b.gen++
		b.cond.Broadcast()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}

// NewWorkgroup returns one lane per work-item of a work-group of the given
// size, all sharing a barrier and the dispatch packet.
func NewWorkgroup(group, size entities.Dim3, width entities.ExecutionWidth, packet *entities.DispatchPacket) []*FakeLane {
	total := int(size.X * size.Y * size.Z)
	barrier := NewBarrier(total)
	lanes := make([]*FakeLane, 0, total)
	for z := uint32(0); z < size.Z; z++ {
		for y := uint32(0); y < size.Y; y++ {
			for x := uint32(0); x < size.X; x++ {
				lanes = append(lanes, &FakeLane{
					Workitem:  entities.Dim3{X: x, Y: y, Z: z},
					Workgroup: group,
					Width:     width,
					Packet:    packet,
					Group:     barrier,
				})
			}
		}
	}
	return lanes
}

package device

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
)

// LaneState is the execution state of a lane.
type LaneState int32

const (
	// LaneRunning is the state of a lane that may still execute.
	LaneRunning LaneState = iota
	// LaneHalted is terminal. A lane reaches it only through Abort.
	LaneHalted
)

func (s LaneState) String() string {
	switch s {
	case LaneRunning:
		return "running"
	case LaneHalted:
		return "halted"
	default:
		return fmt.Sprintf("LaneState(%d)", int32(s))
	}
}

// Lane is one thread of execution bound to a Runtime. A Lane must only be
// used from the goroutine that runs it.
type Lane struct {
	rt    *Runtime
	intr  ports.Intrinsics
	state atomic.Int32

	logOnce sync.Once
	logger  *slog.Logger
}

// Runtime returns the runtime the lane is bound to.
func (l *Lane) Runtime() *Runtime { return l.rt }

// State returns the lane's current state.
func (l *Lane) State() LaneState { return LaneState(l.state.Load()) }

// WorkitemID returns the lane's index within its work-group.
func (l *Lane) WorkitemID() entities.Dim3 { return l.intr.WorkitemID() }

// WorkgroupID returns the work-group's index within the dispatch.
func (l *Lane) WorkgroupID() entities.Dim3 { return l.intr.WorkgroupID() }

// Barrier waits for every lane of the work-group.
func (l *Lane) Barrier() { l.intr.Barrier() }

// RealTime returns the chip-wide constant-rate counter.
func (l *Lane) RealTime() uint64 { return l.intr.MemRealTime() }

// WavefrontSize returns the execution width the kernel was built for.
func (l *Lane) WavefrontSize() entities.ExecutionWidth {
	return entities.ExecutionWidth(l.intr.WavefrontSize())
}

// DispatchID returns the identifier of the running dispatch.
func (l *Lane) DispatchID() uint64 { return l.intr.DispatchID() }

// Dispatch returns the packet that launched the running kernel. The packet is
// owned by the driver and shared by every lane; it must not be modified or
// retained past the dispatch. It returns nil when no packet is available.
func (l *Lane) Dispatch() *entities.DispatchPacket {
	return (*entities.DispatchPacket)(l.intr.DispatchPtr())
}

// QueuePtr returns the queue descriptor of the running dispatch.
func (l *Lane) QueuePtr() unsafe.Pointer { return l.intr.QueuePtr() }

// KernargPtr returns the start of the kernel argument segment.
func (l *Lane) KernargPtr() unsafe.Pointer { return l.intr.KernargSegmentPtr() }

// ImplicitArgPtr returns the start of the implicit argument segment.
func (l *Lane) ImplicitArgPtr() unsafe.Pointer { return l.intr.ImplicitargPtr() }

// Run executes kernel on the lane. A panic in kernel aborts the lane with the
// panic value as the reason.
func (l *Lane) Run(kernel func(*Lane)) {
	defer func() {
		if r := recover(); r != nil {
			l.Abort(panicReason(r))
		}
	}()
	kernel(l)
}

// Abort reports reason with the lane's coordinates on the console, halts the
// lane and terminates the calling goroutine. It never returns.
//
// Only this lane stops. Siblings keep running; one that later waits on a
// barrier this lane would have joined blocks forever.
func (l *Lane) Abort(reason string) {
	if l.rt.opts.diagnostics {
		l.report(reason)
	}
	l.state.CompareAndSwap(int32(LaneRunning), int32(LaneHalted))
	l.intr.Halt()
	runtime.Goexit()
}

// report prints the abort diagnostic. Failures are swallowed: the lane halts
// regardless.
func (l *Lane) report(reason string) {
	defer func() { _ = recover() }()
	msg := fmt.Sprintf("workgroup %s thread %s %s\n", l.WorkgroupID(), l.WorkitemID(), reason)
	_, _ = l.rt.console.WriteString(msg)
}

func panicReason(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

package device

import (
	stdErrors "errors"

	"github.com/amdgpu-go/devlibs/domain/ports"
)

// ErrNativeUnavailable is returned by the native constructors on platforms
// without the device host routines.
var ErrNativeUnavailable = stdErrors.New("device: native host routines are only available on wasip1")

// Option configures a Runtime.
type Option func(*options)

type options struct {
	diagnostics bool
}

func defaultOptions() options {
	return options{diagnostics: true}
}

// WithDiagnostics controls whether Abort prints the failing lane's
// coordinates before halting. Enabled by default.
func WithDiagnostics(enabled bool) Option {
	return func(o *options) {
		o.diagnostics = enabled
	}
}

// Runtime owns the host bridge services for the lifetime of a kernel.
type Runtime struct {
	host    ports.HostBridge
	opts    options
	alloc   *Allocator
	console *Console
	invoker *Invoker
}

// New builds the runtime around host.
func New(host ports.HostBridge, opts ...Option) *Runtime {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Runtime{
		host:    host,
		opts:    o,
		alloc:   &Allocator{host: host},
		console: &Console{host: host},
		invoker: &Invoker{host: host},
	}
}

// Allocator returns the host-backed heap service.
func (r *Runtime) Allocator() *Allocator { return r.alloc }

// Console returns the host console writer.
func (r *Runtime) Console() *Console { return r.console }

// Invoker returns the host function call service.
func (r *Runtime) Invoker() *Invoker { return r.invoker }

// NewLane binds a lane to this runtime. intr answers the lane-relative
// queries and must belong to the goroutine that runs the lane.
func (r *Runtime) NewLane(intr ports.Intrinsics) *Lane {
	l := &Lane{rt: r, intr: intr}
	l.state.Store(int32(LaneRunning))
	return l
}

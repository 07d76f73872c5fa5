package device

import (
	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// Invoker calls host-resident functions by opaque handle.
//
// Each call is an independent round trip: the response always belongs to the
// request that produced it, while calls from different lanes may complete in
// any order.
type Invoker struct {
	host ports.HostBridge
}

// Invoke runs the host function handle with seven argument words and returns
// its 128-bit result.
func (i *Invoker) Invoke(handle uint64, args [entities.HostCallArgs]uint64) entities.Word128 {
	return i.host.CallHostFunction(entities.HostCallRequest{Function: handle, Args: args})
}

// Call is Invoke for fewer than seven arguments; missing words are zero.
// Passing more than seven words is a contract violation.
func (i *Invoker) Call(handle uint64, args ...uint64) entities.Word128 {
	return i.Invoke(handle, abi.PackArgs(args))
}

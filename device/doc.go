// Package device is the accelerator-side runtime. It gives kernel code the
// capabilities the accelerator lacks natively by forwarding them across the
// host boundary: dynamic memory (Allocator), console output (Console) and
// calls into host-resident functions (Invoker).
//
// A Runtime is built once per program around a ports.HostBridge and shared
// by every lane. Each lane binds its own intrinsics with Runtime.NewLane.
//
//	rt := device.New(host)
//	lane := rt.NewLane(intrinsics)
//	lane.Run(func(l *device.Lane) {
//	    buf := rt.Allocator().AllocateBytes(64)
//	    if buf == nil {
//	        l.Abort("out of device memory")
//	    }
//	    rt.Console().Printf("thread %s ready\n", l.WorkitemID())
//	})
//
// Bridge calls block the calling lane until the host answers. They carry no
// context: a host that never answers stalls the lane forever.
//
// The runtime keeps no shared mutable state and takes no locks. Calls from
// different lanes may reach the host in any order, so the order in which
// concurrent allocations are served is unspecified.
//
// Abort halts only the calling lane. A sibling that later waits on a barrier
// the halted lane would have joined never gets past it.
package device

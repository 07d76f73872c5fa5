package devicetest

import (
	"golang.org/x/sync/errgroup"

	"github.com/amdgpu-go/devlibs/device"
)

// Kernel is the body run on each lane. A returned error fails the run; it is
// meant for test assertions, not for device semantics.
type Kernel func(l *device.Lane) error

// RunLanes runs kernel concurrently on one device lane per FakeLane and
// waits for all of them. An aborted lane counts as finished. It returns the
// first error a kernel returned.
//
// A kernel that waits on a barrier a halted sibling would have joined blocks
// forever, as it would on hardware.
func RunLanes(rt *device.Runtime, lanes []*FakeLane, kernel Kernel) error {
	var g errgroup.Group
	for _, fl := range lanes {
		lane := rt.NewLane(fl)
		g.Go(func() error {
			return runIsolated(lane, kernel)
		})
	}
	return g.Wait()
}

// RunLane runs kernel on a single lane and waits for it.
func RunLane(rt *device.Runtime, fl *FakeLane, kernel Kernel) error {
	return RunLanes(rt, []*FakeLane{fl}, kernel)
}

// runIsolated runs the lane on its own goroutine so that the goroutine exit
// performed by Abort never unwinds the caller.
func runIsolated(lane *device.Lane, kernel Kernel) error {
	done := make(chan error, 1)
	go func() {
		var err error
		defer func() { done <- err }()
		lane.Run(func(l *device.Lane) {
			err = kernel(l)
		})
	}()
	return <-done
}

//go:build !wasip1

package device

import (
	"github.com/amdgpu-go/devlibs/domain/ports"
)

// NewNative builds a Runtime over the host routines linked into the device
// program. Outside wasip1 it always fails; use New with a ports.HostBridge.
func NewNative(opts ...Option) (*Runtime, error) {
	return nil, ErrNativeUnavailable
}

// NativeIntrinsics returns the hardware intrinsics of the calling lane.
// Outside wasip1 it always fails.
func NativeIntrinsics() (ports.Intrinsics, error) {
	return nil, ErrNativeUnavailable
}

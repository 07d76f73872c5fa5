package entities

import "fmt"

// Dim3 is a three-axis index (work-item within a group, or group within a dispatch).
type Dim3 struct {
	X, Y, Z uint32
}

func (d Dim3) String() string {
	return fmt.Sprintf("%d,%d,%d", d.X, d.Y, d.Z)
}

// HsaSignal is the handle of an HSA completion signal. Handle 0 means no signal.
type HsaSignal struct {
	Handle uint64
}

// DispatchPacket mirrors hsa_kernel_dispatch_packet_t, the packet the driver
// used to launch the running kernel. The layout must match the hardware
// packet byte for byte; it is only ever read through a borrowed pointer.
type DispatchPacket struct {
	Header             uint16
	Setup              uint16
	WorkgroupSizeX     uint16
	WorkgroupSizeY     uint16
	WorkgroupSizeZ     uint16
	Reserved0          uint16
	GridSizeX          uint32
	GridSizeY          uint32
	GridSizeZ          uint32
	PrivateSegmentSize uint32
	GroupSegmentSize   uint32
	KernelObject       uint64
	KernargAddress     uint64
	Reserved2          uint64
	CompletionSignal   HsaSignal
}

// WorkgroupSize returns the work-group dimensions in work-items.
func (p *DispatchPacket) WorkgroupSize() Dim3 {
	return Dim3{X: uint32(p.WorkgroupSizeX), Y: uint32(p.WorkgroupSizeY), Z: uint32(p.WorkgroupSizeZ)}
}

// GridSize returns the grid dimensions in work-items.
func (p *DispatchPacket) GridSize() Dim3 {
	return Dim3{X: p.GridSizeX, Y: p.GridSizeY, Z: p.GridSizeZ}
}

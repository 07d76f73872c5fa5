package entities

import "fmt"

// ExecutionWidth is the number of lanes in one wavefront.
type ExecutionWidth uint32

const (
	// Wave32 is the native width of RDNA targets (gfx10 and later).
	Wave32 ExecutionWidth = 32
	// Wave64 is the native width of GCN and CDNA targets, and the width any
	// target runs at with +wavefrontsize64.
	Wave64 ExecutionWidth = 64
)

// Valid reports whether w is one of the widths the hardware supports.
func (w ExecutionWidth) Valid() bool {
	return w == Wave32 || w == Wave64
}

// Switch returns the "on"/"off" token used in the wavefrontsize64 artifact name.
func (w ExecutionWidth) Switch() string {
	if w == Wave64 {
		return "on"
	}
	return "off"
}

func (w ExecutionWidth) String() string {
	return fmt.Sprintf("wave%d", uint32(w))
}

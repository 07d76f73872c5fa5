package entities

import "fmt"

// HostCallArgs is the number of 64-bit input words a host call carries.
const HostCallArgs = 7

// HostCallRequest is one cross-boundary call: an opaque host function
// handle plus seven argument words. Unused words are zero.
type HostCallRequest struct {
	Function uint64
	Args     [HostCallArgs]uint64
}

// Word128 is the 128-bit result of a host call, split into two words.
type Word128 struct {
	Lo uint64
	Hi uint64
}

// HostCallResponse is the two output words of a host call.
type HostCallResponse = Word128

// Words returns the result as the two output words in host order.
func (w Word128) Words() [2]uint64 {
	return [2]uint64{w.Lo, w.Hi}
}

// IsZero reports whether both words are zero.
func (w Word128) IsZero() bool {
	return w.Lo == 0 && w.Hi == 0
}

func (w Word128) String() string {
	if w.Hi == 0 {
		return fmt.Sprintf("%#x", w.Lo)
	}
	return fmt.Sprintf("%#x%016x", w.Hi, w.Lo)
}

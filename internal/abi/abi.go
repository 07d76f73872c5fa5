// Package abi holds the marshalling rules shared by the device runtime and
// its test doubles: the signed 32-bit console length field, the seven-word
// host call argument block, and raw address conversions.
package abi

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/entities"
	"github.com/amdgpu-go/devlibs/domain/errors"
)

// MaxConsoleLength is the largest byte count the print routine's length
// field can carry.
const MaxConsoleLength = math.MaxInt32

// ConsoleLength converts n to the print routine's length field.
// It fails with LengthOverflowError when n does not fit.
func ConsoleLength(n int) (int32, error) {
	if n < 0 || n > MaxConsoleLength {
		return 0, &errors.LengthOverflowError{Length: n, Limit: MaxConsoleLength}
	}
	return int32(n), nil
}

// PackArgs zero-pads args into the fixed argument block of a host call.
// Panics with a ContractViolation if more than HostCallArgs words are given.
func PackArgs(args []uint64) [entities.HostCallArgs]uint64 {
	var block [entities.HostCallArgs]uint64
	if len(args) > len(block) {
		panic(&errors.ContractViolation{
			Operation: "host call",
			Reason:    fmt.Sprintf("%d argument words given, at most %d fit", len(args), len(block)),
		})
	}
	copy(block[:], args)
	return block
}

// PackWord128 assembles a host call result from the two output words.
func PackWord128(words [2]uint64) entities.Word128 {
	return entities.Word128{Lo: words[0], Hi: words[1]}
}

// Pointer converts a host-issued address into a pointer. Address 0 maps to nil.
func Pointer(addr uint64) unsafe.Pointer {
	if addr == 0 {
		return nil
	}
	//nolint:gosec // G103: host-issued addresses are valid device memory
	return unsafe.Pointer(uintptr(addr))
}

// Address is the inverse of Pointer.
func Address(p unsafe.Pointer) uint64 {
	return uint64(uintptr(p))
}

// ReadBytes copies length bytes starting at p.
// Panics if p is nil and length is non-zero.
func ReadBytes(p unsafe.Pointer, length int) []byte {
	if length == 0 {
		return []byte{}
	}
	if p == nil {
		panic(fmt.Sprintf("abi: invalid read - null pointer with non-zero length (%d)", length))
	}
	src := unsafe.Slice((*byte)(p), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}

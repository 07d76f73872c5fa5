package device

import (
	"fmt"
	"unsafe"

	"github.com/amdgpu-go/devlibs/domain/errors"
	"github.com/amdgpu-go/devlibs/domain/ports"
	"github.com/amdgpu-go/devlibs/internal/abi"
)

// Console writes to the host's standard output. It implements io.Writer.
//
// Each Write is exactly one host print. Output longer than the transport's
// signed 32-bit length field is rejected whole, never split.
type Console struct {
	host ports.HostBridge
}

// Write prints p. It fails with LengthOverflowError, writing nothing, when
// len(p) exceeds abi.MaxConsoleLength.
func (c *Console) Write(p []byte) (int, error) {
	return c.write(unsafe.Pointer(unsafe.SliceData(p)), len(p))
}

// WriteString prints s without copying it.
func (c *Console) WriteString(s string) (int, error) {
	return c.write(unsafe.Pointer(unsafe.StringData(s)), len(s))
}

func (c *Console) write(p unsafe.Pointer, n int) (int, error) {
	length, err := abi.ConsoleLength(n)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		return 0, nil
	}
	c.host.WriteConsole(p, length)
	return n, nil
}

// Print writes s. An oversized s is a contract violation.
func (c *Console) Print(s string) {
	c.mustWrite(s)
}

// Println writes s followed by a newline in a single host print.
func (c *Console) Println(s string) {
	c.mustWrite(s + "\n")
}

// Printf formats according to format and writes the result.
func (c *Console) Printf(format string, args ...any) {
	c.mustWrite(fmt.Sprintf(format, args...))
}

func (c *Console) mustWrite(s string) {
	if _, err := c.WriteString(s); err != nil {
		panic(&errors.ContractViolation{Operation: "console print", Err: err})
	}
}

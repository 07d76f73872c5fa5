package device

import "unsafe"

// WriteRaw exposes the length-checked print so tests can claim lengths no
// real buffer could back.
func (c *Console) WriteRaw(p unsafe.Pointer, n int) (int, error) {
	return c.write(p, n)
}

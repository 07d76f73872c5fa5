package device_test

import (
	stdErrors "errors"
	"fmt"
	"io"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdgpu-go/devlibs/device"
	"github.com/amdgpu-go/devlibs/devicetest"
	"github.com/amdgpu-go/devlibs/domain/errors"
)

func newRuntime(t *testing.T, opts ...devicetest.HostOption) (*device.Runtime, *devicetest.FakeHost) {
	t.Helper()
	host, err := devicetest.NewFakeHost(opts...)
	require.NoError(t, err)
	return device.New(host), host
}

func TestConsole_Write(t *testing.T) {
	rt, host := newRuntime(t)

	var w io.Writer = rt.Console()
	n, err := w.Write([]byte("hello from lane\n"))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, []string{"hello from lane\n"}, host.Prints())
}

func TestConsole_WriteEmpty(t *testing.T) {
	rt, host := newRuntime(t)

	n, err := rt.Console().Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, host.Prints())
}

func TestConsole_WriteOverflow(t *testing.T) {
	rt, host := newRuntime(t)
	buf := []byte("x")

	n, err := rt.Console().WriteRaw(unsafe.Pointer(&buf[0]), math.MaxInt32+1)

	var overflow *errors.LengthOverflowError
	require.True(t, stdErrors.As(err, &overflow), "got %v", err)
	assert.Equal(t, math.MaxInt32+1, overflow.Length)
	assert.Equal(t, math.MaxInt32, overflow.Limit)
	assert.Zero(t, n)
	assert.Empty(t, host.Prints(), "nothing may reach the host")
}

func TestConsole_PrintFamily(t *testing.T) {
	rt, host := newRuntime(t)
	c := rt.Console()

	c.Print("a")
	c.Println("b")
	c.Printf("%d-%s", 7, "c")

	assert.Equal(t, []string{"a", "b\n", "7-c"}, host.Prints())
	assert.Equal(t, "ab\n7-c", host.Console())
}

func TestConsole_FprintfIsOnePrint(t *testing.T) {
	rt, host := newRuntime(t)

	_, err := fmt.Fprintf(rt.Console(), "value=%d\n", 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"value=42\n"}, host.Prints())
}

//go:build !windows

package webgpu

import (
	"fmt"
	"runtime"

	"github.com/born-ml/bessel/internal/tensor"
)

// Transfer is unavailable on this platform.
type Transfer struct{}

// New always fails on this platform.
func New() (*Transfer, error) {
	return nil, fmt.Errorf("%w: not supported on %s", ErrDeviceUnavailable, runtime.GOOS)
}

// Device returns tensor.WebGPU.
func (*Transfer) Device() tensor.Device { return tensor.WebGPU }

// Upload always fails on this platform.
func (*Transfer) Upload([]byte) (tensor.DeviceBuffer, error) {
	return nil, ErrDeviceUnavailable
}

// Release does nothing.
func (*Transfer) Release() {}

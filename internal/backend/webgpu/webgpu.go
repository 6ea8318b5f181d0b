// Package webgpu moves tensors between host memory and a WebGPU device.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
//
// Only data transfer lives here: Bessel values are always computed on the
// host, so tensors on the GPU are read back before evaluation and the
// result is uploaded again.
package webgpu

import (
	"errors"

	"github.com/born-ml/bessel/internal/tensor"
)

// ErrDeviceUnavailable is returned when no WebGPU adapter can be used on
// this system.
var ErrDeviceUnavailable = errors.New("webgpu: device unavailable")

// Register opens the default WebGPU device and makes it reachable from
// tensor.ToDevice(t, tensor.WebGPU). The returned function unregisters the
// transfer and releases the device.
func Register() (unregister func(), err error) {
	tr, err := New()
	if err != nil {
		return nil, err
	}
	remove := tensor.RegisterTransfer(tr)
	return func() {
		remove()
		tr.Release()
	}, nil
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/bessel/internal/tensor"
)

// DeviceBuffer is tensor memory owned by an accelerator.
type DeviceBuffer = tensor.DeviceBuffer

// Transfer moves tensor bytes from host memory onto one device.
type Transfer = tensor.Transfer

// RegisterTransfer makes a device reachable from ToDevice. The returned
// function removes the registration.
func RegisterTransfer(tr Transfer) (unregister func()) {
	return tensor.RegisterTransfer(tr)
}

// HasTransfer reports whether tensors can be moved to the device.
func HasTransfer(dev Device) bool {
	return tensor.HasTransfer(dev)
}

// ToDevice returns t placed on dev, leaving t untouched.
func ToDevice(t *RawTensor, dev Device) (*RawTensor, error) {
	return tensor.ToDevice(t, dev)
}

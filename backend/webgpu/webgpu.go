// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu makes tensor.WebGPU reachable from tensor.ToDevice.
//
// Example:
//
//	unregister, err := webgpu.Register()
//	if errors.Is(err, webgpu.ErrDeviceUnavailable) {
//	    // stay on CPU
//	}
//	defer unregister()
package webgpu

import (
	internalwebgpu "github.com/born-ml/bessel/internal/backend/webgpu"
)

// ErrDeviceUnavailable is returned when no WebGPU adapter can be used.
var ErrDeviceUnavailable = internalwebgpu.ErrDeviceUnavailable

// Register opens the default WebGPU device and registers its transfer.
// The returned function unregisters it and releases the device.
func Register() (unregister func(), err error) {
	return internalwebgpu.Register()
}

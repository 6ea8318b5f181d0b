// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor model used by the bessel module.
//
// # Overview
//
// A RawTensor holds float32 or float64 elements with a shape, a dtype and a
// device. CPU tensors live in host memory; tensors on an accelerator live
// behind a DeviceBuffer and are reached through a registered Transfer.
//
// # Basic Usage
//
//	import "github.com/born-ml/bessel/tensor"
//
//	func main() {
//	    z, err := tensor.FromSlice([]float64{0.5, 1, 2}, tensor.Shape{3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    values, _ := tensor.Values(z)
//	    fmt.Println(values)
//	}
//
// # Devices
//
// CPU is always available. Other devices become usable once a Transfer is
// registered for them (see the backend/webgpu package):
//
//	gpu, err := tensor.ToDevice(z, tensor.WebGPU)
package tensor

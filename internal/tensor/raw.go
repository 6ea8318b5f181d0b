package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is the untyped tensor representation shared by backends and the
// gradient tape.
//
// A tensor lives either in host memory (device CPU, data in host) or on an
// accelerator (data behind a DeviceBuffer). Element accessors only work on
// host tensors; use ToDevice(t, CPU) to bring a tensor back first.
type RawTensor struct {
	host   []byte
	remote DeviceBuffer
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw creates a new zero-filled host tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if device != CPU {
		return nil, fmt.Errorf("new tensor: %s memory must be allocated through its transfer", device)
	}

	return &RawTensor{
		host:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: CPU,
	}, nil
}

// newDeviceRaw wraps an accelerator buffer.
func newDeviceRaw(shape Shape, dtype DataType, device Device, buf DeviceBuffer) *RawTensor {
	return &RawTensor{
		remote: buf,
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsHost reports whether the tensor's data is in host memory.
func (r *RawTensor) IsHost() bool {
	return r.device == CPU
}

// Data returns the raw host bytes.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	r.mustBeHost("Data")
	return r.host
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32 or it is not on the host.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBeHost("AsFloat32")
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.host[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64 or it is not on the host.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBeHost("AsFloat64")
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.host[0])), r.NumElements())
}

// Clone returns a deep copy. Device tensors are copied through the host.
func (r *RawTensor) Clone() *RawTensor {
	if !r.IsHost() {
		host, err := ToDevice(r, CPU)
		if err != nil {
			panic(fmt.Sprintf("clone: %v", err))
		}
		clone, err := ToDevice(host, r.device)
		if err != nil {
			panic(fmt.Sprintf("clone: %v", err))
		}
		return clone
	}
	return &RawTensor{
		host:   append([]byte(nil), r.host...),
		shape:  r.shape.Clone(),
		dtype:  r.dtype,
		device: CPU,
	}
}

// Release frees accelerator memory held by the tensor. Host tensors are
// left to the garbage collector.
func (r *RawTensor) Release() {
	if r.remote != nil {
		r.remote.Release()
	}
}

// String returns a short description, not the data.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(%v, %s, %s)", r.shape, r.dtype, r.device)
}

func (r *RawTensor) mustBeHost(op string) {
	if r.device != CPU {
		panic(fmt.Sprintf("%s: tensor is on %s; move it to CPU first", op, r.device))
	}
}

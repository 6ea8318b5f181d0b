//go:build windows

package webgpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/bessel/internal/tensor"
)

var _ tensor.Transfer = (*Transfer)(nil)

// Transfer uploads tensor bytes into WebGPU storage buffers.
type Transfer struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	mu sync.Mutex // serializes queue submissions and buffer maps
}

// New opens the default adapter and device.
// Returns an error wrapping ErrDeviceUnavailable if WebGPU cannot be used.
func New() (tr *Transfer, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			tr = nil
			err = fmt.Errorf("%w: native library not available: %v", ErrDeviceUnavailable, r)
		}
	}()

	if err := wgpu.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create instance: %w", ErrDeviceUnavailable, err)
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request adapter: %w", ErrDeviceUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to request device: %w", ErrDeviceUnavailable, err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: failed to get queue", ErrDeviceUnavailable)
	}

	return &Transfer{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}, nil
}

// Device returns tensor.WebGPU.
func (t *Transfer) Device() tensor.Device {
	return tensor.WebGPU
}

// Upload copies data into a new storage buffer.
func (t *Transfer) Upload(data []byte) (tensor.DeviceBuffer, error) {
	size := alignedSize(len(data))

	t.mu.Lock()
	defer t.mu.Unlock()

	// Create buffer with MappedAtCreation for initial data upload
	buffer := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		return nil, fmt.Errorf("webgpu: failed to create %d byte buffer", size)
	}

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return &gpuBuffer{owner: t, buffer: buffer, size: size, length: len(data)}, nil
}

// Release frees the device. Buffers created by this transfer must not be
// used afterwards.
func (t *Transfer) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.queue != nil {
		t.queue.Release()
		t.queue = nil
	}
	if t.device != nil {
		t.device.Release()
		t.device = nil
	}
	if t.adapter != nil {
		t.adapter.Release()
		t.adapter = nil
	}
	if t.instance != nil {
		t.instance.Release()
		t.instance = nil
	}
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (t *Transfer) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.device == nil {
		return nil, fmt.Errorf("webgpu: read after release: %w", ErrDeviceUnavailable)
	}

	staging := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := t.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmdBuffer := encoder.Finish(nil)
	t.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(t.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

// gpuBuffer is a tensor's storage on the GPU.
type gpuBuffer struct {
	owner  *Transfer
	buffer *wgpu.Buffer
	size   uint64 // allocated, multiple of 4
	length int    // bytes of tensor data
}

func (b *gpuBuffer) Read() ([]byte, error) {
	if b.buffer == nil {
		return nil, fmt.Errorf("webgpu: buffer released")
	}
	data, err := b.owner.readBuffer(b.buffer, b.size)
	if err != nil {
		return nil, err
	}
	return data[:b.length], nil
}

func (b *gpuBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

// alignedSize rounds n up to the 4 byte copy alignment WebGPU requires.
func alignedSize(n int) uint64 {
	return (uint64(n) + 3) &^ 3
}

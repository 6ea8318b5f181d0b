package tensor

import (
	"errors"
	"sync/atomic"
)

var errReleased = errors.New("mock transfer: buffer released")

// Verify that MemoryTransfer implements Transfer.
var _ Transfer = (*MemoryTransfer)(nil)

// MemoryTransfer is an in-process Transfer for tests. It keeps uploaded
// bytes in ordinary memory but labels them with an accelerator device, so
// code paths that move tensors on and off a device can run without one.
type MemoryTransfer struct {
	Dev Device

	uploads   atomic.Int64
	downloads atomic.Int64
}

// NewMemoryTransfer creates a MemoryTransfer for dev.
func NewMemoryTransfer(dev Device) *MemoryTransfer {
	return &MemoryTransfer{Dev: dev}
}

// Device returns the device this transfer serves.
func (m *MemoryTransfer) Device() Device {
	return m.Dev
}

// Upload copies data into a new buffer.
func (m *MemoryTransfer) Upload(data []byte) (DeviceBuffer, error) {
	m.uploads.Add(1)
	return &memoryBuffer{owner: m, data: append([]byte(nil), data...)}, nil
}

// Uploads returns how many buffers were uploaded.
func (m *MemoryTransfer) Uploads() int64 {
	return m.uploads.Load()
}

// Downloads returns how many buffers were read back.
func (m *MemoryTransfer) Downloads() int64 {
	return m.downloads.Load()
}

type memoryBuffer struct {
	owner *MemoryTransfer
	data  []byte
}

func (b *memoryBuffer) Read() ([]byte, error) {
	if b.data == nil {
		return nil, errReleased
	}
	b.owner.downloads.Add(1)
	return append([]byte(nil), b.data...), nil
}

func (b *memoryBuffer) Release() {
	b.data = nil
}

package tensor

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoTransfer is returned when no Transfer is registered for a device.
var ErrNoTransfer = errors.New("tensor: no transfer registered for device")

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// DeviceBuffer is tensor memory owned by an accelerator.
type DeviceBuffer interface {
	// Read copies the buffer contents back into host memory.
	Read() ([]byte, error)
	// Release frees the device memory.
	Release()
}

// Transfer moves tensor bytes from host memory onto one device.
// Implementations register themselves with RegisterTransfer.
type Transfer interface {
	Device() Device
	Upload(data []byte) (DeviceBuffer, error)
}

var (
	transfersMu sync.RWMutex
	transfers   = make(map[Device]Transfer)
)

// RegisterTransfer makes a device reachable from ToDevice. A later
// registration for the same device replaces the earlier one. The returned
// function removes the registration.
func RegisterTransfer(tr Transfer) (unregister func()) {
	dev := tr.Device()
	if dev == CPU {
		panic("tensor: CPU is built in and cannot be registered")
	}

	transfersMu.Lock()
	transfers[dev] = tr
	transfersMu.Unlock()

	return func() {
		transfersMu.Lock()
		defer transfersMu.Unlock()
		if transfers[dev] == tr {
			delete(transfers, dev)
		}
	}
}

// HasTransfer reports whether tensors can be moved to the device.
func HasTransfer(dev Device) bool {
	if dev == CPU {
		return true
	}
	transfersMu.RLock()
	defer transfersMu.RUnlock()
	_, ok := transfers[dev]
	return ok
}

func lookupTransfer(dev Device) (Transfer, error) {
	transfersMu.RLock()
	defer transfersMu.RUnlock()
	tr, ok := transfers[dev]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTransfer, dev)
	}
	return tr, nil
}

// ToDevice returns t placed on dev. A tensor already on dev is returned
// as is; otherwise a new tensor is created and t is left untouched.
// Moves between two accelerators go through host memory.
func ToDevice(t *RawTensor, dev Device) (*RawTensor, error) {
	if t.device == dev {
		return t, nil
	}

	host := t
	if !t.IsHost() {
		data, err := t.remote.Read()
		if err != nil {
			return nil, fmt.Errorf("download from %s: %w", t.device, err)
		}
		if len(data) < t.ByteSize() {
			return nil, fmt.Errorf("download from %s: got %d bytes, want %d", t.device, len(data), t.ByteSize())
		}
		host = &RawTensor{
			host:   data[:t.ByteSize()],
			shape:  t.shape.Clone(),
			dtype:  t.dtype,
			device: CPU,
		}
	}
	if dev == CPU {
		return host, nil
	}

	tr, err := lookupTransfer(dev)
	if err != nil {
		return nil, err
	}
	buf, err := tr.Upload(host.host)
	if err != nil {
		return nil, fmt.Errorf("upload to %s: %w", dev, err)
	}
	return newDeviceRaw(t.shape, t.dtype, dev, buf), nil
}

// MustToDevice is ToDevice for callers that treat a failed move as a bug.
func MustToDevice(t *RawTensor, dev Device) *RawTensor {
	out, err := ToDevice(t, dev)
	if err != nil {
		panic(err)
	}
	return out
}

package discovery

import (
	"sync"

	"github.com/dmfalke/tunecast/internal/domain"
)

// Registry is the discovery-session view of the network: the devices seen
// so far, in first-seen order, and which one the app is connected to.
// Devices themselves stay immutable values; the registry only swaps them.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]domain.Device
	order   []string
	current *domain.Device
}

func NewRegistry() *Registry {
	return &Registry{devices: make(map[string]domain.Device)}
}

// Upsert records a discovered device, replacing any previous advertisement
// with the same id.
func (r *Registry) Upsert(device domain.Device) {
	if device.ID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.devices[device.ID]; !seen {
		r.order = append(r.order, device.ID)
	}
	r.devices[device.ID] = device
}

// List returns the devices in first-seen order, each with its connection
// flag recomputed against the currently connected device.
func (r *Registry) List() []domain.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()
	devices := make([]domain.Device, 0, len(r.order))
	for _, id := range r.order {
		devices = append(devices, r.devices[id].Connected(r.current))
	}
	return devices
}

// Get returns the device with the given id.
func (r *Registry) Get(id string) (domain.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	device, ok := r.devices[id]
	if !ok {
		return domain.Device{}, false
	}
	return device.Connected(r.current), true
}

// Connect marks the device with the given id as the connected one.
func (r *Registry) Connect(id string) (domain.Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	device, ok := r.devices[id]
	if !ok {
		return domain.Device{}, false
	}
	r.current = &device
	return device.Connected(r.current), true
}

// Disconnect clears the connected device.
func (r *Registry) Disconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

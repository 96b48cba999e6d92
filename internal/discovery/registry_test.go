package discovery

import (
	"testing"

	"github.com/dmfalke/tunecast/internal/domain"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	registry.Upsert(domain.Device{ID: "a", Name: "First"})
	registry.Upsert(domain.Device{ID: "b", Name: "Second"})
	registry.Upsert(domain.Device{ID: "a", Name: "First (renamed)"})
	registry.Upsert(domain.Device{}) // dropped sentinel, ignored

	devices := registry.List()
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	// First-seen order, latest advertisement wins.
	if devices[0].ID != "a" || devices[0].Name != "First (renamed)" {
		t.Errorf("devices[0] = %+v", devices[0])
	}

	for _, d := range devices {
		if d.IsConnected {
			t.Errorf("device %s connected before Connect", d.ID)
		}
	}

	if _, ok := registry.Connect("missing"); ok {
		t.Error("Connect succeeded for unknown id")
	}
	connected, ok := registry.Connect("b")
	if !ok || !connected.IsConnected {
		t.Fatalf("Connect(b) = %+v, %v", connected, ok)
	}

	devices = registry.List()
	for _, d := range devices {
		if d.IsConnected != (d.ID == "b") {
			t.Errorf("device %s IsConnected = %v", d.ID, d.IsConnected)
		}
	}

	registry.Disconnect()
	if d, _ := registry.Get("b"); d.IsConnected {
		t.Error("device still connected after Disconnect")
	}
}

package domain

// Device is a playback source or sink discovered on the network. A device
// is constructed once per discovery event and treated as immutable; the
// With*/Connected transforms return updated copies.
type Device struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Host            string `json:"host"`
	IP              string `json:"ip"`
	Port            int    `json:"port"`
	Service         string `json:"service"`
	App             string `json:"app"`
	IsConnected     bool   `json:"is_connected"`
	BaseURL         string `json:"base_url,omitempty"`
	IsCastDevice    bool   `json:"is_cast_device"`
	IsSourceDevice  bool   `json:"is_source_device"`
	IsCurrentDevice bool   `json:"is_current_device"`
}

// WithBaseURL returns a copy of the device with the base URL replaced.
func (d Device) WithBaseURL(baseURL string) Device {
	d.BaseURL = baseURL
	return d
}

// Connected returns a copy with IsConnected recomputed against the
// currently connected device. A nil current device is not an error; the
// copy is simply not connected.
func (d Device) Connected(current *Device) Device {
	if current == nil {
		d.IsConnected = false
		return d
	}
	d.IsConnected = d.ID == current.ID
	return d
}

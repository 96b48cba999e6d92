package upnp

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
)

// Client fetches root descriptor documents from devices advertised over
// SSDP and normalizes them.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a descriptor client. Passing nil uses a client tuned
// for many short-lived requests against LAN devices.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	return &Client{httpClient: httpClient}
}

// rootDocument mirrors the subset of the UPnP device description schema
// needed to identify a device.
type rootDocument struct {
	Device struct {
		DeviceType   string `xml:"deviceType"`
		FriendlyName string `xml:"friendlyName"`
		UDN          string `xml:"UDN"`
	} `xml:"device"`
}

// FetchDescriptor retrieves and parses the device description at
// location. The location itself becomes the descriptor's location, so the
// result feeds straight into DeviceFromDescriptor.
func (c *Client) FetchDescriptor(ctx context.Context, location string) (Descriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor location %q: %w", location, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to fetch descriptor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Descriptor{}, fmt.Errorf("descriptor fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var doc rootDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	return Descriptor{
		Location:     location,
		DeviceType:   doc.Device.DeviceType,
		FriendlyName: doc.Device.FriendlyName,
		UDN:          doc.Device.UDN,
	}, nil
}

// FetchDevice fetches the descriptor at location and normalizes it into a
// canonical device in one step.
func (c *Client) FetchDevice(ctx context.Context, location string) (domain.Device, error) {
	desc, err := c.FetchDescriptor(ctx, location)
	if err != nil {
		return domain.Device{}, err
	}
	return DeviceFromDescriptor(desc)
}

// Package upnp holds the boundary types exchanged with the UPnP/DLNA
// client: the parsed device descriptor coming in, and the DIDL metadata
// projection going out to renderers.
package upnp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
)

// Descriptor is the device description produced by the UPnP client from a
// root descriptor document.
type Descriptor struct {
	Location     string
	DeviceType   string
	FriendlyName string
	UDN          string
}

// DeviceFromDescriptor normalizes a descriptor into a canonical device.
// Unlike noisy mDNS records, a descriptor with an unparseable location URL
// is a contract breach by the UPnP client and is reported as an error:
// host and port are unrecoverable without it.
//
// Cast and source capabilities are derived independently from the
// device-type URN; a device may be neither, or both.
func DeviceFromDescriptor(desc Descriptor) (domain.Device, error) {
	loc, err := url.Parse(desc.Location)
	if err != nil {
		return domain.Device{}, fmt.Errorf("malformed descriptor location %q: %w", desc.Location, err)
	}
	host := loc.Hostname()
	if host == "" {
		return domain.Device{}, fmt.Errorf("descriptor location %q has no host", desc.Location)
	}
	port, err := strconv.Atoi(loc.Port())
	if err != nil {
		return domain.Device{}, fmt.Errorf("descriptor location %q has no usable port: %w", desc.Location, err)
	}

	return domain.Device{
		ID:             desc.UDN,
		Name:           desc.FriendlyName,
		Host:           host,
		IP:             host,
		Port:           port,
		Service:        desc.DeviceType,
		App:            constants.AppDLNA,
		BaseURL:        desc.Location,
		IsCastDevice:   strings.Contains(desc.DeviceType, constants.URNMediaRenderer),
		IsSourceDevice: strings.Contains(desc.DeviceType, constants.URNMediaServer),
	}, nil
}

// Metadata is the DIDL-Lite item description sent to a renderer when
// casting a track.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtURI string
}

// TrackMetadata projects a track onto renderer metadata. The album and
// art fields are empty when the track carries no album copy.
func TrackMetadata(track domain.Track) Metadata {
	meta := Metadata{
		Title:  track.Title,
		Artist: track.Artist,
	}
	if track.Album != nil {
		meta.Album = track.Album.Title
		meta.AlbumArtURI = track.Album.Cover
	}
	return meta
}

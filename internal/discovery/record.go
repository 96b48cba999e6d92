// Package discovery normalizes network service advertisements into
// canonical devices. The transport (mDNS browsing) only produces raw
// records; all protocol interpretation happens here.
package discovery

import (
	"strings"

	"github.com/grandcat/zeroconf"

	"github.com/dmfalke/tunecast/internal/constants"
)

// ServiceRecord is the boundary shape produced by the discovery transport:
// a fully qualified service name, the advertised hostname, one or more
// addresses, a port and a string-keyed property mapping.
type ServiceRecord struct {
	Fullname   string
	Hostname   string
	Addresses  []string
	Port       int
	Properties map[string]string
}

// Protocol identifies which advertisement format produced a record. The
// record's fully qualified name is matched against the known patterns in
// fixed priority order before any field extraction happens; anything else
// is Unknown and normalizes to a default device.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolXBMC
	ProtocolMusicPlayer
	ProtocolChromecast
	ProtocolAirPlay
)

func (p Protocol) String() string {
	switch p {
	case ProtocolXBMC:
		return constants.AppXBMC
	case ProtocolMusicPlayer:
		return constants.AppMusicPlayer
	case ProtocolChromecast:
		return constants.AppChromecast
	case ProtocolAirPlay:
		return constants.AppAirPlay
	default:
		return "unknown"
	}
}

// DetectProtocol classifies a fully qualified service name. Discovery
// feeds are noisy, so unmatched names are Unknown rather than an error.
func DetectProtocol(fullname string) Protocol {
	switch {
	case strings.Contains(fullname, "xbmc"):
		return ProtocolXBMC
	case strings.Contains(fullname, constants.MusicPlayerService):
		return ProtocolMusicPlayer
	case strings.Contains(fullname, constants.ChromecastService):
		return ProtocolChromecast
	case strings.Contains(fullname, constants.AirPlayService):
		return ProtocolAirPlay
	default:
		return ProtocolUnknown
	}
}

// RecordFromEntry converts a resolved zeroconf entry into the transport
// boundary shape. TXT entries without an '=' are kept as flag keys with an
// empty value.
func RecordFromEntry(entry *zeroconf.ServiceEntry) ServiceRecord {
	record := ServiceRecord{
		Fullname:   entry.ServiceInstanceName(),
		Hostname:   entry.HostName,
		Port:       entry.Port,
		Properties: make(map[string]string, len(entry.Text)),
	}

	for _, addr := range entry.AddrIPv4 {
		record.Addresses = append(record.Addresses, addr.String())
	}
	for _, addr := range entry.AddrIPv6 {
		record.Addresses = append(record.Addresses, addr.String())
	}

	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		record.Properties[key] = value
	}

	return record
}

func (r ServiceRecord) firstAddress() string {
	if len(r.Addresses) == 0 {
		return ""
	}
	return r.Addresses[0]
}

package discovery

import (
	"strings"

	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
)

// LocalIdentity is the configured identity of the machine running this
// process. It is passed explicitly so normalization stays a pure function
// of its inputs.
type LocalIdentity struct {
	DeviceID string
	IP       string
}

// Normalize maps one raw service record to a canonical device. The
// protocol is detected first; extraction is then a pure per-variant
// function over the already-classified record. Unknown records normalize
// to the zero device so new advertisement types on the network never
// surface as failures.
func Normalize(record ServiceRecord, local LocalIdentity) domain.Device {
	switch DetectProtocol(record.Fullname) {
	case ProtocolXBMC:
		return normalizeXBMC(record)
	case ProtocolMusicPlayer:
		return normalizeMusicPlayer(record, local)
	case ProtocolChromecast:
		return normalizeChromecast(record)
	case ProtocolAirPlay:
		return normalizeAirPlay(record)
	default:
		return domain.Device{}
	}
}

// NormalizeAll maps a batch of records, keeping IsCurrentDevice on at most
// one of them (the first match wins).
func NormalizeAll(records []ServiceRecord, local LocalIdentity) []domain.Device {
	devices := make([]domain.Device, len(records))
	seenCurrent := false
	for i, record := range records {
		device := Normalize(record, local)
		if device.IsCurrentDevice {
			if seenCurrent {
				device.IsCurrentDevice = false
			}
			seenCurrent = true
		}
		devices[i] = device
	}
	return devices
}

func normalizeXBMC(record ServiceRecord) domain.Device {
	name := strings.ReplaceAll(record.Fullname, constants.XBMCService, "")
	name = strings.ReplaceAll(name, ".", "")

	return domain.Device{
		ID:             record.Fullname,
		Name:           name,
		Host:           trimTrailingLabel(record.Hostname),
		IP:             record.firstAddress(),
		Port:           record.Port,
		Service:        record.Fullname,
		App:            constants.AppXBMC,
		IsCastDevice:   true,
		IsSourceDevice: true,
	}
}

// normalizeMusicPlayer handles the proprietary compound name
// "<scheme>-<device-id>.<service type>". The record is the current device
// only when the id matches the locally configured identity and the scheme
// segment is exactly "http"; in that case the advertised address is
// replaced with the local interface address, which is always reachable
// even when the mDNS cache is stale.
func normalizeMusicPlayer(record ServiceRecord, local LocalIdentity) domain.Device {
	trimmed := strings.ReplaceAll(record.Fullname, constants.MusicPlayerService, "")
	segments := strings.Split(trimmed, "-")
	if len(segments) < 2 {
		return domain.Device{}
	}
	deviceID := strings.ReplaceAll(segments[1], ".", "")
	scheme := strings.Split(record.Fullname, "-")[0]

	isCurrent := deviceID == local.DeviceID && scheme == "http"

	ip := record.firstAddress()
	if isCurrent {
		ip = local.IP
	}

	name := record.Properties["device_name"]
	if name == "" {
		name = deviceID
	}

	return domain.Device{
		ID:              deviceID,
		Name:            name,
		Host:            trimTrailingLabel(record.Hostname),
		IP:              ip,
		Port:            record.Port,
		Service:         scheme,
		App:             constants.AppMusicPlayer,
		IsCastDevice:    true,
		IsSourceDevice:  true,
		IsCurrentDevice: isCurrent,
	}
}

func normalizeChromecast(record ServiceRecord) domain.Device {
	return domain.Device{
		ID:           record.Properties["id"],
		Name:         record.Properties["fn"],
		Host:         trimTrailingLabel(record.Hostname),
		IP:           record.firstAddress(),
		Port:         record.Port,
		Service:      record.Fullname,
		App:          constants.AppChromecast,
		IsCastDevice: true,
	}
}

func normalizeAirPlay(record ServiceRecord) domain.Device {
	// AirPlay instance names look like "AABBCCDDEEFF@Living Room._raop._tcp.local."
	_, after, found := strings.Cut(record.Fullname, "@")
	if !found {
		return domain.Device{}
	}
	name := strings.ReplaceAll(after, constants.AirPlayService, "")
	name = trimTrailingLabel(name)

	return domain.Device{
		ID:           record.Fullname,
		Name:         name,
		Host:         trimTrailingLabel(record.Hostname),
		IP:           record.firstAddress(),
		Port:         record.Port,
		Service:      record.Fullname,
		App:          constants.AppAirPlay,
		IsCastDevice: true,
	}
}

// trimTrailingLabel drops the trailing dot of an mDNS name such as
// "office.local.".
func trimTrailingLabel(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}

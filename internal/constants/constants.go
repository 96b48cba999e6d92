// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort         = "5053"
	DefaultDBPath       = "tunecast.db"
	DefaultIndexPath    = "tunecast.bleve"
	DefaultScanInterval = 10 * time.Minute
	DefaultHTTPTimeout  = 30 * time.Second
)

// mDNS service types browsed during discovery. The fully qualified name of
// a record is "<instance>.<service type>".
const (
	MusicPlayerService = "_music-player._tcp.local."
	XBMCService        = "_xbmc-jsonrpc-h._tcp.local."
	ChromecastService  = "_googlecast._tcp.local."
	AirPlayService     = "_raop._tcp.local."
)

// App identifiers carried on normalized devices.
const (
	AppXBMC        = "xbmc"
	AppMusicPlayer = "music-player"
	AppChromecast  = "chromecast"
	AppAirPlay     = "airplay"
	AppDLNA        = "dlna"
)

// Device-type URNs matched against UPnP descriptors.
const (
	URNMediaRenderer = "urn:schemas-upnp-org:device:MediaRenderer"
	URNMediaServer   = "urn:schemas-upnp-org:device:MediaServer"
)

// NoneTag is the placeholder for absent textual tag fields. Downstream
// consumers expect a non-empty string, so this is a compatibility default
// rather than an error.
const NoneTag = "None"

// Cover art MIME types reported by the tag readers.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
)

// AudioExtensions lists the file extensions picked up by the library scanner.
var AudioExtensions = []string{".flac", ".mp3", ".m4a", ".ogg"}

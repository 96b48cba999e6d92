package discovery

import (
	"context"
	"strings"
	"sync"

	"github.com/grandcat/zeroconf"

	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/domain"
	"github.com/dmfalke/tunecast/internal/logger"
)

// browsedServices are the service types resolved on the local network.
// Each is the "<service>" part of a fully qualified "<service>.<domain>."
// name; the domain is always "local.".
var browsedServices = []string{
	strings.TrimSuffix(constants.MusicPlayerService, ".local."),
	strings.TrimSuffix(constants.XBMCService, ".local."),
	strings.TrimSuffix(constants.ChromecastService, ".local."),
	strings.TrimSuffix(constants.AirPlayService, ".local."),
}

// Browser resolves service advertisements and emits normalized devices.
type Browser struct {
	Local   LocalIdentity
	Logger  *logger.Logger
	devices chan domain.Device
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewBrowser creates a browser emitting devices normalized against the
// given local identity.
func NewBrowser(local LocalIdentity, log *logger.Logger) *Browser {
	ctx, cancel := context.WithCancel(context.Background())
	return &Browser{
		Local:   local,
		Logger:  log.WithComponent("discovery"),
		devices: make(chan domain.Device),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Devices returns the stream of normalized devices. The channel is closed
// when the browser stops.
func (b *Browser) Devices() <-chan domain.Device {
	return b.devices
}

// Start begins browsing all known service types.
func (b *Browser) Start() error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return err
	}

	for _, service := range browsedServices {
		entries := make(chan *zeroconf.ServiceEntry)

		b.wg.Add(1)
		go b.consume(entries)

		if err := resolver.Browse(b.ctx, service, "local.", entries); err != nil {
			b.Logger.Error("Failed to browse service", "service", service, "error", err)
		}
	}

	go func() {
		b.wg.Wait()
		close(b.devices)
	}()

	return nil
}

// Stop cancels browsing and waits for the consumers to drain.
func (b *Browser) Stop() {
	b.cancel()
	b.wg.Wait()
}

func (b *Browser) consume(entries <-chan *zeroconf.ServiceEntry) {
	defer b.wg.Done()

	for entry := range entries {
		record := RecordFromEntry(entry)
		device := Normalize(record, b.Local)
		if device.ID == "" {
			b.Logger.Debug("Dropping unrecognized record", "fullname", record.Fullname)
			continue
		}

		b.Logger.Debug("Discovered device", "id", device.ID, "app", device.App)

		select {
		case b.devices <- device:
		case <-b.ctx.Done():
			return
		}
	}
}

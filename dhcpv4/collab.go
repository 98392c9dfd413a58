package dhcpv4

import (
	"log/slog"
	"time"

	"github.com/soypat/dhcpc/internal"
)

// Transport is the UDP endpoint used by the client. SendTo must not retain
// payload after returning.
type Transport interface {
	// Bind opens the endpoint on the local port.
	Bind(port uint16) error
	// Close releases the endpoint opened by Bind.
	Close() error
	// SendTo sends payload from src to dst:dstPort. A zero src is the
	// unspecified address.
	SendTo(payload []byte, src, dst [4]byte, dstPort uint16) error
}

// AddrManager applies and removes the leased address on the interface.
type AddrManager interface {
	Assigned(addr, netmask, gateway [4]byte)
	Unassigned(addr [4]byte)
}

// Prober runs ARP address conflict detection for the client. Results are
// reported back through [Client.OnProbeResult] and [Client.OnConflictDetected].
type Prober interface {
	// StartProbe begins probing addr after delay.
	StartProbe(addr [4]byte, delay time.Duration)
	// Announce sends gratuitous ARP announcements for addr and starts
	// passive conflict detection.
	Announce(addr [4]byte)
	// Stop cancels any probe or passive detection in progress.
	Stop()
}

// Observer receives diagnostic notifications. Implementations must not call
// back into the client.
type Observer interface {
	OnDrop(reason error)
	OnTransmit(mt MessageType, dst [4]byte)
	OnStateChange(from, to ClientState)
	OnConflict(addr [4]byte, peer [6]byte)
}

type logger struct {
	log *slog.Logger
}

func (l logger) error(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelError, msg, attrs...)
}
func (l logger) info(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelInfo, msg, attrs...)
}
func (l logger) warn(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelWarn, msg, attrs...)
}
func (l logger) debug(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, slog.LevelDebug, msg, attrs...)
}
func (l logger) trace(msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, internal.LevelTrace, msg, attrs...)
}

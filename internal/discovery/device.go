package discovery

import (
	"fmt"
	"time"
)

// Device represents an IoT device discovered on the local network.
// Discovery exists to help users match the MAC addresses shown in the panel
// to physical devices on their LAN; it talks mDNS, not the console.
type Device struct {
	// MAC is the device MAC address as advertised in the TXT records
	// (e.g., "AA:BB:CC:DD:EE:FF"), normalized to upper case.
	MAC string

	// Hostname is the mDNS hostname (e.g., "lamp-4786.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.23")
	IP string

	// Port is the advertised service port
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("Device %s (%s) at %s:%d", d.MAC, d.Hostname, d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}

package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestDevice_String(t *testing.T) {
	d := &Device{
		MAC:      "AA:BB:CC:DD:EE:FF",
		Hostname: "lamp-4786.local.",
		IP:       "192.168.1.23",
		Port:     80,
	}

	want := "Device AA:BB:CC:DD:EE:FF (lamp-4786.local.) at 192.168.1.23:80"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	d := &Device{Metadata: map[string]string{"path": "/"}}

	if got := d.GetMetadata("path"); got != "/" {
		t.Errorf("GetMetadata(path) = %q, want /", got)
	}
	if got := d.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}

	d.Metadata = nil
	if got := d.GetMetadata("path"); got != "" {
		t.Errorf("GetMetadata with nil map = %q, want empty", got)
	}
}

func TestParseServiceEntry(t *testing.T) {
	s := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "lamp-4786.local.",
		Port:     8080,
		Text:     []string{"mac=aa:bb:cc:dd:ee:ff", "path=/"},
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.23")},
	}

	device := s.parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry returned nil for a valid entry")
	}

	if device.MAC != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("MAC = %s, want upper-cased AA:BB:CC:DD:EE:FF", device.MAC)
	}
	if device.IP != "192.168.1.23" {
		t.Errorf("IP = %s", device.IP)
	}
	if device.Port != 8080 {
		t.Errorf("Port = %d, want 8080", device.Port)
	}
	if device.GetMetadata("path") != "/" {
		t.Error("TXT records should be parsed into metadata")
	}
}

func TestParseServiceEntry_SkipsEntriesWithoutMAC(t *testing.T) {
	s := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "printer.local.",
		Port:     631,
		Text:     []string{"path=/ipp"},
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
	}

	if device := s.parseServiceEntry(entry); device != nil {
		t.Errorf("entry without mac TXT record should be skipped, got %v", device)
	}
}

func TestParseServiceEntry_DefaultPort(t *testing.T) {
	s := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "lamp-4786.local.",
		Text:     []string{"mac=AA:BB:CC:DD:EE:FF"},
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.23")},
	}

	device := s.parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry returned nil")
	}
	if device.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", device.Port, DefaultPort)
	}
}

package api

// Geolocation carries the raw coordinate fields exactly as the console
// returns them. Each field is either a numeric string (e.g. "48.8584") or a
// sentinel "not available" string; the console never omits the fields.
type Geolocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// DeviceRecord is one device as returned by the console. Records are keyed
// by MAC address in the enclosing collection, so the record itself does not
// repeat the identity.
type DeviceRecord struct {
	Name        string      `json:"name"`
	Room        string      `json:"room"`
	Geolocation Geolocation `json:"geolocation"`
}

// DeviceCollection is the keyed collection of devices for an account,
// keyed by MAC address (e.g. "AA:BB:CC:DD:EE:FF").
type DeviceCollection map[string]DeviceRecord

// devicesResponse is the fetch envelope returned by GET /devices.
type devicesResponse struct {
	Devices DeviceCollection `json:"devices"`
}

// DeviceUpdate is the payload for persisting a device's editable fields.
// Coordinates are not editable through the panel, so they never appear here.
type DeviceUpdate struct {
	MACID string `json:"macid"`
	Name  string `json:"name"`
	Room  string `json:"room"`
}

// Event names pushed on the device event stream.
const (
	EventDeviceAdded   = "device.added"
	EventDeviceUpdated = "device.updated"
	EventDeviceRemoved = "device.removed"
)

// DeviceEvent is a change notification pushed by the console over the
// websocket stream. The panel treats every event as a refetch trigger.
type DeviceEvent struct {
	Event string `json:"event"`
	MACID string `json:"macid,omitempty"`
}

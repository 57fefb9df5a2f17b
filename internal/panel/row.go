package panel

import (
	"fmt"
	"strconv"
)

// Sentinel strings the console substitutes for missing coordinates. These
// are exact values, distinct from an absent or empty field.
const (
	LatitudeUnavailable  = "Latitude not available."
	LongitudeUnavailable = "Longitude not available."
)

// LocationNotFound is the display marker for a row whose position could not
// be determined. Rows carrying it are excluded from map plotting.
const LocationNotFound = "Not found"

// Row field names accepted by EditField. Only name and room are editable;
// coordinates always come from the console.
const (
	FieldDeviceName = "deviceName"
	FieldRoom       = "room"
)

// Row is the normalized, display-facing representation of one device.
//
// Invariant: Location == LocationNotFound exactly when Latitude or Longitude
// is nil. The builder and normalizer are the only writers of these fields,
// which keeps the two from diverging.
type Row struct {
	// MACID is the row identity. Immutable once created.
	MACID string

	// DeviceName and Room are the editable fields.
	DeviceName string
	Room       string

	// Latitude and Longitude are the parsed coordinates, nil when the
	// console reported either one unavailable.
	Latitude  *float64
	Longitude *float64

	// Location is the human-readable coordinate pair, built from the raw
	// strings the console sent (not reformatted from the parsed floats),
	// or LocationNotFound.
	Location string

	// SaveFailed marks a row whose last persist was rejected by the
	// console. The edit is kept on screen; the flag drives the per-row
	// failure indicator.
	SaveFailed bool
}

// Locatable reports whether the row has a usable coordinate pair.
func (r Row) Locatable() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// String returns a short human-readable description of the row.
func (r Row) String() string {
	return fmt.Sprintf("%s (%s, %s) at %s", r.MACID, r.DeviceName, r.Room, r.Location)
}

// NormalizeGeolocation converts the raw coordinate strings of one device
// into a validated pair plus display text.
//
// If either input is its "not available" sentinel, both outputs are nil and
// the location is LocationNotFound. Otherwise both are parsed as floats and
// the location joins the original unparsed strings, preserving whatever
// precision and formatting the console sent. A non-sentinel string that
// fails to parse is treated like the sentinel; a NaN coordinate is useless
// to every consumer of the numeric fields.
func NormalizeGeolocation(latitude, longitude string) (lat, lon *float64, location string) {
	if latitude == LatitudeUnavailable || longitude == LongitudeUnavailable {
		return nil, nil, LocationNotFound
	}

	latVal, latErr := strconv.ParseFloat(latitude, 64)
	lonVal, lonErr := strconv.ParseFloat(longitude, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil, LocationNotFound
	}

	return &latVal, &lonVal, latitude + ", " + longitude
}

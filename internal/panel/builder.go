package panel

import (
	"github.com/muurk/devicepanel/internal/api"
)

// Build maps the console's keyed device collection into an ordered row list
// and counts the rows without a usable location.
//
// Rows follow the collection's native iteration order; like the console's
// own listing, the order is not guaranteed stable across refetches. The
// invalid-location count is computed here and only here - edits cannot
// change a row's locatability because coordinates are not editable.
//
// Build is pure and safe to call repeatedly. Callers that distinguish "not
// yet loaded" (nil collection) from "empty account" must check for nil
// before calling and keep their previous state; Build itself treats nil
// like an empty collection.
func Build(devices api.DeviceCollection) ([]Row, int) {
	rows := make([]Row, 0, len(devices))
	invalid := 0

	for macID, record := range devices {
		lat, lon, location := NormalizeGeolocation(
			record.Geolocation.Latitude,
			record.Geolocation.Longitude,
		)

		if location == LocationNotFound {
			invalid++
		}

		rows = append(rows, Row{
			MACID:      macID,
			DeviceName: record.Name,
			Room:       record.Room,
			Latitude:   lat,
			Longitude:  lon,
			Location:   location,
		})
	}

	return rows, invalid
}

// CountInvalidLocations recounts the rows carrying the not-found marker.
// Build already returns this; the recount exists for callers that splice
// rows and want the derived count to follow.
func CountInvalidLocations(rows []Row) int {
	count := 0
	for _, row := range rows {
		if row.Location == LocationNotFound {
			count++
		}
	}
	return count
}

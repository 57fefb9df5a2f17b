package panel

import (
	"testing"

	"github.com/muurk/devicepanel/internal/api"
)

func TestBuild_NormalizesRecord(t *testing.T) {
	devices := api.DeviceCollection{
		"AA:BB": {
			Name: "Lamp",
			Room: "Hall",
			Geolocation: api.Geolocation{
				Latitude:  LatitudeUnavailable,
				Longitude: "12.5",
			},
		},
	}

	rows, invalid := Build(devices)

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.MACID != "AA:BB" {
		t.Errorf("MACID = %s, want AA:BB", row.MACID)
	}
	if row.DeviceName != "Lamp" {
		t.Errorf("DeviceName = %s, want Lamp", row.DeviceName)
	}
	if row.Room != "Hall" {
		t.Errorf("Room = %s, want Hall", row.Room)
	}
	if row.Latitude != nil || row.Longitude != nil {
		t.Error("coordinates should be nil for a sentinel latitude")
	}
	if row.Location != LocationNotFound {
		t.Errorf("Location = %q, want %q", row.Location, LocationNotFound)
	}
	if invalid != 1 {
		t.Errorf("invalid count = %d, want 1", invalid)
	}
}

func TestBuild_EmptyCollection(t *testing.T) {
	rows, invalid := Build(api.DeviceCollection{})

	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
	if invalid != 0 {
		t.Errorf("invalid count = %d, want 0", invalid)
	}
}

func TestBuild_InvalidCountMatchesPredicate(t *testing.T) {
	devices := api.DeviceCollection{
		"AA:01": {Name: "Lamp", Geolocation: api.Geolocation{Latitude: "1.0", Longitude: "2.0"}},
		"AA:02": {Name: "Plug", Geolocation: api.Geolocation{Latitude: LatitudeUnavailable, Longitude: "2.0"}},
		"AA:03": {Name: "Cam", Geolocation: api.Geolocation{Latitude: "1.0", Longitude: LongitudeUnavailable}},
		"AA:04": {Name: "Hub", Geolocation: api.Geolocation{Latitude: "3.5", Longitude: "4.5"}},
	}

	rows, invalid := Build(devices)

	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}

	// The derived count must equal the exact number of not-found rows
	if got := CountInvalidLocations(rows); got != invalid {
		t.Errorf("Build count = %d, recount = %d", invalid, got)
	}
	if invalid != 2 {
		t.Errorf("invalid count = %d, want 2", invalid)
	}
}

func TestBuild_LocationNilFieldsNeverDiverge(t *testing.T) {
	devices := api.DeviceCollection{
		"AA:01": {Geolocation: api.Geolocation{Latitude: "1.0", Longitude: "2.0"}},
		"AA:02": {Geolocation: api.Geolocation{Latitude: LatitudeUnavailable, Longitude: LongitudeUnavailable}},
		"AA:03": {Geolocation: api.Geolocation{Latitude: "bogus", Longitude: "2.0"}},
	}

	rows, _ := Build(devices)

	for _, row := range rows {
		notFound := row.Location == LocationNotFound
		hasNil := row.Latitude == nil || row.Longitude == nil
		if notFound != hasNil {
			t.Errorf("row %s: Location %q disagrees with nil coordinates", row.MACID, row.Location)
		}
	}
}

func TestBuild_VerbatimLocationText(t *testing.T) {
	devices := api.DeviceCollection{
		"AA:BB": {Geolocation: api.Geolocation{Latitude: "48.8584", Longitude: "2.2945"}},
	}

	rows, _ := Build(devices)

	if rows[0].Location != "48.8584, 2.2945" {
		t.Errorf("Location = %q, want raw %q", rows[0].Location, "48.8584, 2.2945")
	}
}

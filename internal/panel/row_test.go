package panel

import "testing"

func TestNormalizeGeolocation_ValidPair(t *testing.T) {
	lat, lon, location := NormalizeGeolocation("48.8584", "2.2945")

	if lat == nil || lon == nil {
		t.Fatal("coordinates should be non-nil for a parseable pair")
	}
	if *lat != 48.8584 {
		t.Errorf("latitude = %f, want 48.8584", *lat)
	}
	if *lon != 2.2945 {
		t.Errorf("longitude = %f, want 2.2945", *lon)
	}
	if location != "48.8584, 2.2945" {
		t.Errorf("location = %q, want %q", location, "48.8584, 2.2945")
	}
}

func TestNormalizeGeolocation_PreservesRawFormatting(t *testing.T) {
	// Display text must use the original strings verbatim, not a float
	// round-trip that would drop trailing zeros.
	_, _, location := NormalizeGeolocation("50.10", "8.60")

	if location != "50.10, 8.60" {
		t.Errorf("location = %q, want raw strings %q", location, "50.10, 8.60")
	}
}

func TestNormalizeGeolocation_Sentinels(t *testing.T) {
	tests := []struct {
		name      string
		latitude  string
		longitude string
	}{
		{"latitude sentinel", LatitudeUnavailable, "12.5"},
		{"longitude sentinel", "12.5", LongitudeUnavailable},
		{"both sentinels", LatitudeUnavailable, LongitudeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, location := NormalizeGeolocation(tt.latitude, tt.longitude)

			if lat != nil || lon != nil {
				t.Error("both coordinates should be nil when either is a sentinel")
			}
			if location != LocationNotFound {
				t.Errorf("location = %q, want %q", location, LocationNotFound)
			}
		})
	}
}

func TestNormalizeGeolocation_UnparsableText(t *testing.T) {
	lat, lon, location := NormalizeGeolocation("garbage", "2.2945")

	if lat != nil || lon != nil {
		t.Error("unparsable coordinate should yield nil pair")
	}
	if location != LocationNotFound {
		t.Errorf("location = %q, want %q", location, LocationNotFound)
	}
}

func TestRow_Locatable(t *testing.T) {
	lat, lon, location := NormalizeGeolocation("1.0", "2.0")
	row := Row{MACID: "AA:BB", Latitude: lat, Longitude: lon, Location: location}

	if !row.Locatable() {
		t.Error("row with both coordinates should be locatable")
	}

	row.Latitude = nil
	if row.Locatable() {
		t.Error("row with a nil coordinate should not be locatable")
	}
}

package geomap

import (
	"fmt"
	"net/url"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"

	"github.com/muurk/devicepanel/internal/panel"
)

const (
	// staticMapEndpoint is the static-map provider endpoint
	staticMapEndpoint = "https://maps.googleapis.com/maps/api/staticmap"

	// DefaultMapWidth and DefaultMapHeight size the rendered map image
	DefaultMapWidth  = 640
	DefaultMapHeight = 300

	// dedupePrecision is the geohash precision used to collapse markers
	// standing on the same spot (precision 8 is roughly a 38m x 19m cell).
	// Two devices in the same room would otherwise stack identical pins.
	dedupePrecision = 8
)

// Marker is one plottable device position derived from a panel row.
type Marker struct {
	MACID     string
	Label     string
	Latitude  float64
	Longitude float64
}

// Markers converts the row list into map markers. Rows without a usable
// location are excluded from plotting, and co-located rows collapse into a
// single marker keyed by their shared geohash cell.
func Markers(rows []panel.Row) []Marker {
	markers := make([]Marker, 0, len(rows))
	seen := make(map[string]bool)

	for _, row := range rows {
		if !row.Locatable() {
			continue
		}

		cell := geohash.EncodeWithPrecision(*row.Latitude, *row.Longitude, dedupePrecision)
		if seen[cell] {
			continue
		}
		seen[cell] = true

		markers = append(markers, Marker{
			MACID:     row.MACID,
			Label:     row.DeviceName,
			Latitude:  *row.Latitude,
			Longitude: *row.Longitude,
		})
	}

	return markers
}

// Center returns the midpoint of the markers' bounding rectangle.
// ok is false when there is nothing to plot.
func Center(markers []Marker) (lat, lng float64, ok bool) {
	if len(markers) == 0 {
		return 0, 0, false
	}

	rect := bounds(markers)
	center := rect.Center()
	return center.Lat.Degrees(), center.Lng.Degrees(), true
}

// bounds computes the lat/lng rectangle enclosing all markers.
func bounds(markers []Marker) s2.Rect {
	rect := s2.EmptyRect()
	for _, m := range markers {
		rect = rect.AddPoint(s2.LatLngFromDegrees(m.Latitude, m.Longitude))
	}
	return rect
}

// StaticMapURL builds the static-map image URL for the given markers.
// Rendering is gated on the API key: an empty key (or an empty marker list)
// yields an empty string and the caller suppresses the map section without
// affecting the table.
func StaticMapURL(apiKey string, markers []Marker) string {
	if apiKey == "" || len(markers) == 0 {
		return ""
	}

	centerLat, centerLng, _ := Center(markers)

	positions := make([]string, 0, len(markers))
	for _, m := range markers {
		positions = append(positions, fmt.Sprintf("%g,%g", m.Latitude, m.Longitude))
	}

	query := url.Values{}
	query.Set("size", fmt.Sprintf("%dx%d", DefaultMapWidth, DefaultMapHeight))
	query.Set("center", fmt.Sprintf("%g,%g", centerLat, centerLng))
	query.Set("markers", strings.Join(positions, "|"))
	query.Set("key", apiKey)

	return staticMapEndpoint + "?" + query.Encode()
}

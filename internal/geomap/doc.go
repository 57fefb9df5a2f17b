// Package geomap adapts panel rows for the external map rendering surface.
//
// It derives plottable markers from the normalized row list (rows whose
// location could not be determined are excluded), computes the map center
// from the markers' bounding rectangle, and builds the static-map image URL.
// All of it is gated on a configured map API key; without one the panel
// simply omits the map section.
package geomap

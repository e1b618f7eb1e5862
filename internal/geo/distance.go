// Package geo computes the great-circle distances shown on feed cards and
// map popups.
package geo

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371

// Unknown is displayed whenever either coordinate pair is absent.
const Unknown = "Unknown"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the haversine distance between two points in kilometers.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// FormatDistance renders the distance from the viewer to a record's
// coordinates, rounded to one decimal, or Unknown when either endpoint is
// missing.
func FormatDistance(me *Point, lat, lon *float64) string {
	if me == nil || lat == nil || lon == nil {
		return Unknown
	}
	return fmt.Sprintf("%.1fkm", Distance(*me, Point{Lat: *lat, Lon: *lon}))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

package models

import "math"

// Location is a named place (a gym, usually) with optional GPS coordinates
// and a match radius in meters. A location without coordinates can only be
// selected manually.
type Location struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	RadiusM   float64  `json:"radius_m,omitempty"`
}

// Equipment is a user's gym equipment entry. The name doubles as the
// equipment tag on logged sets and personal records.
type Equipment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

const earthRadiusM = 6371000

// HaversineM returns the great-circle distance in meters between two points.
func HaversineM(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// NearestLocation returns the closest location whose match radius contains
// the given point, or nil if none matches. Locations without coordinates
// are skipped. Radius 0 means a 100m default.
func NearestLocation(locations []Location, lat, lon float64) *Location {
	var best *Location
	bestDist := math.MaxFloat64
	for i := range locations {
		l := &locations[i]
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		radius := l.RadiusM
		if radius <= 0 {
			radius = 100
		}
		d := HaversineM(lat, lon, *l.Latitude, *l.Longitude)
		if d <= radius && d < bestDist {
			best = l
			bestDist = d
		}
	}
	return best
}

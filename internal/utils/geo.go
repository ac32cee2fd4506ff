package utils

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters calcule la distance haversine entre deux coordonnées GPS
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadius indique si un point est à moins de radiusMeters d'un autre
func WithinRadius(lat1, lng1, lat2, lng2, radiusMeters float64) bool {
	return DistanceMeters(lat1, lng1, lat2, lng2) <= radiusMeters
}

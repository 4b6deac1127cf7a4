// Package geo measures distances in the chain's flat coordinate space.
//
// Coordinates are synthetic (latitude and longitude conventionally lie in
// [0,100]), so distance is the plain Euclidean norm rather than a
// great-circle distance.
package geo

import "math"

// EligibilityRadius is the maximum distance at which a customer may order from a store.
const EligibilityRadius = 30.0

// Coordinate is a point in the chain's coordinate space.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coordinate) float64 {
	return math.Hypot(a.Latitude-b.Latitude, a.Longitude-b.Longitude)
}

// IsEligible reports whether a customer at user may order from a store at store.
// A distance of exactly EligibilityRadius is eligible.
func IsEligible(user, store Coordinate) bool {
	return Distance(user, store) <= EligibilityRadius
}

package domain

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula
const EarthRadiusMeters = 6371e3

// Coordinate is a latitude/longitude pair in degrees
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Distance returns the great-circle distance in meters between a and b.
// Inputs are not range checked.
func Distance(a, b Coordinate) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// WarehouseLocation is a registered site with its geofence radius
type WarehouseLocation struct {
	Name   string  `json:"name" yaml:"name"`
	Lat    float64 `json:"lat" yaml:"lat"`
	Lng    float64 `json:"lng" yaml:"lng"`
	Radius float64 `json:"radius" yaml:"radius"` // meters
}

// Coordinate returns the warehouse position
func (w WarehouseLocation) Coordinate() Coordinate {
	return Coordinate{Lat: w.Lat, Lng: w.Lng}
}

// DistanceFrom returns the distance in meters from c to the warehouse
func (w WarehouseLocation) DistanceFrom(c Coordinate) float64 {
	return Distance(c, w.Coordinate())
}

// Contains reports whether c lies within the radius. The boundary counts as inside.
func (w WarehouseLocation) Contains(c Coordinate) bool {
	return w.DistanceFrom(c) <= w.Radius
}

// Geofence carries the inputs of the validator's location gate
type Geofence struct {
	Enabled      bool
	UserLocation *Coordinate
	Lookup       func(name string) (WarehouseLocation, bool)
}

// Check returns a *GeofenceViolationError when the gate applies and the user
// is outside the radius of the named warehouse. A disabled gate, an unknown
// user position or a warehouse without registered coordinates all pass.
func (g Geofence) Check(warehouse string) error {
	if !g.Enabled || g.UserLocation == nil || g.Lookup == nil {
		return nil
	}

	site, ok := g.Lookup(warehouse)
	if !ok {
		return nil
	}

	d := site.DistanceFrom(*g.UserLocation)
	if d > site.Radius {
		return &GeofenceViolationError{Warehouse: site.Name, Distance: d, Radius: site.Radius}
	}
	return nil
}

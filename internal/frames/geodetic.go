// ABOUTME: ECEF to geodetic latitude, longitude and altitude
// ABOUTME: Iterative solution on the WGS-84 ellipsoid

package frames

import (
	"math"

	"github.com/harper/eci2ecef/internal/models"
)

const (
	// EarthRadiusKm is the WGS-84 equatorial radius.
	EarthRadiusKm = 6378.137
	// EarthEccentricity is the WGS-84 first eccentricity.
	EarthEccentricity = 0.081819221456

	geodeticTolerance = 1e-12
	geodeticMaxIter   = 20
)

// Geodetic is a position on the reference ellipsoid.
type Geodetic struct {
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	AltitudeKm   float64 `json:"altitude_km"`
}

// ToGeodetic converts an ECEF vector in km to geodetic coordinates
// (Vallado Algorithm 12).
func ToGeodetic(v models.Vector3) Geodetic {
	e2 := EarthEccentricity * EarthEccentricity
	r := math.Hypot(v.X, v.Y)
	lon := math.Atan2(v.Y, v.X)
	lat := math.Atan2(v.Z, r)

	for i := 0; i < geodeticMaxIter; i++ {
		s := math.Sin(lat)
		c := EarthRadiusKm / math.Sqrt(1-e2*s*s)
		next := math.Atan2(v.Z+c*e2*s, r)
		done := math.Abs(next-lat) < geodeticTolerance
		lat = next
		if done {
			break
		}
	}

	s := math.Sin(lat)
	c := EarthRadiusKm / math.Sqrt(1-e2*s*s)
	var alt float64
	if cosLat := math.Cos(lat); math.Abs(cosLat) > 1e-9 {
		alt = r/cosLat - c
	} else {
		// Near the poles r/cos(lat) is ill-conditioned.
		alt = math.Abs(v.Z) - c*(1-e2)
	}

	return Geodetic{
		LatitudeDeg:  lat * 180 / math.Pi,
		LongitudeDeg: lon * 180 / math.Pi,
		AltitudeKm:   alt,
	}
}

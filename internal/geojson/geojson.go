// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts recorded conversions to ground-track FeatureCollections

package geojson

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/models"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude, altitude_m] for a Point.
type PointCoordinates [3]float64

// LineCoordinates represents [[lng, lat, alt], ...] for a LineString.
type LineCoordinates []PointCoordinates

// groundPoint maps a recorded conversion to its geodetic position. Recorded
// output carries the negated y, so it is flipped back before the lookup.
// Conversions with non-finite values are reported as not ok.
func groundPoint(c *models.Conversion) (PointCoordinates, frames.Geodetic, bool) {
	ecef := models.Vector3{X: c.Output.X, Y: -c.Output.Y, Z: c.Output.Z}
	g := frames.ToGeodetic(ecef)
	for _, v := range []float64{g.LatitudeDeg, g.LongitudeDeg, g.AltitudeKm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return PointCoordinates{}, g, false
		}
	}
	return PointCoordinates{g.LongitudeDeg, g.LatitudeDeg, g.AltitudeKm * 1000}, g, true
}

// chronological returns conversions sorted oldest first.
func chronological(conversions []*models.Conversion) []*models.Conversion {
	sorted := make([]*models.Conversion, len(conversions))
	copy(sorted, conversions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// ToPointsFeatureCollection converts conversions to a FeatureCollection of
// Points under each ECEF position.
func ToPointsFeatureCollection(conversions []*models.Conversion) *FeatureCollection {
	features := make([]Feature, 0, len(conversions))

	for _, c := range chronological(conversions) {
		coords, g, ok := groundPoint(c)
		if !ok {
			continue
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"id":          c.ID.String(),
				"model":       c.Model,
				"epoch":       c.Epoch.String(),
				"altitude_km": g.AltitudeKm,
				"recorded_at": c.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToLineFeatureCollection converts conversions to a single LineString ground
// track in recording order. Fewer than two usable points yield no feature.
func ToLineFeatureCollection(conversions []*models.Conversion) *FeatureCollection {
	coords := make(LineCoordinates, 0, len(conversions))
	for _, c := range chronological(conversions) {
		if p, _, ok := groundPoint(c); ok {
			coords = append(coords, p)
		}
	}

	features := []Feature{}
	if len(coords) >= 2 {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: coords,
			},
			Properties: map[string]interface{}{
				"point_count": len(coords),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}

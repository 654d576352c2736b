// ABOUTME: Unit tests for GeoJSON generation
// ABOUTME: Tests Point and LineString ground-track builders

package geojson

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/harper/eci2ecef/internal/models"
)

// conversionAt records a printed output triple at a given age.
func conversionAt(output models.Vector3, age time.Duration) *models.Conversion {
	c := models.NewConversion("legacy", models.Epoch{Year: 2023, Month: 3, Day: 15, Hour: 12},
		models.Vector3{X: 7000}, output, 0, 2460019)
	c.CreatedAt = time.Now().Add(-age)
	return c
}

func TestToPointsFeatureCollection(t *testing.T) {
	// Printed y is negated: this sits at 90 degrees east on the equator.
	c := conversionAt(models.Vector3{X: 0, Y: -7000, Z: 0}, 0)

	fc := ToPointsFeatureCollection([]*models.Conversion{c})

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Geometry.Type != "Point" {
		t.Errorf("expected Point geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(PointCoordinates)
	if !ok {
		t.Fatal("expected PointCoordinates")
	}
	// GeoJSON uses [lng, lat, alt] order
	if math.Abs(coords[0]-90) > 1e-9 {
		t.Errorf("expected longitude 90, got %f", coords[0])
	}
	if math.Abs(coords[1]) > 1e-9 {
		t.Errorf("expected latitude 0, got %f", coords[1])
	}
	if math.Abs(coords[2]-(7000-6378.137)*1000) > 1e-3 {
		t.Errorf("expected altitude in meters, got %f", coords[2])
	}

	if feature.Properties["id"] != c.ID.String() {
		t.Errorf("expected id %s, got %v", c.ID, feature.Properties["id"])
	}
	if feature.Properties["model"] != "legacy" {
		t.Errorf("expected model 'legacy', got %v", feature.Properties["model"])
	}
}

func TestToPointsFeatureCollection_SkipsNonFinite(t *testing.T) {
	conversions := []*models.Conversion{
		conversionAt(models.Vector3{X: math.NaN()}, 0),
		conversionAt(models.Vector3{X: 7000}, time.Minute),
	}

	fc := ToPointsFeatureCollection(conversions)

	if len(fc.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(fc.Features))
	}
}

func TestToLineFeatureCollection(t *testing.T) {
	conversions := []*models.Conversion{
		conversionAt(models.Vector3{X: 0, Y: -7000}, 0),
		conversionAt(models.Vector3{X: 7000}, time.Hour),
	}

	fc := ToLineFeatureCollection(conversions)

	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}

	feature := fc.Features[0]
	if feature.Geometry.Type != "LineString" {
		t.Errorf("expected LineString geometry, got %s", feature.Geometry.Type)
	}

	coords, ok := feature.Geometry.Coordinates.(LineCoordinates)
	if !ok {
		t.Fatal("expected LineCoordinates")
	}
	if len(coords) != 2 {
		t.Fatalf("expected 2 coordinates, got %d", len(coords))
	}
	// Oldest first
	if math.Abs(coords[0][0]) > 1e-9 || math.Abs(coords[1][0]-90) > 1e-9 {
		t.Errorf("expected chronological track, got %v", coords)
	}

	if feature.Properties["point_count"] != 2 {
		t.Errorf("expected point_count 2, got %v", feature.Properties["point_count"])
	}
}

func TestToLineFeatureCollection_SinglePoint(t *testing.T) {
	// A single point should not create a LineString
	fc := ToLineFeatureCollection([]*models.Conversion{conversionAt(models.Vector3{X: 7000}, 0)})

	if len(fc.Features) != 0 {
		t.Errorf("expected 0 features for single point, got %d", len(fc.Features))
	}
}

func TestFeatureCollection_ToJSON(t *testing.T) {
	fc := ToLineFeatureCollection(nil)

	jsonBytes, err := fc.ToJSON()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if parsed["type"] != "FeatureCollection" {
		t.Error("expected type FeatureCollection in JSON")
	}
	if features, ok := parsed["features"].([]interface{}); !ok || len(features) != 0 {
		t.Errorf("expected empty features array, got %v", parsed["features"])
	}
}

// ABOUTME: Conversion result output
// ABOUTME: Plain three-line output, JSON, geodetic lines and matrix display

package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/models"
	"gonum.org/v1/gonum/mat"
)

// ErrNonFiniteJSON is returned when a result holding NaN or Inf is written as JSON.
var ErrNonFiniteJSON = errors.New("cannot encode non-finite values as JSON")

// WriteLines prints the output triple one value per line using Go's default
// float formatting. The y component is the sign-flipped value.
func WriteLines(w io.Writer, res frames.Result) error {
	out := res.Printed()
	_, err := fmt.Fprintf(w, "%v\n%v\n%v\n", out.X, out.Y, out.Z)
	return err
}

// WriteGeodetic prints latitude, longitude (degrees) and altitude (km).
func WriteGeodetic(w io.Writer, g frames.Geodetic) error {
	_, err := fmt.Fprintf(w, "%v\n%v\n%v\n", g.LatitudeDeg, g.LongitudeDeg, g.AltitudeKm)
	return err
}

// ResultJSON is the JSON form of a conversion.
type ResultJSON struct {
	Model      string           `json:"model"`
	Epoch      models.Epoch     `json:"epoch"`
	ECI        models.Vector3   `json:"eci_km"`
	ECEF       models.Vector3   `json:"ecef_km"`
	GMST       float64          `json:"gmst_rad"`
	JulianDate float64          `json:"julian_date"`
	Geodetic   *frames.Geodetic `json:"geodetic,omitempty"`
}

// NewResultJSON builds the JSON view. ECEF holds the printed (sign-flipped) triple.
func NewResultJSON(res frames.Result, geo *frames.Geodetic) ResultJSON {
	return ResultJSON{
		Model:      string(res.Model),
		Epoch:      res.Epoch,
		ECI:        res.ECI,
		ECEF:       res.Printed(),
		GMST:       res.Angle.Radians,
		JulianDate: res.Angle.JulianDate,
		Geodetic:   geo,
	}
}

// CheckFinite reports ErrNonFiniteJSON when any value of the JSON view is
// NaN or infinite.
func CheckFinite(res frames.Result, geo *frames.Geodetic) error {
	out := res.Printed()
	e := res.Epoch
	values := []float64{
		e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second,
		res.ECI.X, res.ECI.Y, res.ECI.Z,
		out.X, out.Y, out.Z, res.Angle.Radians, res.Angle.JulianDate,
	}
	if geo != nil {
		values = append(values, geo.LatitudeDeg, geo.LongitudeDeg, geo.AltitudeKm)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteJSON
		}
	}
	return nil
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, res frames.Result, geo *frames.Geodetic) error {
	if err := CheckFinite(res, geo); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewResultJSON(res, geo))
}

// FormatMatrix renders a rotation matrix for terminal display.
func FormatMatrix(m mat.Matrix) string {
	return fmt.Sprintf("%.12f", mat.Formatted(m, mat.Prefix("  "), mat.Squeeze()))
}

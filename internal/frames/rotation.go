// ABOUTME: ECI to ECEF frame rotation about the Z axis
// ABOUTME: Applies the GMST angle and exposes the equivalent rotation matrix

// Package frames converts position vectors from the Earth-Centered Inertial
// frame to the Earth-Centered Earth-Fixed frame using a GMST-only rotation.
//
// Polar motion, precession, nutation and UT1-UTC are ignored.
//
// Reference: Vallado, "Fundamentals of Astrodynamics and Applications", Ch. 3.
package frames

import (
	"math"

	"github.com/harper/eci2ecef/internal/models"
	"gonum.org/v1/gonum/mat"
)

// RotateZ rotates v about the Z axis by -theta. Z is copied unchanged.
func RotateZ(v models.Vector3, theta float64) models.Vector3 {
	c := math.Cos(-theta)
	s := math.Sin(-theta)
	return models.Vector3{
		X: float64(v.X*c) - float64(v.Y*s),
		Y: float64(v.X*s) + float64(v.Y*c),
		Z: v.Z,
	}
}

// RotationMatrix returns the 3x3 matrix M with ECEF = M * ECI for the given
// GMST angle. This is R3(theta).
func RotationMatrix(theta float64) *mat.Dense {
	c := math.Cos(-theta)
	s := math.Sin(-theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// Result holds a single conversion.
type Result struct {
	Model Model
	Epoch models.Epoch
	ECI   models.Vector3
	// ECEF is the rotated vector before the output sign flip.
	ECEF  models.Vector3
	Angle Angle
}

// Printed returns the output triple: ECEF with the y component negated.
func (r Result) Printed() models.Vector3 {
	return models.Vector3{X: r.ECEF.X, Y: -r.ECEF.Y, Z: r.ECEF.Z}
}

// Convert rotates an ECI position (km) into ECEF at the given epoch.
func Convert(m Model, e models.Epoch, eci models.Vector3) (Result, error) {
	angle, err := m.Angle(e)
	if err != nil {
		return Result{}, err
	}
	if m == "" {
		m = ModelLegacy
	}
	return Result{
		Model: m,
		Epoch: e,
		ECI:   eci,
		ECEF:  RotateZ(eci, angle.Radians),
		Angle: angle,
	}, nil
}

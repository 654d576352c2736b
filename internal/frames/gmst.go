// ABOUTME: Greenwich Mean Sidereal Time models
// ABOUTME: Legacy polynomial reproduced as-is plus the IAU-82 textbook form

package frames

import (
	"errors"
	"fmt"
	"math"

	"github.com/harper/eci2ecef/internal/models"
)

// EarthRotationRate is Earth's rotation rate in rad/s used by the legacy
// GMST correction term.
const EarthRotationRate = 7.292115e-5

// ErrInvalidEpoch is returned when a model cannot use the given epoch.
var ErrInvalidEpoch = errors.New("invalid epoch")

// ErrUnknownModel is returned by ParseModel for unrecognised names.
var ErrUnknownModel = errors.New("unknown GMST model")

// Model selects how the GMST angle is derived from an epoch.
type Model string

const (
	// ModelLegacy uses the legacy day number, the (-6.2)^-6 cubic term and
	// the fmod(seconds, 360) correction. This is the default output contract.
	ModelLegacy Model = "legacy"
	// ModelIAU82 uses the fractional Julian Date and Vallado Eq 3-47.
	ModelIAU82 Model = "iau82"
)

// Models lists the accepted model names.
var Models = []Model{ModelLegacy, ModelIAU82}

// ParseModel validates a model name. An empty name selects ModelLegacy.
func ParseModel(name string) (Model, error) {
	switch Model(name) {
	case "", ModelLegacy:
		return ModelLegacy, nil
	case ModelIAU82:
		return ModelIAU82, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownModel, name, ModelLegacy, ModelIAU82)
	}
}

// legacyCubic is (-6.2)^-6, not the textbook -6.2e-6.
var legacyCubic = math.Pow(-6.2, -6)

// gmstSeconds evaluates the IAU-82 polynomial in seconds of time.
func gmstSeconds(tut1, cubic float64) float64 {
	// 876600h = 876600 * 3600 s.
	// Each term is rounded on its own so no multiply-add is fused.
	return 67310.54841 +
		float64((876600*3600+8640184.812866)*tut1) +
		float64(0.093104*math.Pow(tut1, 2)) +
		float64(cubic*math.Pow(tut1, 3))
}

// twoPi is 2π rounded to float64 before any further arithmetic.
var twoPi = 2 * math.Pi

// LegacyGMST returns the GMST angle in radians for the legacy model. The
// subtraction of the correction term can leave the angle slightly outside
// [0, 2π).
func LegacyGMST(tut1 float64) float64 {
	sec := gmstSeconds(tut1, legacyCubic)
	extra := float64(math.Mod(sec, 360) * EarthRotationRate)
	return math.Mod(sec*(twoPi/86400), twoPi) - extra
}

// IAU82GMST returns GMST in radians normalised to [0, 2π).
func IAU82GMST(tut1 float64) float64 {
	sec := math.Mod(gmstSeconds(tut1, -6.2e-6), 86400)
	if sec < 0 {
		sec += 86400
	}
	return sec / 86400 * 2 * math.Pi
}

// Angle is the GMST angle together with the values it was derived from.
type Angle struct {
	JulianDate float64
	Centuries  float64
	Radians    float64
}

// Angle derives the GMST angle for an epoch.
func (m Model) Angle(e models.Epoch) (Angle, error) {
	switch m {
	case ModelLegacy, "":
		// Time of day does not enter the legacy day number.
		jd := JulianDayNumber(e.Year, e.Month, e.Day)
		t := Centuries(jd)
		return Angle{JulianDate: jd, Centuries: t, Radians: LegacyGMST(t)}, nil
	case ModelIAU82:
		jd, err := GregorianJulianDate(e)
		if err != nil {
			return Angle{}, err
		}
		t := Centuries(jd)
		return Angle{JulianDate: jd, Centuries: t, Radians: IAU82GMST(t)}, nil
	default:
		return Angle{}, fmt.Errorf("%w: %q", ErrUnknownModel, string(m))
	}
}

// ABOUTME: Julian Date helpers for the GMST models
// ABOUTME: Legacy day number, fraction of day and centuries since J2000

package frames

import (
	"fmt"
	"math"

	"github.com/harper/eci2ecef/internal/models"
	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian Date of the J2000.0 epoch.
const J2000 = 2451545.0

// JulianDayNumber returns the legacy day number for a calendar date. January
// and February count as months 13 and 14 of the previous year, then the
// Fliegel-Van Flandern expression is evaluated with real division, so the
// result is generally not a whole number. Calendar fields are not range
// checked.
func JulianDayNumber(year, month, day float64) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := (month - 14) / 12
	// The conversion keeps a*12 rounded before the subtraction.
	return day - 32075 +
		1461*(year+4800+a)/4 +
		367*(month-2-float64(a*12))/12 -
		3*((year+4900+a)/100)/4
}

// FractionOfDay converts a time of day to a fraction of a day.
func FractionOfDay(hour, minute, second float64) float64 {
	return hour/24 + minute/1440 + second/86400
}

// Centuries returns Julian centuries elapsed since J2000.0.
func Centuries(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// GregorianJulianDate returns the fractional Julian Date of the epoch.
// Year and month must be integral.
func GregorianJulianDate(e models.Epoch) (float64, error) {
	if !isWhole(e.Year) || !isWhole(e.Month) {
		return 0, fmt.Errorf("%w: year and month must be whole numbers", ErrInvalidEpoch)
	}
	day := e.Day + FractionOfDay(e.Hour, e.Minute, e.Second)
	return julian.CalendarGregorianToJD(int(e.Year), int(e.Month), day), nil
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// ABOUTME: Tests for Julian Date helpers
// ABOUTME: Verifies legacy day numbers and Gregorian Julian Dates

package frames

import (
	"math"
	"testing"

	"github.com/harper/eci2ecef/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDayNumber(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day float64
		expected         float64
	}{
		{"J2000.0 epoch", 2000, 1, 1, 2451545.570625},
		{"January", 2023, 1, 15, 2459960.148125},
		{"leap day", 2024, 2, 29, 2460369.8275},
		{"mid March", 2023, 3, 15, 2460021.021875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, JulianDayNumber(tt.year, tt.month, tt.day), 1e-9)
		})
	}
}

func TestJulianDayNumber_DivisionIsNotTruncated(t *testing.T) {
	jd := JulianDayNumber(2023, 3, 15)
	assert.NotEqual(t, math.Trunc(jd), jd)
}

func TestJulianDayNumber_EarlyMonthsCountAsPreviousYear(t *testing.T) {
	assert.Equal(t, JulianDayNumber(2022, 13, 15), JulianDayNumber(2023, 1, 15))
	assert.Equal(t, JulianDayNumber(2023, 14, 28), JulianDayNumber(2024, 2, 28))
	// Month 13 rolls into January of the following year.
	assert.Equal(t, JulianDayNumber(2024, 1, 1), JulianDayNumber(2023, 13, 1))
}

func TestJulianDayNumber_FractionalDayPassesThrough(t *testing.T) {
	assert.InDelta(t, JulianDayNumber(2000, 1, 1)+0.25, JulianDayNumber(2000, 1, 1.25), 1e-9)
}

func TestJulianDayNumber_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(JulianDayNumber(math.NaN(), 1, 1)))
}

func TestFractionOfDay(t *testing.T) {
	assert.Equal(t, 0.5, FractionOfDay(12, 0, 0))
	assert.InDelta(t, 0.75+30.0/1440+30.0/86400, FractionOfDay(18, 30, 30), 1e-15)
	assert.Equal(t, 0.0, FractionOfDay(0, 0, 0))
}

func TestCenturies(t *testing.T) {
	assert.Equal(t, 0.0, Centuries(J2000))
	assert.Equal(t, 1.0, Centuries(J2000+36525))
}

func TestGregorianJulianDate(t *testing.T) {
	jd, err := GregorianJulianDate(models.Epoch{Year: 2000, Month: 1, Day: 1, Hour: 12})
	require.NoError(t, err)
	assert.InDelta(t, J2000, jd, 1e-9)

	// Vallado Example 3-5.
	jd, err = GregorianJulianDate(models.Epoch{Year: 1992, Month: 8, Day: 20, Hour: 12, Minute: 14})
	require.NoError(t, err)
	assert.InDelta(t, 2448855.009722222, jd, 1e-8)
}

func TestGregorianJulianDate_RejectsFractionalMonth(t *testing.T) {
	_, err := GregorianJulianDate(models.Epoch{Year: 2000, Month: 1.5, Day: 1})
	require.ErrorIs(t, err, ErrInvalidEpoch)

	_, err = GregorianJulianDate(models.Epoch{Year: math.Inf(1), Month: 1, Day: 1})
	require.ErrorIs(t, err, ErrInvalidEpoch)

	_, err = GregorianJulianDate(models.Epoch{Year: math.NaN(), Month: 1, Day: 1})
	require.ErrorIs(t, err, ErrInvalidEpoch)
}

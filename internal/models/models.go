// ABOUTME: Core data models for epochs, position vectors and recorded conversions
// ABOUTME: Provides argument parsing and constructors for history entries

package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidArgument is returned when a positional argument is not a number.
var ErrInvalidArgument = errors.New("invalid numeric argument")

// ArgNames lists the positional arguments in the order they are read.
var ArgNames = [9]string{
	"year", "month", "day", "hour", "minute", "second",
	"eci_x_km", "eci_y_km", "eci_z_km",
}

// Epoch is a UTC calendar instant. Fields are not range checked: an
// out-of-range month or day still yields a (meaningless) result.
type Epoch struct {
	Year   float64 `json:"year" yaml:"year"`
	Month  float64 `json:"month" yaml:"month"`
	Day    float64 `json:"day" yaml:"day"`
	Hour   float64 `json:"hour" yaml:"hour"`
	Minute float64 `json:"minute" yaml:"minute"`
	Second float64 `json:"second" yaml:"second"`
}

// Time returns the epoch as a time.Time when every calendar field is integral
// and in range. The second may carry a fraction.
func (e Epoch) Time() (time.Time, bool) {
	for _, f := range []float64{e.Year, e.Month, e.Day, e.Hour, e.Minute} {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return time.Time{}, false
		}
	}
	if math.IsNaN(e.Second) || math.IsInf(e.Second, 0) || e.Second < 0 || e.Second >= 61 {
		return time.Time{}, false
	}
	if e.Month < 1 || e.Month > 12 || e.Hour < 0 || e.Hour > 23 || e.Minute < 0 || e.Minute > 59 {
		return time.Time{}, false
	}
	whole, frac := math.Modf(e.Second)
	t := time.Date(int(e.Year), time.Month(int(e.Month)), int(e.Day),
		int(e.Hour), int(e.Minute), int(whole), int(frac*1e9), time.UTC)
	if t.Day() != int(e.Day) {
		return time.Time{}, false
	}
	return t, true
}

// String formats the epoch for display, falling back to the raw fields when
// they do not form a valid calendar date.
func (e Epoch) String() string {
	if t, ok := e.Time(); ok {
		return t.Format("2006-01-02T15:04:05.999Z07:00")
	}
	return fmt.Sprintf("%v-%v-%v %v:%v:%v", e.Year, e.Month, e.Day, e.Hour, e.Minute, e.Second)
}

// Vector3 is a position in km. The frame is implied by context.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Norm returns the Euclidean length of the vector.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ParseFloatArg parses a single decimal argument, naming it in the error.
// Hexadecimal literals such as 0x1p3 are rejected.
func ParseFloatArg(name, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || isHexLiteral(s) {
		return 0, fmt.Errorf("%w %s %q", ErrInvalidArgument, name, raw)
	}
	return f, nil
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseArgs reads the nine positional arguments
// (year month day hour minute second x y z).
func ParseArgs(args []string) (Epoch, Vector3, error) {
	if len(args) != len(ArgNames) {
		return Epoch{}, Vector3{}, fmt.Errorf("expected %d arguments, got %d", len(ArgNames), len(args))
	}

	var vals [9]float64
	for i, raw := range args {
		f, err := ParseFloatArg(ArgNames[i], raw)
		if err != nil {
			return Epoch{}, Vector3{}, err
		}
		vals[i] = f
	}

	epoch := Epoch{
		Year:   vals[0],
		Month:  vals[1],
		Day:    vals[2],
		Hour:   vals[3],
		Minute: vals[4],
		Second: vals[5],
	}
	return epoch, Vector3{X: vals[6], Y: vals[7], Z: vals[8]}, nil
}

// Conversion is a recorded ECI to ECEF conversion.
type Conversion struct {
	ID         uuid.UUID `json:"id"`
	Model      string    `json:"model"`
	Epoch      Epoch     `json:"epoch"`
	ECI        Vector3   `json:"eci_km"`
	Output     Vector3   `json:"output_km"`
	GMST       float64   `json:"gmst_rad"`
	JulianDate float64   `json:"julian_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewConversion creates a conversion record with a generated UUID and timestamp.
// output is the printed triple, i.e. with the y component already negated.
func NewConversion(model string, epoch Epoch, eci, output Vector3, gmst, jd float64) *Conversion {
	return &Conversion{
		ID:         uuid.New(),
		Model:      model,
		Epoch:      epoch,
		ECI:        eci,
		Output:     output,
		GMST:       gmst,
		JulianDate: jd,
		CreatedAt:  time.Now(),
	}
}

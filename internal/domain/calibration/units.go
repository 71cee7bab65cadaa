package calibration

import "strings"

// MeasurementUnit represents a real-world length unit accepted for calibration input
type MeasurementUnit string

const (
	UnitMillimeter MeasurementUnit = "mm"
	UnitCentimeter MeasurementUnit = "cm"
	UnitMeter      MeasurementUnit = "m"
	UnitKilometer  MeasurementUnit = "km"
	UnitInch       MeasurementUnit = "in"
	UnitFoot       MeasurementUnit = "ft"
)

// IsValid checks if the MeasurementUnit is a valid value
func (u MeasurementUnit) IsValid() bool {
	switch u {
	case UnitMillimeter, UnitCentimeter, UnitMeter, UnitKilometer, UnitInch, UnitFoot:
		return true
	}
	return false
}

// String returns the string representation of MeasurementUnit
func (u MeasurementUnit) String() string {
	return string(u)
}

// ToMillimeters converts a value expressed in this unit to millimetres
func (u MeasurementUnit) ToMillimeters(value float64) float64 {
	switch u {
	case UnitMillimeter:
		return value
	case UnitCentimeter:
		return value * 10
	case UnitMeter:
		return value * 1000
	case UnitKilometer:
		return value * 1000000
	case UnitInch:
		return value * 25.4
	case UnitFoot:
		return value * 304.8
	default:
		return value
	}
}

// FromMillimeters converts a millimetre value to this unit
func (u MeasurementUnit) FromMillimeters(valueMm float64) float64 {
	switch u {
	case UnitMillimeter:
		return valueMm
	case UnitCentimeter:
		return valueMm / 10
	case UnitMeter:
		return valueMm / 1000
	case UnitKilometer:
		return valueMm / 1000000
	case UnitInch:
		return valueMm / 25.4
	case UnitFoot:
		return valueMm / 304.8
	default:
		return valueMm
	}
}

// ParseMeasurementUnit normalizes and validates a unit string
func ParseMeasurementUnit(s string) (MeasurementUnit, bool) {
	u := MeasurementUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", false
	}
	return u, true
}

// AllMeasurementUnits returns all valid MeasurementUnit values
func AllMeasurementUnits() []MeasurementUnit {
	return []MeasurementUnit{
		UnitMillimeter, UnitCentimeter, UnitMeter, UnitKilometer, UnitInch, UnitFoot,
	}
}

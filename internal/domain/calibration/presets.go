package calibration

import "github.com/shopspring/decimal"

// ScalePreset is a named standard drawing scale (e.g. 1:50).
// Presets are static reference data; IsCommon drives UI ranking.
type ScalePreset struct {
	ScaleRatio  decimal.Decimal `json:"scale_ratio"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description"`
	IsCommon    bool            `json:"is_common"`
}

// scalePresets is the fixed set of standard architectural scales
var scalePresets = []ScalePreset{
	{ScaleRatio: decimal.NewFromInt(10), DisplayName: "1:10", Description: "Detail drawings", IsCommon: false},
	{ScaleRatio: decimal.NewFromInt(20), DisplayName: "1:20", Description: "Large scale plans", IsCommon: true},
	{ScaleRatio: decimal.NewFromInt(25), DisplayName: "1:25", Description: "Room layouts", IsCommon: false},
	{ScaleRatio: decimal.NewFromInt(50), DisplayName: "1:50", Description: "Floor plans", IsCommon: true},
	{ScaleRatio: decimal.NewFromInt(100), DisplayName: "1:100", Description: "Building plans", IsCommon: true},
	{ScaleRatio: decimal.NewFromInt(200), DisplayName: "1:200", Description: "Site plans", IsCommon: true},
	{ScaleRatio: decimal.NewFromInt(250), DisplayName: "1:250", Description: "Site layouts", IsCommon: false},
	{ScaleRatio: decimal.NewFromInt(500), DisplayName: "1:500", Description: "Large site plans", IsCommon: true},
	{ScaleRatio: decimal.NewFromInt(1000), DisplayName: "1:1000", Description: "Area maps", IsCommon: false},
	{ScaleRatio: decimal.NewFromInt(1250), DisplayName: "1:1250", Description: "Location maps", IsCommon: false},
}

// DefaultScaleRatio is the scale assumed for drawings that have never been
// calibrated.
var DefaultScaleRatio = decimal.NewFromInt(50)

// DefaultCalibration returns an unsaved 1:50 calibration. It backs
// conversions on uncalibrated drawings and is never persisted.
func DefaultCalibration() *Calibration {
	ratio, _ := DefaultScaleRatio.Float64()
	return &Calibration{
		PixelsPerUnit: 1.0 / ratio,
		ScaleRatio:    DefaultScaleRatio,
		Unit:          UnitMillimeter,
	}
}

// ScalePresets returns the standard scale presets in display order
func ScalePresets() []ScalePreset {
	presets := make([]ScalePreset, len(scalePresets))
	copy(presets, scalePresets)
	return presets
}

// FindPreset returns the preset matching the given ratio exactly, if any
func FindPreset(ratio decimal.Decimal) (ScalePreset, bool) {
	for _, p := range scalePresets {
		if p.ScaleRatio.Equal(ratio) {
			return p, true
		}
	}
	return ScalePreset{}, false
}

// ClosestPreset returns the preset whose ratio is nearest to the given ratio
func ClosestPreset(ratio decimal.Decimal) ScalePreset {
	closest := scalePresets[0]
	minDiff := closest.ScaleRatio.Sub(ratio).Abs()
	for _, p := range scalePresets[1:] {
		diff := p.ScaleRatio.Sub(ratio).Abs()
		if diff.LessThan(minDiff) {
			minDiff = diff
			closest = p
		}
	}
	return closest
}

package calibration

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DegeneracyThresholdPx is the minimum pixel distance between the two
// calibration points. Shorter calibration lines are rejected as degenerate.
const DegeneracyThresholdPx = 2.0

// Plausibility bounds for computed scales. Architectural drawings fall well
// inside these ranges; anything outside indicates a mis-picked point or a
// wrong known distance.
const (
	minPixelsPerUnit = 0.001
	maxPixelsPerUnit = 100.0
)

var (
	minScaleRatio = decimal.NewFromInt(1)
	maxScaleRatio = decimal.NewFromInt(10000)
)

// Result is the outcome of a calibration computation. It is ephemeral and
// never persisted; expected bad input surfaces as IsValid=false rather than
// an error.
type Result struct {
	IsValid        bool            `json:"is_valid"`
	PixelsPerUnit  float64         `json:"pixels_per_unit"`
	ScaleRatio     decimal.Decimal `json:"scale_ratio"`
	MeasuredPixels float64         `json:"measured_pixels"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	AccuracyScore  float64         `json:"accuracy_score"` // 0-100 confidence
}

func invalidResult(message string) Result {
	return Result{IsValid: false, ErrorMessage: message}
}

// Compute derives the pixel-to-real-world scale from two picked points and a
// known physical distance. It is a pure function: all failures are reported
// in the Result, never as an error.
func Compute(point1, point2 Point, knownDistance float64, unit MeasurementUnit) Result {
	if knownDistance <= 0 {
		return invalidResult("Known distance must be greater than 0")
	}
	if !unit.IsValid() {
		return invalidResult(fmt.Sprintf("Unrecognized measurement unit %q", string(unit)))
	}

	pixelDistance := point1.DistanceTo(point2)
	if pixelDistance < DegeneracyThresholdPx {
		return invalidResult("Calibration points are too close together to measure a scale")
	}

	knownDistanceMm := unit.ToMillimeters(knownDistance)
	pixelsPerUnit := pixelDistance / knownDistanceMm
	if pixelsPerUnit < minPixelsPerUnit || pixelsPerUnit > maxPixelsPerUnit {
		return invalidResult("Calculated scale appears unreasonable. Please check your measurements.")
	}

	// Scale ratio is the real-world millimetres represented by one pixel;
	// for a 1:50 drawing one pixel spans 50mm, so the ratio is 50.
	scaleRatio := decimal.NewFromFloat(knownDistanceMm / pixelDistance).Round(2)
	if scaleRatio.LessThan(minScaleRatio) || scaleRatio.GreaterThan(maxScaleRatio) {
		return invalidResult("Calculated scale ratio is outside the supported range (1:1 to 1:10000)")
	}

	return Result{
		IsValid:        true,
		PixelsPerUnit:  pixelsPerUnit,
		ScaleRatio:     scaleRatio,
		MeasuredPixels: pixelDistance,
		AccuracyScore:  accuracyScore(pixelDistance, scaleRatio),
	}
}

// accuracyScore combines two confidence heuristics and keeps the lower one:
// a short calibration line amplifies picking error, and a ratio far from any
// standard scale usually means the picked points were off.
func accuracyScore(pixelDistance float64, scaleRatio decimal.Decimal) float64 {
	distance := distanceScore(pixelDistance)
	preset := presetProximityScore(scaleRatio)
	if distance < preset {
		return distance
	}
	return preset
}

func distanceScore(pixelDistance float64) float64 {
	if pixelDistance < DegeneracyThresholdPx {
		return 0
	}
	score := 100 * (1 - DegeneracyThresholdPx/pixelDistance)
	if score > 100 {
		return 100
	}
	return score
}

func presetProximityScore(scaleRatio decimal.Decimal) float64 {
	if _, ok := FindPreset(scaleRatio); ok {
		return 95.0
	}

	closest := ClosestPreset(scaleRatio)
	diff, _ := closest.ScaleRatio.Sub(scaleRatio).Abs().Float64()
	base, _ := closest.ScaleRatio.Float64()
	percentDiff := diff / base * 100

	score := 95.0 - percentDiff*2
	if score < 50.0 {
		return 50.0
	}
	return score
}

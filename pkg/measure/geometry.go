package measure

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// DistanceBetweenPoints calculates the Euclidean distance between two points
func DistanceBetweenPoints(p1, p2 image.Point) float64 {
	return floats.Distance(
		[]float64{float64(p1.X), float64(p1.Y)},
		[]float64{float64(p2.X), float64(p2.Y)},
		2,
	)
}

// Centroid returns the integer centre of a box, rounding towards negative
// infinity.
func Centroid(box image.Rectangle) image.Point {
	return image.Pt(floorDiv2(box.Min.X+box.Max.X), floorDiv2(box.Min.Y+box.Max.Y))
}

func floorDiv2(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

// DistanceResult is a physical distance in two units.
type DistanceResult struct {
	Meters      float64
	Millimeters float64
}

// Estimate converts the pixel distance between two centroids to meters and
// millimeters using a pixels-per-meter calibration.
func Estimate(a, b image.Point, pixelsPerMeter float64) DistanceResult {
	m := DistanceBetweenPoints(a, b) / pixelsPerMeter
	return DistanceResult{Meters: m, Millimeters: m * 1000}
}

// Estimator binds a fixed calibration to Estimate.
type Estimator struct {
	pixelsPerMeter float64
}

// NewEstimator rejects calibrations that are not positive finite numbers.
func NewEstimator(pixelsPerMeter float64) (*Estimator, error) {
	if math.IsNaN(pixelsPerMeter) || math.IsInf(pixelsPerMeter, 0) || pixelsPerMeter <= 0 {
		return nil, errors.Errorf("pixels per meter must be positive, got %v", pixelsPerMeter)
	}
	return &Estimator{pixelsPerMeter: pixelsPerMeter}, nil
}

// PixelsPerMeter returns the calibration constant.
func (e *Estimator) PixelsPerMeter() float64 {
	return e.pixelsPerMeter
}

// Distance estimates the distance between two centroids.
func (e *Estimator) Distance(a, b image.Point) DistanceResult {
	return Estimate(a, b, e.pixelsPerMeter)
}

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/intothevoid/doori/pkg/measure"
)

const (
	font          = gocv.FontHersheySimplex
	centroidDot   = 6
	distanceLine  = 3
	panelLeft     = 15
	panelPad      = 10
	selectedExtra = 2
)

var labelText = color.RGBA{255, 255, 255, 255}

// Annotate draws every box request and, when present, the distance
// measurement onto img.
func Annotate(img *gocv.Mat, frame measure.Frame, thickness int) {
	for _, b := range frame.Boxes {
		DrawBoxLabel(img, b, thickness)
	}
	if frame.Measurement != nil {
		DrawDistance(img, *frame.Measurement, thickness)
	}
}

// DrawBoxLabel draws a box outline with its label on a filled tab above the
// box, or just inside it when there is no room above.
func DrawBoxLabel(img *gocv.Mat, b measure.BoxAnnotation, thickness int) {
	lw := thickness
	if b.Selected {
		lw += selectedExtra
	}
	gocv.Rectangle(img, b.Box.Canon(), b.Color, lw)
	if b.Label == "" {
		return
	}

	scale, tf := textStyle(thickness)
	size := gocv.GetTextSize(b.Label, font, scale, tf)
	tab, org := labelLayout(b.Box, size)
	gocv.Rectangle(img, tab, b.Color, -1)
	gocv.PutTextWithParams(img, b.Label, org, font, scale, labelText, tf, gocv.LineAA, false)
}

// DrawDistance draws the two distance panels in the top left corner, the
// line between the centroids and the centroid dots.
func DrawDistance(img *gocv.Mat, m measure.Measurement, thickness int) {
	scale, tf := textStyle(thickness)
	lines := []string{
		fmt.Sprintf("Distance M: %.2fm", m.Distance.Meters),
		fmt.Sprintf("Distance MM: %.2fmm", m.Distance.Millimeters),
	}
	for i, text := range lines {
		size := gocv.GetTextSize(text, font, scale, tf)
		panel, org := panelLayout(i, size)
		gocv.Rectangle(img, panel, m.LineColor, -1)
		gocv.PutTextWithParams(img, text, org, font, scale, m.CentroidColor, tf, gocv.LineAA, false)
	}

	gocv.Line(img, m.Centroids[0], m.Centroids[1], m.LineColor, distanceLine)
	gocv.Circle(img, m.Centroids[0], centroidDot, m.CentroidColor, -1)
	gocv.Circle(img, m.Centroids[1], centroidDot, m.CentroidColor, -1)
}

// textStyle derives font scale and stroke from the line thickness.
func textStyle(thickness int) (scale float64, stroke int) {
	stroke = thickness - 1
	if stroke < 1 {
		stroke = 1
	}
	return float64(thickness) / 3, stroke
}

// labelLayout places a label tab of the given text size at the top left
// corner of box and returns the tab and the text origin.
func labelLayout(box image.Rectangle, text image.Point) (tab image.Rectangle, org image.Point) {
	p := box.Canon().Min
	if p.Y-text.Y >= 3 {
		return image.Rect(p.X, p.Y-text.Y-3, p.X+text.X, p.Y), image.Pt(p.X, p.Y-2)
	}
	return image.Rect(p.X, p.Y, p.X+text.X, p.Y+text.Y+3), image.Pt(p.X, p.Y+text.Y+2)
}

// panelLayout returns the background and text origin of the i-th distance
// panel. Panels are stacked 50 px apart starting at y=25.
func panelLayout(i int, text image.Point) (panel image.Rectangle, org image.Point) {
	top := 25 + 50*i
	panel = image.Rect(panelLeft, top, panelLeft+text.X+panelPad, top+text.Y+20)
	return panel, image.Pt(panelLeft+5, top+25)
}

package measure

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoObjects() []Detection {
	return []Detection{
		{TrackID: 1, ClassID: 0, Box: image.Rect(0, 0, 10, 10)},
		{TrackID: 2, ClassID: 1, Box: image.Rect(100, 0, 110, 10)},
	}
}

func TestSelectionStates(t *testing.T) {
	var s Selection
	dets := twoObjects()
	assert.Equal(t, Empty, s.State())

	require.True(t, s.Select(image.Pt(5, 5), dets))
	assert.Equal(t, Partial, s.State())

	require.True(t, s.Select(image.Pt(105, 5), dets))
	assert.Equal(t, Complete, s.State())

	assert.Equal(t, []Selected{
		{TrackID: 1, Box: image.Rect(0, 0, 10, 10)},
		{TrackID: 2, Box: image.Rect(100, 0, 110, 10)},
	}, s.Selected())
}

func TestSelectionHitTest(t *testing.T) {
	dets := twoObjects()
	tests := []struct {
		name string
		p    image.Point
		want bool
	}{
		{"inside", image.Pt(5, 5), true},
		{"left edge", image.Pt(0, 5), false},
		{"right edge", image.Pt(10, 5), false},
		{"top edge", image.Pt(5, 0), false},
		{"bottom edge", image.Pt(5, 10), false},
		{"between boxes", image.Pt(50, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			assert.Equal(t, tt.want, s.Select(tt.p, dets))
			assert.Equal(t, 1, s.Clicks())
		})
	}
}

func TestSelectionSameTrackTwice(t *testing.T) {
	var s Selection
	dets := twoObjects()
	require.True(t, s.Select(image.Pt(5, 5), dets))
	assert.False(t, s.Select(image.Pt(6, 6), dets))
	assert.Equal(t, Partial, s.State())
	assert.Equal(t, 2, s.Clicks())
}

func TestSelectionThirdObjectIgnored(t *testing.T) {
	var s Selection
	dets := append(twoObjects(), Detection{TrackID: 3, Box: image.Rect(200, 0, 210, 10)})
	s.Select(image.Pt(5, 5), dets)
	s.Select(image.Pt(105, 5), dets)
	before := s.Selected()

	assert.False(t, s.Select(image.Pt(205, 5), dets))
	assert.Equal(t, before, s.Selected())
	assert.Equal(t, 2, s.Len())
}

func TestSelectionMissesSpendClicks(t *testing.T) {
	var s Selection
	dets := twoObjects()
	assert.False(t, s.Select(image.Pt(50, 50), dets))
	assert.True(t, s.Select(image.Pt(5, 5), dets))
	// two clicks spent: the second object can no longer be picked
	assert.False(t, s.Select(image.Pt(105, 5), dets))
	assert.Equal(t, Partial, s.State())

	s.Reset()
	assert.True(t, s.Select(image.Pt(105, 5), dets))
}

func TestSelectionOverlappingBoxesPicksFirst(t *testing.T) {
	var s Selection
	dets := []Detection{
		{TrackID: 7, Box: image.Rect(0, 0, 20, 20)},
		{TrackID: 8, Box: image.Rect(5, 5, 25, 25)},
	}
	require.True(t, s.Select(image.Pt(10, 10), dets))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 7, s.Selected()[0].TrackID)

	require.True(t, s.Select(image.Pt(10, 10), dets))
	assert.Equal(t, 8, s.Selected()[1].TrackID)
}

func TestSelectionResetFromAnyState(t *testing.T) {
	dets := twoObjects()
	for _, clicks := range [][]image.Point{
		nil,
		{image.Pt(5, 5)},
		{image.Pt(5, 5), image.Pt(105, 5)},
		{image.Pt(5, 5), image.Pt(105, 5), image.Pt(1, 1), image.Pt(2, 2)},
	} {
		var s Selection
		for _, p := range clicks {
			s.Select(p, dets)
		}
		s.Reset()
		assert.Equal(t, Empty, s.State())
		assert.Empty(t, s.Selected())
		assert.Zero(t, s.Clicks())
	}
}

func TestSelectionRefreshAndStaleRetention(t *testing.T) {
	var s Selection
	dets := twoObjects()
	s.Select(image.Pt(5, 5), dets)
	s.Select(image.Pt(105, 5), dets)

	s.Refresh([]Detection{
		{TrackID: 1, Box: image.Rect(20, 20, 30, 30)},
		{TrackID: 9, Box: image.Rect(300, 300, 310, 310)},
	})
	sel := s.Selected()
	require.Len(t, sel, 2)
	assert.Equal(t, image.Rect(20, 20, 30, 30), sel[0].Box)
	// track 2 vanished and keeps its last box
	assert.Equal(t, image.Rect(100, 0, 110, 10), sel[1].Box)
	assert.False(t, s.Has(9))

	s.Refresh(nil)
	assert.Equal(t, sel, s.Selected())
}

func TestSelectedReturnsCopy(t *testing.T) {
	var s Selection
	s.Select(image.Pt(5, 5), twoObjects())
	sel := s.Selected()
	sel[0].TrackID = 42
	assert.Equal(t, 1, s.Selected()[0].TrackID)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "partial", Partial.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "unknown", State(7).String())
}

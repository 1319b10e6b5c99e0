package tracks

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intothevoid/doori/pkg/measure"
)

const sample = `# frame,id,left,top,width,height,conf,class,visibility
1,1,0,0,10,10,1,0,1
1,2,100,0,10,10,1,1,1
2,1,2.4,0.6,10,10,1,0,1

3,2,101,1,10,10
3,-1,50,50,5,5,0.3,0,1
`

func TestRead(t *testing.T) {
	r, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Frames())
	assert.Equal(t, 4, r.Len())

	assert.Equal(t, []measure.Detection{
		{TrackID: 1, ClassID: 0, Box: image.Rect(0, 0, 10, 10)},
		{TrackID: 2, ClassID: 1, Box: image.Rect(100, 0, 110, 10)},
	}, r.Detections(1))
	assert.Equal(t, []measure.Detection{
		{TrackID: 1, ClassID: 0, Box: image.Rect(2, 1, 12, 11)},
	}, r.Detections(2))
	assert.Equal(t, []measure.Detection{
		{TrackID: 2, ClassID: 0, Box: image.Rect(101, 1, 111, 11)},
	}, r.Detections(3))
	assert.Nil(t, r.Detections(4))
}

func TestReadFloatIntegers(t *testing.T) {
	r, err := Read(strings.NewReader("1.0,7.0,1,2,3,4,0.9,3.0\n"))
	require.NoError(t, err)
	require.Len(t, r.Detections(1), 1)
	assert.Equal(t, 7, r.Detections(1)[0].TrackID)
	assert.Equal(t, 3, r.Detections(1)[0].ClassID)
}

func TestReadFractionalBoxes(t *testing.T) {
	r, err := Read(strings.NewReader("1,1,0.5,0.5,2,9.9\n"))
	require.NoError(t, err)
	require.Len(t, r.Detections(1), 1)

	box := r.Detections(1)[0].Box
	assert.Equal(t, image.Rect(0, 0, 2, 10), box)
	assert.Equal(t, image.Pt(1, 5), measure.Centroid(box))
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"short row", "1,1,0,0,10\n", "line 1: want at least 6 fields"},
		{"bad frame", "x,1,0,0,10,10\n", "line 1: frame"},
		{"zero frame", "0,1,0,0,10,10\n", "frame numbers start at 1"},
		{"fractional id", "1,1.5,0,0,10,10\n", "line 1: track id"},
		{"bad box", "1,1,0,zero,10,10\n", "line 1: box field 2"},
		{"negative size", "1,1,0,0,-10,10\n", "negative box size"},
		{"bad class", "1,1,0,0,10,10,1,car\n", "line 1: class"},
		{"second line", "1,1,0,0,10,10\n2,1,0,0\n", "line 2: want at least 6 fields"},
		{"bare quote", "1,a\"b,0,0,10,10\n", "parsing track file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gt.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Frames())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSources(t *testing.T) {
	var _ Source = &Replay{}
	var s Source = None{}
	assert.Nil(t, s.Detections(1))
}

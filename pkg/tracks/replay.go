// Package tracks supplies per-frame tracker output to the measurement
// cycle. Detection and tracking themselves happen elsewhere; this package
// only replays their results.
package tracks

import (
	"encoding/csv"
	"image"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/intothevoid/doori/pkg/measure"
)

// Source returns the tracked detections for a 1-based frame number.
type Source interface {
	Detections(frame int) []measure.Detection
}

// Replay is a Source backed by a MOT challenge style text file:
//
//	frame,id,left,top,width,height[,conf[,class[,visibility]]]
type Replay struct {
	frames map[int][]measure.Detection
	last   int
	rows   int
}

// Load reads a track file from disk.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening track file %s", path)
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading track file %s", path)
	}
	return r, nil
}

// Read parses track rows. Blank lines and lines starting with # are
// skipped, as are rows with a negative track id (MOT uses -1 for
// untracked detections).
func Read(in io.Reader) (*Replay, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	r := &Replay{frames: make(map[int][]measure.Detection)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing track file")
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 6 {
			return nil, errors.Errorf("line %d: want at least 6 fields, got %d", line, len(rec))
		}

		frame, err := atoi(rec[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: frame", line)
		}
		if frame < 1 {
			return nil, errors.Errorf("line %d: frame numbers start at 1, got %d", line, frame)
		}
		id, err := atoi(rec[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: track id", line)
		}
		var box [4]float64
		for i := range box {
			if box[i], err = strconv.ParseFloat(strings.TrimSpace(rec[2+i]), 64); err != nil {
				return nil, errors.Wrapf(err, "line %d: box field %d", line, i+1)
			}
		}
		if box[2] < 0 || box[3] < 0 {
			return nil, errors.Errorf("line %d: negative box size %vx%v", line, box[2], box[3])
		}
		class := 0
		if len(rec) > 7 && strings.TrimSpace(rec[7]) != "" {
			if class, err = atoi(rec[7]); err != nil {
				return nil, errors.Wrapf(err, "line %d: class", line)
			}
		}
		if id < 0 {
			continue
		}

		r.frames[frame] = append(r.frames[frame], measure.Detection{
			Box: image.Rect(
				int(box[0]), int(box[1]),
				int(box[0]+box[2]), int(box[1]+box[3]),
			),
			ClassID: class,
			TrackID: id,
		})
		r.rows++
		if frame > r.last {
			r.last = frame
		}
	}
	return r, nil
}

// Detections returns the rows for frame in file order. Frames without rows
// return nil.
func (r *Replay) Detections(frame int) []measure.Detection {
	return r.frames[frame]
}

// Frames is the highest frame number in the file.
func (r *Replay) Frames() int {
	return r.last
}

// Len is the number of detections loaded.
func (r *Replay) Len() int {
	return r.rows
}

func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	// MOT files written by some tools use "12.0" for integer columns
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int(f), nil
	}
	return strconv.Atoi(s)
}

// None is a Source with no detections.
type None struct{}

// Detections always returns nil.
func (None) Detections(int) []measure.Detection { return nil }

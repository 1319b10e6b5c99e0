package measure

import "image"

// Detection is one tracked object in a frame, as produced by the external
// tracker.
type Detection struct {
	Box     image.Rectangle
	ClassID int
	TrackID int
}

// State is the selection progress.
type State int

const (
	Empty State = iota
	Partial
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// maxSelected is the number of objects a measurement needs.
const maxSelected = 2

// Selected is a chosen track and the last box seen for it.
type Selected struct {
	TrackID int
	Box     image.Rectangle
}

// Selection holds up to two user chosen tracks in the order they were
// picked. The zero value is an empty selection.
type Selection struct {
	entries [maxSelected]Selected
	n       int
	clicks  int
}

// Select handles a primary click at p against the given detections. Every
// click counts towards the click budget, hit or miss; once two clicks have
// been spent further clicks do nothing until Reset. It reports whether a
// track was added.
func (s *Selection) Select(p image.Point, detections []Detection) bool {
	s.clicks++
	if s.clicks > maxSelected || s.n >= maxSelected {
		return false
	}
	for _, d := range detections {
		if !contains(d.Box, p) || s.has(d.TrackID) {
			continue
		}
		s.entries[s.n] = Selected{TrackID: d.TrackID, Box: d.Box}
		s.n++
		return true
	}
	return false
}

// Reset clears the selection and the click budget.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Refresh overwrites the stored box of every selected track that appears in
// detections. Tracks missing from detections keep their previous box.
func (s *Selection) Refresh(detections []Detection) {
	for i := 0; i < s.n; i++ {
		for _, d := range detections {
			if d.TrackID == s.entries[i].TrackID {
				s.entries[i].Box = d.Box
				break
			}
		}
	}
}

// State returns Empty, Partial or Complete.
func (s *Selection) State() State {
	return State(s.n)
}

// Len is the number of selected tracks.
func (s *Selection) Len() int {
	return s.n
}

// Clicks is the number of primary clicks since the last reset.
func (s *Selection) Clicks() int {
	return s.clicks
}

// Has reports whether trackID is selected.
func (s *Selection) Has(trackID int) bool {
	return s.has(trackID)
}

// Selected returns a copy of the selected tracks in selection order.
func (s *Selection) Selected() []Selected {
	out := make([]Selected, s.n)
	copy(out, s.entries[:s.n])
	return out
}

func (s *Selection) has(trackID int) bool {
	for i := 0; i < s.n; i++ {
		if s.entries[i].TrackID == trackID {
			return true
		}
	}
	return false
}

// contains is a strict inside test; points on the box edge miss.
func contains(box image.Rectangle, p image.Point) bool {
	return box.Min.X < p.X && p.X < box.Max.X && box.Min.Y < p.Y && p.Y < box.Max.Y
}

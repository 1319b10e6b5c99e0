package camera

import (
	"image"
	"strconv"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// defaultFPS is used when the capture backend does not report a rate.
const defaultFPS = 30.0

// VideoStream manages a capture device or a video file
type VideoStream struct {
	source string
	webcam *gocv.VideoCapture
	frame  *gocv.Mat // Keep a reusable matrix to save memory
	index  int
}

// NewVideoStream opens source. A source that parses as an integer is a
// device id, anything else is handed to OpenCV as a file name or URL.
func NewVideoStream(source string) (*VideoStream, error) {
	var device interface{} = source
	if id, err := strconv.Atoi(source); err == nil {
		device = id
	}

	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open video source %q", source)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, errors.Errorf("video source %q did not open", source)
	}

	mat := gocv.NewMat()
	return &VideoStream{
		source: source,
		webcam: cam,
		frame:  &mat,
	}, nil
}

// ReadRaw reads the next frame into the stream's reusable Mat. The Mat is
// overwritten by the next call; Clone it to keep it.
func (vs *VideoStream) ReadRaw() (*gocv.Mat, error) {
	if !vs.webcam.Read(vs.frame) {
		return nil, errors.Errorf("cannot read frame %d from %q", vs.index+1, vs.source)
	}
	if vs.frame.Empty() {
		return nil, errors.Errorf("frame %d from %q is empty", vs.index+1, vs.source)
	}
	vs.index++
	return vs.frame, nil
}

// Frame is the 1-based number of the last frame read.
func (vs *VideoStream) Frame() int {
	return vs.index
}

// Size is the frame size reported by the backend.
func (vs *VideoStream) Size() image.Point {
	return image.Pt(
		int(vs.webcam.Get(gocv.VideoCaptureFrameWidth)),
		int(vs.webcam.Get(gocv.VideoCaptureFrameHeight)),
	)
}

// FPS is the source frame rate, or 30 when unknown.
func (vs *VideoStream) FPS() float64 {
	fps := vs.webcam.Get(gocv.VideoCaptureFPS)
	if fps <= 0 || fps > 240 {
		return defaultFPS
	}
	return fps
}

func (vs *VideoStream) Close() {
	vs.webcam.Close()
	vs.frame.Close()
}

package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/intothevoid/doori/pkg/camera"
	"github.com/intothevoid/doori/pkg/config"
	"github.com/intothevoid/doori/pkg/measure"
	"github.com/intothevoid/doori/pkg/tracks"
	"github.com/intothevoid/doori/pkg/ui"
	"github.com/intothevoid/doori/pkg/vision"
)

// pointList collects repeated -click x,y flags.
type pointList []image.Point

func (l *pointList) String() string {
	parts := make([]string, len(*l))
	for i, p := range *l {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func (l *pointList) Set(s string) error {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return errors.Errorf("click %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return errors.Wrapf(err, "click %q: x", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return errors.Wrapf(err, "click %q: y", s)
	}
	*l = append(*l, image.Pt(x, y))
	return nil
}

// pipeline reads a frame, runs the measurement cycle on the tracker output
// for that frame and draws the result onto it.
type pipeline struct {
	stream    *camera.VideoStream
	tracks    tracks.Source
	proc      *measure.Processor
	thickness int
	clicks    []image.Point
	logger    *zap.Logger

	measuring bool
}

func (p *pipeline) step() (*gocv.Mat, measure.Frame, error) {
	mat, err := p.stream.ReadRaw()
	if err != nil {
		return nil, measure.Frame{}, err
	}
	n := p.stream.Frame()
	frame := p.proc.Process(p.tracks.Detections(n))

	// scripted clicks are aimed at the first frame, so queue them once it
	// has been ingested
	if n == 1 {
		for _, c := range p.clicks {
			p.proc.Post(measure.Primary(c.X, c.Y))
		}
	}

	if m := frame.Measurement; m != nil {
		if !p.measuring {
			p.logger.Info("measuring",
				zap.Int("frame", n),
				zap.Ints("tracks", m.TrackIDs[:]),
				zap.Float64("meters", m.Distance.Meters))
		}
		p.logger.Debug("distance",
			zap.Int("frame", n),
			zap.Float64("meters", m.Distance.Meters),
			zap.Float64("millimeters", m.Distance.Millimeters))
	} else if p.measuring {
		p.logger.Info("measurement stopped", zap.Int("frame", n))
	}
	p.measuring = frame.Measurement != nil

	vision.Annotate(mat, frame, p.thickness)
	return mat, frame, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file; embedded defaults are used for missing keys")
	source := flag.String("source", "", "capture device number or video file/URL (overrides config)")
	tracksPath := flag.String("tracks", "", "MOT format track file replayed as tracker output (overrides config)")
	headless := flag.Bool("headless", false, "run without a window, logging measurements")
	debug := flag.Bool("debug", false, "enable debug logging")
	var clicks pointList
	flag.Var(&clicks, "click", "primary click x,y applied after the first frame (repeatable)")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *tracksPath != "" {
		cfg.Tracks = *tracksPath
	}
	if *headless {
		cfg.ViewImg = false
	}
	logger.Info("configuration", zap.Reflect("config", cfg))

	proc, err := measure.NewProcessor(cfg.Config, logger.Named("measure"))
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	var src tracks.Source = tracks.None{}
	if cfg.Tracks != "" {
		replay, err := tracks.Load(cfg.Tracks)
		if err != nil {
			logger.Fatal("loading tracks", zap.Error(err))
		}
		logger.Info("tracks loaded", zap.String("path", cfg.Tracks),
			zap.Int("frames", replay.Frames()), zap.Int("detections", replay.Len()))
		src = replay
	} else {
		logger.Warn("no track file given, frames will have no detections")
	}

	stream, err := camera.NewVideoStream(cfg.Source)
	if err != nil {
		logger.Fatal("opening video", zap.Error(err))
	}
	defer stream.Close()
	size := stream.Size()
	logger.Info("video opened", zap.String("source", cfg.Source),
		zap.Int("width", size.X), zap.Int("height", size.Y), zap.Float64("fps", stream.FPS()))

	p := &pipeline{
		stream:    stream,
		tracks:    src,
		proc:      proc,
		thickness: cfg.LineThickness,
		clicks:    clicks,
		logger:    logger,
	}

	if !cfg.ViewImg {
		runHeadless(p)
		return
	}
	runWindow(p, cfg.WindowName)
}

func runHeadless(p *pipeline) {
	for {
		if _, _, err := p.step(); err != nil {
			p.logger.Info("end of stream", zap.Int("frames", p.stream.Frame()), zap.Error(err))
			return
		}
	}
}

func runWindow(p *pipeline, title string) {
	a := app.New()
	window := a.NewWindow(title)

	display := ui.NewVideoDisplay()
	display.OnPointer = func(ev measure.PointerEvent) { p.proc.Post(ev) }
	status := ui.NewStatusPanel()

	window.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		switch k.Name {
		case fyne.KeyQ, fyne.KeyEscape:
			window.Close()
		case fyne.KeyR:
			p.proc.Post(measure.Secondary())
		}
	})
	window.SetContent(container.NewBorder(nil, status, nil, nil, display))
	window.Resize(fyne.NewSize(1280, 800))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(time.Duration(float64(time.Second) / p.stream.FPS()))
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			mat, frame, err := p.step()
			if err != nil {
				p.logger.Info("end of stream", zap.Int("frames", p.stream.Frame()), zap.Error(err))
				return
			}
			img, err := mat.ToImage()
			if err != nil {
				p.logger.Warn("converting frame", zap.Error(err))
				continue
			}
			display.UpdateFrame(img)
			status.Update(frame)
		}
	}()

	window.ShowAndRun()
	close(done)
	wg.Wait()
}

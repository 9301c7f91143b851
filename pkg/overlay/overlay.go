// Package overlay composes wrapped, outlined and shadowed bilingual text onto a background
// image and returns the result as a PNG data URI.
package overlay

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")
	ErrContextUnavailable = errors.New("2D drawing context unavailable")
	ErrImageLoad          = errors.New("background image failed to load")
)

// Config configures the orchestrator.
type Config struct {
	MaxPixels     int   `help:"Largest background image accepted, in pixels" default:"16777216"`
	MaxImageBytes int64 `help:"Largest encoded background image accepted, in bytes" default:"33554432"`
	AllowFiles    bool  `help:"Allow background images to be read from the local filesystem" default:"false"`
	AllowRemote   bool  `help:"Allow background images to be fetched from http(s) URLs" default:"false"`
}

// CompositionResult is a finished poster. It is not modified after being returned.
type CompositionResult struct {
	DataURI string `json:"dataUri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Layout  Layout `json:"layout"`
}

// Overlay owns a single drawing surface and serializes compositions onto it.
type Overlay struct {
	fonts   FontSet
	loader  ImageLoader
	style   Style
	surface *Surface
	gate    chan struct{}
	logger  *zap.Logger
}

func New(config *Config, fonts FontSet, loader ImageLoader) *Overlay {
	return &Overlay{
		fonts:   fonts,
		loader:  loader,
		style:   DefaultStyle(),
		surface: NewSurface(config.MaxPixels),
		gate:    make(chan struct{}, 1),
		logger:  zap.L().With(zap.String("subsystem", "overlay")),
	}
}

// Composite loads the background, fits and paints the text, and returns the poster as a PNG
// data URI. Calls queue for the shared surface; ctx bounds both the wait and the image load.
func (o *Overlay) Composite(ctx context.Context, backgroundURL string, english string, telugu string) (*CompositionResult, error) {
	start := time.Now()
	defer func() {
		compositionDuration.Observe(time.Since(start).Seconds())
	}()

	select {
	case o.gate <- struct{}{}:
	case <-ctx.Done():
		compositionsTotal.WithLabelValues("cancelled").Inc()
		return nil, errors.Wrap(ctx.Err(), "Composite: waiting for drawing surface")
	}
	defer func() { <-o.gate }()

	result, err := o.composite(ctx, backgroundURL, english, telugu)
	if err != nil {
		compositionsTotal.WithLabelValues("failed").Inc()
		o.logger.Debug("Composition failed", zap.Error(err))
		return nil, err
	}
	compositionsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func (o *Overlay) composite(ctx context.Context, backgroundURL string, english string, telugu string) (*CompositionResult, error) {
	background, err := o.loader.Load(ctx, backgroundURL)
	if err != nil {
		return nil, errors.Wrap(err, "Composite")
	}

	bounds := background.Bounds()
	if err := o.surface.Resize(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, errors.Wrap(err, "Composite")
	}
	if err := o.surface.DrawBackground(background); err != nil {
		return nil, errors.Wrap(err, "Composite")
	}
	dc, err := o.surface.Context()
	if err != nil {
		return nil, errors.Wrap(err, "Composite")
	}
	layer, err := o.surface.ShadowLayer()
	if err != nil {
		return nil, errors.Wrap(err, "Composite")
	}

	layout := Solve(NewLayoutRegion(bounds.Dx(), bounds.Dy()), english, telugu, o.fonts)
	solverIterations.Observe(float64(layout.Iterations))
	if layout.Overflow {
		overflowTotal.Inc()
		o.logger.Warn("Text does not fit at minimum font size, rendering overflow",
			zap.Float64("min_font_size", layout.Region.MinFontSize),
			zap.Float64("total_text_height", layout.TotalHeight()),
			zap.Float64("available_text_height", layout.Region.AvailableTextHeight),
			zap.Int("iterations", layout.Iterations))
	}

	Paint(dc, layer, layout, o.fonts, o.style)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(err, "Composite: PNG encoding failed")
	}

	o.logger.Debug("Composited poster",
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Float64("english_font_size", layout.English.FontSize),
		zap.Float64("telugu_font_size", layout.Telugu.FontSize),
		zap.Int("iterations", layout.Iterations))

	return &CompositionResult{
		DataURI: EncodeDataURI("image/png", buf.Bytes()),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Layout:  layout,
	}, nil
}

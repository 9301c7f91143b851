package overlay

import (
	"image"
	"image/color"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
)

func TestSurfaceUnsized(t *testing.T) {
	c := qt.New(t)
	s := NewSurface(0)
	_, err := s.Context()
	c.Assert(errors.Is(err, ErrContextUnavailable), qt.IsTrue)
	c.Assert(errors.Is(s.DrawBackground(image.NewRGBA(image.Rect(0, 0, 1, 1))), ErrSurfaceUnavailable), qt.IsTrue)
	c.Assert(s.Bounds(), qt.Equals, image.Rectangle{})
}

func TestSurfaceResizeLimits(t *testing.T) {
	c := qt.New(t)
	s := NewSurface(100)
	c.Assert(errors.Is(s.Resize(0, 10), ErrSurfaceUnavailable), qt.IsTrue)
	c.Assert(errors.Is(s.Resize(11, 10), ErrSurfaceUnavailable), qt.IsTrue)
	c.Assert(s.Resize(10, 10), qt.IsNil)
	c.Assert(s.Bounds(), qt.Equals, image.Rect(0, 0, 10, 10))
}

func TestSurfaceReusesBuffer(t *testing.T) {
	c := qt.New(t)
	s := NewSurface(0)
	c.Assert(s.Resize(32, 16), qt.IsNil)
	first, firstShadow := s.rgba, s.shadow
	c.Assert(s.Resize(32, 16), qt.IsNil)
	c.Assert(s.rgba, qt.Equals, first)
	c.Assert(s.shadow, qt.Equals, firstShadow)
	c.Assert(s.Resize(16, 32), qt.IsNil)
	c.Assert(s.rgba, qt.Not(qt.Equals), first)
	c.Assert(s.shadow, qt.Not(qt.Equals), firstShadow)
	c.Assert(s.shadow.Rect, qt.Equals, s.rgba.Rect)
}

func TestSurfaceShadowLayer(t *testing.T) {
	c := qt.New(t)
	s := NewSurface(0)
	_, err := s.ShadowLayer()
	c.Assert(errors.Is(err, ErrContextUnavailable), qt.IsTrue)

	c.Assert(s.Resize(8, 4), qt.IsNil)
	layer, err := s.ShadowLayer()
	c.Assert(err, qt.IsNil)
	c.Assert(layer.Width(), qt.Equals, 8)
	c.Assert(layer.Height(), qt.Equals, 4)
	layer.SetRGB(0, 0, 1)
	layer.Clear()
	c.Assert(s.shadow.RGBAAt(7, 3), qt.Equals, color.RGBA{B: 0xff, A: 0xff})
}

func TestSurfaceDrawBackgroundReplacesContent(t *testing.T) {
	c := qt.New(t)
	s := NewSurface(0)
	c.Assert(s.Resize(4, 4), qt.IsNil)
	dc, err := s.Context()
	c.Assert(err, qt.IsNil)
	dc.SetRGB(1, 0, 0)
	dc.Clear()

	bg := image.NewUniform(color.RGBA{G: 0xff, A: 0xff})
	c.Assert(s.DrawBackground(image.NewRGBA(image.Rect(0, 0, 4, 4))), qt.IsNil)
	c.Assert(s.rgba.RGBAAt(1, 1), qt.Equals, color.RGBA{})
	c.Assert(s.DrawBackground(bg), qt.IsNil)
	c.Assert(s.rgba.RGBAAt(3, 3), qt.Equals, color.RGBA{G: 0xff, A: 0xff})
}

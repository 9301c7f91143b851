package overlay

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Surface is a reusable raster the orchestrator paints into, with a matching shadow layer.
// Both buffers are only reallocated when the requested dimensions change. A Surface is not safe
// for concurrent use.
type Surface struct {
	maxPixels int
	rgba      *image.RGBA
	shadow    *image.RGBA
}

func NewSurface(maxPixels int) *Surface {
	return &Surface{maxPixels: maxPixels}
}

// Resize makes the surface exactly width x height pixels.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrSurfaceUnavailable, "Resize: invalid dimensions %dx%d", width, height)
	}
	if s.maxPixels > 0 && width*height > s.maxPixels {
		return errors.Wrapf(ErrSurfaceUnavailable, "Resize: %dx%d exceeds the %d pixel limit", width, height, s.maxPixels)
	}

	rect := image.Rect(0, 0, width, height)
	if s.rgba == nil || s.rgba.Rect != rect {
		s.rgba = image.NewRGBA(rect)
		s.shadow = image.NewRGBA(rect)
	}
	return nil
}

// DrawBackground replaces the whole surface with img, aligned at the origin.
func (s *Surface) DrawBackground(img image.Image) error {
	if s.rgba == nil {
		return errors.Wrap(ErrSurfaceUnavailable, "DrawBackground: surface has not been sized")
	}
	draw.Draw(s.rgba, s.rgba.Rect, img, img.Bounds().Min, draw.Src)
	return nil
}

// Context binds a 2D drawing context to the surface.
func (s *Surface) Context() (*gg.Context, error) {
	if s.rgba == nil {
		return nil, errors.Wrap(ErrContextUnavailable, "Context: surface has not been sized")
	}
	return gg.NewContextForRGBA(s.rgba), nil
}

// ShadowLayer binds a drawing context to the shadow buffer. Its contents are whatever the
// previous composition left; Paint clears it before use.
func (s *Surface) ShadowLayer() (*gg.Context, error) {
	if s.shadow == nil {
		return nil, errors.Wrap(ErrContextUnavailable, "ShadowLayer: surface has not been sized")
	}
	return gg.NewContextForRGBA(s.shadow), nil
}

// Bounds is the current surface size, or the empty rectangle if unsized.
func (s *Surface) Bounds() image.Rectangle {
	if s.rgba == nil {
		return image.Rectangle{}
	}
	return s.rgba.Rect
}

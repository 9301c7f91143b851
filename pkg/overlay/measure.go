package overlay

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// MeasureFunc returns the rendered width of s in pixels.
type MeasureFunc func(s string) float64

// Typeface provides measurement and drawing faces for a font at arbitrary pixel sizes.
type Typeface interface {
	Measurer(fontSize float64) MeasureFunc
	Face(fontSize float64) font.Face
}

// FontSet holds the typeface used for each language block.
type FontSet struct {
	English Typeface
	Telugu  Typeface
}

// faceCacheLimit bounds the number of cached faces per calculator.
const faceCacheLimit = 64

// FontCalculator measures and rasterizes text for a single TrueType font.
type FontCalculator struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

func NewFontCalculator(ttf *truetype.Font) *FontCalculator {
	if ttf == nil {
		zap.L().Warn("Initialized FontCalculator with nil font. Returning nil!")
		return nil
	}

	return &FontCalculator{font: ttf, faces: map[float64]font.Face{}}
}

// TextWidth returns the advance width of text at fontSize pixels, including kerning.
func (fc *FontCalculator) TextWidth(fontSize float64, text string) float64 {
	fUnitsPerEm := fixed.Int26_6(fc.font.FUnitsPerEm())
	scale := fontSize / float64(fUnitsPerEm)

	width := 0
	prev, hasPrev := truetype.Index(0), false
	for _, r := range text {
		index := fc.font.Index(r)
		if hasPrev {
			width += int(fc.font.Kern(fUnitsPerEm, prev, index))
		}
		width += int(fc.font.HMetric(fUnitsPerEm, index).AdvanceWidth)
		prev, hasPrev = index, true
	}

	return float64(width) * scale
}

// Measurer binds TextWidth to fontSize.
func (fc *FontCalculator) Measurer(fontSize float64) MeasureFunc {
	return func(s string) float64 {
		return fc.TextWidth(fontSize, s)
	}
}

// Face returns an unhinted face so drawn widths agree with TextWidth.
func (fc *FontCalculator) Face(fontSize float64) font.Face {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if face, ok := fc.faces[fontSize]; ok {
		return face
	}
	if len(fc.faces) >= faceCacheLimit {
		fc.faces = map[float64]font.Face{}
	}
	face := truetype.NewFace(fc.font, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingNone})
	fc.faces[fontSize] = face
	return face
}

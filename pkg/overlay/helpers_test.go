package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/wrouesnel/posterserv/pkg/fonts"
)

var floatApprox = cmpopts.EquateApprox(0, 1e-9)

// fixedTypeface measures every rune as advance*fontSize pixels wide.
type fixedTypeface struct {
	advance float64
}

func (f fixedTypeface) Measurer(fontSize float64) MeasureFunc {
	return func(s string) float64 {
		return float64(utf8.RuneCountInString(s)) * fontSize * f.advance
	}
}

func (f fixedTypeface) Face(float64) font.Face {
	return basicfont.Face7x13
}

func fixedFonts(advance float64) FontSet {
	return FontSet{English: fixedTypeface{advance}, Telugu: fixedTypeface{advance}}
}

func goFonts(t *testing.T) FontSet {
	t.Helper()
	f, err := fonts.Load("")
	qt.New(t).Assert(err, qt.IsNil)
	calc := NewFontCalculator(f)
	return FontSet{English: calc, Telugu: calc}
}

func solidPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	qt.New(t).Assert(png.Encode(&buf, img), qt.IsNil)
	return buf.Bytes()
}

func solidPNGDataURI(t *testing.T, width, height int) string {
	t.Helper()
	return EncodeDataURI("image/png", solidPNG(t, width, height, color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff}))
}

func loremIpsum(length int) string {
	const words = "lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor "
	text := strings.Repeat(words, length/len(words)+1)
	return strings.TrimSpace(text[:length])
}

package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
	qt "github.com/frankban/quicktest"
)

func TestStrokeWidth(t *testing.T) {
	c := qt.New(t)
	c.Assert(StrokeWidth(9), qt.Equals, 1.0)
	c.Assert(StrokeWidth(36), qt.Equals, 2.0)
	c.Assert(StrokeWidth(180), qt.Equals, 4.0)
}

func TestPlaceLinesEnglishOnlyIsCentered(t *testing.T) {
	c := qt.New(t)
	fonts := fixedFonts(2)
	region := NewLayoutRegion(1920, 1080)
	layout := Solve(region, loremIpsum(200), "", fonts)
	placements := PlaceLines(layout, fonts)

	c.Assert(len(placements) > 1, qt.IsTrue)
	c.Assert(placements, qt.HasLen, len(layout.English.Lines))
	for _, p := range placements {
		c.Assert(p.X, qt.Equals, 960.0)
		c.Assert(p.FontSize, qt.Equals, layout.English.FontSize)
	}
	first, last := placements[0].Y, placements[len(placements)-1].Y
	c.Assert((first+last)/2, qt.CmpEquals(floatApprox), 540.0)
	c.Assert(placements[1].Y-placements[0].Y, qt.CmpEquals(floatApprox), layout.English.LineHeight)
}

func TestPlaceLinesStacksEnglishAboveTelugu(t *testing.T) {
	c := qt.New(t)
	fonts := fixedFonts(0.5)
	region := NewLayoutRegion(1280, 720)
	layout := Solve(region, "Happy Ugadi to All!", "హ్యాపీ ఉగాది", fonts)
	placements := PlaceLines(layout, fonts)

	c.Assert(placements, qt.HasLen, 2)
	english, telugu := placements[0], placements[1]
	c.Assert(english.Text, qt.Equals, "Happy Ugadi to All!")
	c.Assert(telugu.Text, qt.Equals, "హ్యాపీ ఉగాది")

	gap := layout.English.LineHeight/2 + region.InterBlockPadding + layout.Telugu.LineHeight/2
	c.Assert(telugu.Y-english.Y, qt.CmpEquals(floatApprox), gap)

	top := (720 - layout.TotalHeight()) / 2
	c.Assert(english.Y, qt.CmpEquals(floatApprox), top+layout.English.LineHeight/2)
}

func TestPlaceLinesEmptyLayout(t *testing.T) {
	c := qt.New(t)
	fonts := fixedFonts(0.5)
	layout := Solve(NewLayoutRegion(640, 360), "", "", fonts)
	c.Assert(PlaceLines(layout, fonts), qt.HasLen, 0)
}

func TestPaintDrawsOutlinedText(t *testing.T) {
	c := qt.New(t)
	fonts := goFonts(t)
	background := color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff}

	dc := gg.NewContext(1280, 720)
	dc.SetColor(background)
	dc.Clear()

	// A layer left dirty by an earlier composition must not bleed into this one.
	layer := gg.NewContext(1280, 720)
	layer.SetRGB(1, 0, 0)
	layer.Clear()

	layout := Solve(NewLayoutRegion(1280, 720), "HELLO", "", fonts)
	Paint(dc, layer, layout, fonts, DefaultStyle())

	var white, black int
	img := dc.Image().(*image.RGBA)
	for y := 0; y < 720; y++ {
		for x := 0; x < 1280; x++ {
			px := img.RGBAAt(x, y)
			switch {
			case px.R > 0xf0 && px.G > 0xf0 && px.B > 0xf0:
				white++
			case px.R < 0x18 && px.G < 0x18 && px.B < 0x18:
				black++
			}
		}
	}
	c.Assert(white > 0, qt.IsTrue, qt.Commentf("expected filled glyph pixels"))
	c.Assert(black > 0, qt.IsTrue, qt.Commentf("expected outline pixels"))
	c.Assert(img.RGBAAt(0, 0), qt.Equals, background, qt.Commentf("corners stay untouched"))
}

func TestPaintEmptyLayoutLeavesSurface(t *testing.T) {
	c := qt.New(t)
	fonts := goFonts(t)
	dc := gg.NewContext(64, 32)
	dc.SetRGB(1, 0, 0)
	dc.Clear()
	before := append([]uint8(nil), dc.Image().(*image.RGBA).Pix...)

	Paint(dc, nil, Solve(NewLayoutRegion(64, 32), "", "", fonts), fonts, DefaultStyle())
	c.Assert(dc.Image().(*image.RGBA).Pix, qt.DeepEquals, before)
}

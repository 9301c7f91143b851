package overlay

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/samber/lo"
)

const (
	strokeDivisor   = 18
	minStrokeWidth  = 1
	maxStrokeWidth  = 4
	outlineSamples  = 16
	anchorCenter    = 0.5
	shadowBlurScale = 0.005
	shadowBlurMin   = 2
	shadowOffScale  = 0.002
	shadowOffMin    = 1
)

// Style controls the colours of painted text.
type Style struct {
	Fill   color.Color
	Stroke color.Color
	Shadow color.Color
}

// DefaultStyle is white text with a black outline over a translucent black shadow.
func DefaultStyle() Style {
	return Style{
		Fill:   color.White,
		Stroke: color.Black,
		Shadow: color.NRGBA{A: 0xb3},
	}
}

// LinePlacement is the centre point and size of one painted line.
type LinePlacement struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
	typeface Typeface
}

// PlaceLines computes where each line of the layout is drawn: the blocks stack english over
// telugu as one vertically centred group, and every line is centred on the canvas midline.
func PlaceLines(layout Layout, fonts FontSet) []LinePlacement {
	region := layout.Region
	placements := []LinePlacement{}
	x := region.CanvasWidth / 2
	top := (region.CanvasHeight - layout.TotalHeight()) / 2

	place := func(block TextBlock, typeface Typeface, blockTop float64) {
		center := blockTop + block.BlockHeight/2
		first := center - float64(len(block.Lines)-1)*block.LineHeight/2
		for i, line := range block.Lines {
			placements = append(placements, LinePlacement{
				Text:     line,
				X:        x,
				Y:        first + float64(i)*block.LineHeight,
				FontSize: block.FontSize,
				typeface: typeface,
			})
		}
	}

	if !layout.English.Empty() {
		place(layout.English, fonts.English, top)
		top += layout.English.BlockHeight
		if !layout.Telugu.Empty() {
			top += region.InterBlockPadding
		}
	}
	if !layout.Telugu.Empty() {
		place(layout.Telugu, fonts.Telugu, top)
	}
	return placements
}

// StrokeWidth is the outline width for text of the given size.
func StrokeWidth(fontSize float64) float64 {
	return lo.Clamp(fontSize/strokeDivisor, minStrokeWidth, maxStrokeWidth)
}

// Paint draws the layout's text onto dc, which must already hold the background. Each line is
// outlined then filled, over a blurred drop shadow scaled to the canvas width. The shadow is
// rendered on layer, which is cleared first; a nil or mismatched layer is replaced by a new one.
func Paint(dc *gg.Context, layer *gg.Context, layout Layout, fonts FontSet, style Style) {
	placements := PlaceLines(layout, fonts)
	if len(placements) == 0 {
		return
	}

	if layer == nil || layer.Width() != dc.Width() || layer.Height() != dc.Height() {
		layer = gg.NewContext(dc.Width(), dc.Height())
	}
	width := float64(dc.Width())
	paintShadow(dc, layer, placements, style.Shadow,
		math.Max(shadowBlurMin, width*shadowBlurScale),
		math.Max(shadowOffMin, width*shadowOffScale))

	for _, p := range placements {
		dc.SetFontFace(p.typeface.Face(p.FontSize))
		dc.SetColor(style.Stroke)
		drawOutline(dc, p.Text, p.X, p.Y, StrokeWidth(p.FontSize)/2)
		dc.SetColor(style.Fill)
		dc.DrawStringAnchored(p.Text, p.X, p.Y, anchorCenter, anchorCenter)
	}
}

// paintShadow renders the outlined glyphs on their own layer, blurs it and composites it under
// the text. The shadow never touches anything drawn afterwards.
func paintShadow(dc *gg.Context, layer *gg.Context, placements []LinePlacement, shadow color.Color, blur float64, offset float64) {
	layer.SetColor(color.Transparent)
	layer.Clear()
	layer.SetColor(shadow)
	for _, p := range placements {
		layer.SetFontFace(p.typeface.Face(p.FontSize))
		x, y := p.X+offset, p.Y+offset
		drawOutline(layer, p.Text, x, y, StrokeWidth(p.FontSize)/2)
		layer.DrawStringAnchored(p.Text, x, y, anchorCenter, anchorCenter)
	}

	// Canvas blur radii are roughly twice the gaussian sigma.
	dc.DrawImage(imaging.Blur(layer.Image(), blur/2), 0, 0)
}

// drawOutline approximates a stroke of the given radius by stamping the text around a circle.
func drawOutline(dc *gg.Context, text string, x, y, radius float64) {
	for i := 0; i < outlineSamples; i++ {
		angle := 2 * math.Pi * float64(i) / outlineSamples
		dc.DrawStringAnchored(text, x+radius*math.Cos(angle), y+radius*math.Sin(angle), anchorCenter, anchorCenter)
	}
}

package overlay

import "math"

// Fixed proportions of the poster layout.
const (
	textWidthFraction  = 0.85
	textHeightFraction = 0.85
	minFontSizeFloor   = 8
	minFontSizeDivisor = 70
	paddingFloor       = 15
	paddingFraction    = 0.03
	lineHeightFactor   = 1.2
)

// LayoutRegion is the area text may occupy on a canvas of the given size.
type LayoutRegion struct {
	CanvasWidth         float64 `json:"canvasWidth"`
	CanvasHeight        float64 `json:"canvasHeight"`
	MaxTextWidth        float64 `json:"maxTextWidth"`
	AvailableTextHeight float64 `json:"availableTextHeight"`
	MinFontSize         float64 `json:"minFontSize"`
	InterBlockPadding   float64 `json:"interBlockPadding"`
}

func NewLayoutRegion(width, height int) LayoutRegion {
	w, h := float64(width), float64(height)
	return LayoutRegion{
		CanvasWidth:         w,
		CanvasHeight:        h,
		MaxTextWidth:        w * textWidthFraction,
		AvailableTextHeight: h * textHeightFraction,
		MinFontSize:         math.Max(minFontSizeFloor, w/minFontSizeDivisor),
		InterBlockPadding:   math.Max(paddingFloor, h*paddingFraction),
	}
}

// TextBlock is one language's wrapped text at a particular font size.
type TextBlock struct {
	RawText     string   `json:"rawText"`
	Lines       []string `json:"lines"`
	FontSize    float64  `json:"fontSize"`
	LineHeight  float64  `json:"lineHeight"`
	BlockHeight float64  `json:"blockHeight"`
}

func newTextBlock(text string, fontSize float64, maxWidth float64, typeface Typeface) TextBlock {
	lines := Wrap(text, maxWidth, typeface.Measurer(fontSize))
	lineHeight := fontSize * lineHeightFactor
	return TextBlock{
		RawText:     text,
		Lines:       lines,
		FontSize:    fontSize,
		LineHeight:  lineHeight,
		BlockHeight: float64(len(lines)) * lineHeight,
	}
}

// Empty is true when the block has no lines and so takes no space.
func (b TextBlock) Empty() bool {
	return len(b.Lines) == 0
}

// stackHeight is the height of the english block stacked over the telugu block. Padding is
// only reserved when both blocks are present.
func stackHeight(english, telugu TextBlock, padding float64) float64 {
	total := english.BlockHeight + telugu.BlockHeight
	if !english.Empty() && !telugu.Empty() {
		total += padding
	}
	return total
}

package overlay

import "math"

const (
	maxFitIterations = 20
	shrinkFactor     = 0.9
)

// Initial font size divisors. Telugu starts larger since its glyphs render smaller per point.
const (
	englishWidthDivisor  = 18
	englishHeightDivisor = 15
	teluguWidthDivisor   = 16
	teluguHeightDivisor  = 12
)

// FontSizes is a pair of block font sizes in pixels.
type FontSizes struct {
	English float64 `json:"english"`
	Telugu  float64 `json:"telugu"`
}

// Layout is the solved arrangement of both text blocks on a region.
type Layout struct {
	Region  LayoutRegion `json:"region"`
	English TextBlock    `json:"english"`
	Telugu  TextBlock    `json:"telugu"`
	// Iterations is the number of fit attempts made.
	Iterations int `json:"iterations"`
	// Steps holds the sizes tried by each attempt, in order.
	Steps []FontSizes `json:"steps"`
	// Overflow is set when the text does not fit even at the settled sizes.
	Overflow bool `json:"overflow"`
}

// TotalHeight is the stacked height of both blocks including padding when both are present.
func (l Layout) TotalHeight() float64 {
	return stackHeight(l.English, l.Telugu, l.Region.InterBlockPadding)
}

func initialFontSize(minSize, byWidth, byHeight float64) float64 {
	return math.Max(minSize, math.Min(byWidth, byHeight))
}

// Solve finds the largest font sizes, shrinking each block by shrinkFactor per attempt, at
// which both blocks fit the region's available height. When the floor is reached first the
// floor sizes are kept and the layout is marked as overflowing; this never fails.
func Solve(region LayoutRegion, english, telugu string, fonts FontSet) Layout {
	minSize := region.MinFontSize
	sizes := FontSizes{
		English: initialFontSize(minSize,
			region.CanvasWidth/englishWidthDivisor, region.CanvasHeight/englishHeightDivisor),
		Telugu: initialFontSize(minSize,
			region.CanvasWidth/teluguWidthDivisor, region.CanvasHeight/teluguHeightDivisor),
	}

	layout := Layout{Region: region, Steps: []FontSizes{}}
	for layout.Iterations < maxFitIterations {
		layout.Iterations++
		layout.Steps = append(layout.Steps, sizes)

		englishBlock := newTextBlock(english, sizes.English, region.MaxTextWidth, fonts.English)
		teluguBlock := newTextBlock(telugu, sizes.Telugu, region.MaxTextWidth, fonts.Telugu)
		if stackHeight(englishBlock, teluguBlock, region.InterBlockPadding) <= region.AvailableTextHeight {
			break
		}

		next := sizes
		if !englishBlock.Empty() && sizes.English > minSize {
			next.English = math.Max(minSize, sizes.English*shrinkFactor)
		}
		if !teluguBlock.Empty() && sizes.Telugu > minSize {
			next.Telugu = math.Max(minSize, sizes.Telugu*shrinkFactor)
		}
		if next == sizes {
			break
		}
		sizes = next
	}

	// Re-wrap at the settled sizes so the lines match what gets painted.
	layout.English = newTextBlock(english, sizes.English, region.MaxTextWidth, fonts.English)
	layout.Telugu = newTextBlock(telugu, sizes.Telugu, region.MaxTextWidth, fonts.Telugu)
	layout.Overflow = layout.TotalHeight() > region.AvailableTextHeight
	return layout
}

package render

import "unicode/utf8"

// Font size bounds for [FitFontSize].
const (
	MinFontSize = 4.0
	MaxFontSize = 48.0
)

// fitPrecision is the step below which the search stops.
const fitPrecision = 0.1

// TextMetrics measures the advance width of text at a font size.
type TextMetrics interface {
	Width(text string, size float64) float64
}

// ApproxMetrics estimates text width as runes*size*CharWidth.
type ApproxMetrics struct {
	CharWidth float64 // average glyph width as a fraction of the font size
}

// DefaultCharWidth suits proportional serif fonts.
const DefaultCharWidth = 0.55

// Width implements [TextMetrics].
func (m ApproxMetrics) Width(text string, size float64) float64 {
	cw := m.CharWidth
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	return float64(utf8.RuneCountInString(text)) * size * cw
}

// FitFontSize returns the largest size in [MinFontSize, MaxFontSize], to a
// precision of 0.1, at which text is no wider than maxWidth. Text that does
// not fit even at MinFontSize gets MinFontSize; empty text gets MaxFontSize.
// Widths must grow with the size.
func FitFontSize(text string, maxWidth float64, m TextMetrics) float64 {
	if text == "" || m.Width(text, MaxFontSize) <= maxWidth {
		return MaxFontSize
	}
	if m.Width(text, MinFontSize) > maxWidth {
		return MinFontSize
	}
	lo, hi := MinFontSize, MaxFontSize // lo fits, hi does not
	for hi-lo > fitPrecision {
		mid := (lo + hi) / 2
		if m.Width(text, mid) <= maxWidth {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Package classify derives a visual theme from a background image or flat
// color by luminance. Classification is pure and total: every input maps to
// a theme, and the fetch path fails soft to the default theme.
package classify

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"focustab/internal/model"
)

// luminance is BT.601 luma from 8-bit RGB.
func luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// Image classifies by mean luminance over all pixels.
//
// The bands keep the branch order of the original classifier, which makes
// the mapping total even though the documented thresholds overlap: very dark
// images get light-on-dark text (white), very light images get dark text
// (black), and the midrange splits into sepia and skyblue.
func Image(img image.Image) model.Theme {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return model.DefaultTheme
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += luminance(float64(r>>8), float64(g>>8), float64(b>>8))
		}
	}
	mean := sum / float64(w*h)

	switch {
	case mean < 85:
		return model.ThemeWhite
	case mean > 170:
		return model.ThemeBlack
	case mean < 128:
		return model.ThemeSepia
	default:
		return model.ThemeSkyblue
	}
}

// Color classifies a flat background color given as "#rrggbb". The split is a
// simple two-way threshold at 186: dark colors get light-on-dark text.
// Unparsable input classifies as the default theme.
func Color(hex string) model.Theme {
	c, err := colorful.Hex(hex)
	if err != nil {
		return model.DefaultTheme
	}
	if luminance(c.R*255, c.G*255, c.B*255) < 186 {
		return model.ThemeWhite
	}
	return model.ThemeBlack
}

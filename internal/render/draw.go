package render

import (
	"image"
	"image/color"
	"time"
)

// FillRect fills the rectangle [x0,x1)x[y0,y1) clipped to the image.
func FillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	bounds := img.Bounds()
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// DrawBorder draws a frame of the given thickness around the full image.
func DrawBorder(img *image.RGBA, c color.RGBA, thickness int) {
	b := img.Bounds()
	for i := 0; i < thickness; i++ {
		FillRect(img, b.Min.X+i, b.Min.Y+i, b.Max.X-i, b.Min.Y+i+1, c)
		FillRect(img, b.Min.X+i, b.Max.Y-i-1, b.Max.X-i, b.Max.Y-i, c)
		FillRect(img, b.Min.X+i, b.Min.Y+i, b.Min.X+i+1, b.Max.Y-i, c)
		FillRect(img, b.Max.X-i-1, b.Min.Y+i, b.Max.X-i, b.Max.Y-i, c)
	}
}

// Chevron stripe geometry: diagonal bands 6 px wide repeating every 12 px,
// leaning 10 px left over the bar height, marching right at 60 px/s.
const (
	chevronPeriod = 12
	chevronWidth  = 6
	chevronLean   = 10
	chevronSpeed  = 60 // px/s
)

// ChevronStripes draws the animated diagonal hazard stripes on the top and
// bottom bars of the frame, phase-locked to wall-clock time so animation
// speed is independent of render frequency.
func ChevronStripes(img *image.RGBA, now time.Time, c color.RGBA) {
	offset := int(float64(now.UnixNano())/1e9*chevronSpeed) % chevronPeriod
	if offset < 0 {
		offset += chevronPeriod
	}
	b := img.Bounds()
	bars := [2][2]int{{b.Min.Y, b.Min.Y + 10}, {b.Max.Y - 9, b.Max.Y}}
	for _, bar := range bars {
		y0, y1 := bar[0], bar[1]
		height := y1 - y0
		for y := y0; y < y1; y++ {
			lean := chevronLean * (y - y0) / height
			phase := ((offset-lean)%chevronPeriod + chevronPeriod) % chevronPeriod
			for x := b.Min.X; x < b.Max.X; x++ {
				if ((x-b.Min.X-phase)%chevronPeriod+chevronPeriod)%chevronPeriod < chevronWidth {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

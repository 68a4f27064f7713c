package render

import (
	"image"
	"image/color"
)

// Face renders and measures sign text. The default face is the embedded
// 4x6 glyph table below; a TTF-backed face can be substituted without
// touching the frame renderer.
type Face interface {
	// Advance is the horizontal pixel advance per character.
	Advance() int
	// Height is the glyph cell height in pixels.
	Height() int
	// DrawRune draws one character with its cell's top-left at (x, y).
	DrawRune(img *image.RGBA, x, y int, r rune, c color.RGBA)
}

// Face4x6 is a fixed 4x6 pixel face covering digits, uppercase letters,
// and ticker punctuation. Lowercase input is drawn uppercase; characters
// without a glyph draw as a hollow box.
type Face4x6 struct{}

// NewFace4x6 returns the embedded sign face.
func NewFace4x6() Face4x6 { return Face4x6{} }

func (Face4x6) Advance() int { return 5 }
func (Face4x6) Height() int  { return 6 }

func (Face4x6) DrawRune(img *image.RGBA, x, y int, r rune, c color.RGBA) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	glyph, ok := glyphs4x6[r]
	if !ok {
		glyph = glyphUnknown
	}
	bounds := img.Bounds()
	for row := 0; row < 6; row++ {
		bits := glyph[row]
		if bits == 0 {
			continue
		}
		py := y + row
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		for col := 0; col < 4; col++ {
			if bits&(0b1000>>col) == 0 {
				continue
			}
			px := x + col
			if px < bounds.Min.X || px >= bounds.Max.X {
				continue
			}
			img.SetRGBA(px, py, c)
		}
	}
}

// TextWidth measures a string in pixels under the given face.
func TextWidth(face Face, text string) int {
	n := 0
	for range text {
		n++
	}
	return n * face.Advance()
}

// DrawText draws a string with its cell top-left at (x, y), clipping to the
// image bounds. Characters entirely off-screen are skipped so wide ticker
// strings stay cheap to draw at high frame rates.
func DrawText(img *image.RGBA, face Face, x, y int, text string, c color.RGBA) {
	bounds := img.Bounds()
	adv := face.Advance()
	for _, r := range text {
		if x >= bounds.Max.X {
			return
		}
		if x+adv > bounds.Min.X {
			face.DrawRune(img, x, y, r, c)
		}
		x += adv
	}
}

// glyphUnknown is the hollow-box fallback for unmapped characters.
var glyphUnknown = [6]uint8{0b1110, 0b1010, 0b1010, 0b1010, 0b1110, 0}

// glyphs4x6 holds the sign's glyph bitmaps: 3-pixel-wide forms in a 4x6
// cell, one bitmask per row, bit 3 being the leftmost column.
var glyphs4x6 = map[rune][6]uint8{
	' ':  {0, 0, 0, 0, 0, 0},
	'!':  {0b0100, 0b0100, 0b0100, 0, 0b0100, 0},
	'"':  {0b1010, 0b1010, 0, 0, 0, 0},
	'#':  {0b1010, 0b1110, 0b1010, 0b1110, 0b1010, 0},
	'%':  {0b1010, 0b0010, 0b0100, 0b1000, 0b1010, 0},
	'\'': {0b0100, 0b0100, 0, 0, 0, 0},
	'(':  {0b0010, 0b0100, 0b0100, 0b0100, 0b0010, 0},
	')':  {0b1000, 0b0100, 0b0100, 0b0100, 0b1000, 0},
	'*':  {0b1010, 0b0100, 0b1110, 0b0100, 0b1010, 0},
	'+':  {0, 0b0100, 0b1110, 0b0100, 0, 0},
	',':  {0, 0, 0, 0b0100, 0b0100, 0b1000},
	'-':  {0, 0, 0b1110, 0, 0, 0},
	'.':  {0, 0, 0, 0, 0b0100, 0},
	'/':  {0b0010, 0b0010, 0b0100, 0b1000, 0b1000, 0},
	'0':  {0b1110, 0b1010, 0b1010, 0b1010, 0b1110, 0},
	'1':  {0b0100, 0b1100, 0b0100, 0b0100, 0b1110, 0},
	'2':  {0b1110, 0b0010, 0b1110, 0b1000, 0b1110, 0},
	'3':  {0b1110, 0b0010, 0b0110, 0b0010, 0b1110, 0},
	'4':  {0b1010, 0b1010, 0b1110, 0b0010, 0b0010, 0},
	'5':  {0b1110, 0b1000, 0b1110, 0b0010, 0b1110, 0},
	'6':  {0b1110, 0b1000, 0b1110, 0b1010, 0b1110, 0},
	'7':  {0b1110, 0b0010, 0b0100, 0b0100, 0b0100, 0},
	'8':  {0b1110, 0b1010, 0b1110, 0b1010, 0b1110, 0},
	'9':  {0b1110, 0b1010, 0b1110, 0b0010, 0b1110, 0},
	':':  {0, 0b0100, 0, 0b0100, 0, 0},
	';':  {0, 0b0100, 0, 0b0100, 0b1000, 0},
	'?':  {0b1100, 0b0010, 0b0100, 0, 0b0100, 0},
	'A':  {0b0100, 0b1010, 0b1110, 0b1010, 0b1010, 0},
	'B':  {0b1100, 0b1010, 0b1100, 0b1010, 0b1100, 0},
	'C':  {0b0110, 0b1000, 0b1000, 0b1000, 0b0110, 0},
	'D':  {0b1100, 0b1010, 0b1010, 0b1010, 0b1100, 0},
	'E':  {0b1110, 0b1000, 0b1100, 0b1000, 0b1110, 0},
	'F':  {0b1110, 0b1000, 0b1100, 0b1000, 0b1000, 0},
	'G':  {0b0110, 0b1000, 0b1010, 0b1010, 0b0110, 0},
	'H':  {0b1010, 0b1010, 0b1110, 0b1010, 0b1010, 0},
	'I':  {0b1110, 0b0100, 0b0100, 0b0100, 0b1110, 0},
	'J':  {0b0010, 0b0010, 0b0010, 0b1010, 0b0100, 0},
	'K':  {0b1010, 0b1100, 0b1000, 0b1100, 0b1010, 0},
	'L':  {0b1000, 0b1000, 0b1000, 0b1000, 0b1110, 0},
	'M':  {0b1010, 0b1110, 0b1110, 0b1010, 0b1010, 0},
	'N':  {0b1010, 0b1110, 0b1110, 0b1110, 0b1010, 0},
	'O':  {0b0100, 0b1010, 0b1010, 0b1010, 0b0100, 0},
	'P':  {0b1100, 0b1010, 0b1100, 0b1000, 0b1000, 0},
	'Q':  {0b0100, 0b1010, 0b1010, 0b1100, 0b0110, 0},
	'R':  {0b1100, 0b1010, 0b1100, 0b1010, 0b1010, 0},
	'S':  {0b0110, 0b1000, 0b0100, 0b0010, 0b1100, 0},
	'T':  {0b1110, 0b0100, 0b0100, 0b0100, 0b0100, 0},
	'U':  {0b1010, 0b1010, 0b1010, 0b1010, 0b1110, 0},
	'V':  {0b1010, 0b1010, 0b1010, 0b0100, 0b0100, 0},
	'W':  {0b1010, 0b1010, 0b1110, 0b1110, 0b1010, 0},
	'X':  {0b1010, 0b1010, 0b0100, 0b1010, 0b1010, 0},
	'Y':  {0b1010, 0b1010, 0b0100, 0b0100, 0b0100, 0},
	'Z':  {0b1110, 0b0010, 0b0100, 0b1000, 0b1110, 0},
	'_':  {0, 0, 0, 0, 0b1110, 0},
}

package report

import (
	"strings"
)

// glyphs is a 5x7 bitmap font; each row uses the low five bits, MSB on the left.
var glyphs = map[rune][7]uint8{
	'A': {0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'B': {0b11110, 0b10001, 0b10001, 0b11110, 0b10001, 0b10001, 0b11110},
	'C': {0b01110, 0b10001, 0b10000, 0b10000, 0b10000, 0b10001, 0b01110},
	'D': {0b11110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11110},
	'E': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111},
	'F': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b10000},
	'G': {0b01110, 0b10001, 0b10000, 0b10111, 0b10001, 0b10001, 0b01110},
	'H': {0b10001, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'I': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b11111},
	'J': {0b00111, 0b00010, 0b00010, 0b00010, 0b10010, 0b10010, 0b01100},
	'K': {0b10001, 0b10010, 0b10100, 0b11000, 0b10100, 0b10010, 0b10001},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'M': {0b10001, 0b11011, 0b10101, 0b10101, 0b10001, 0b10001, 0b10001},
	'N': {0b10001, 0b11001, 0b10101, 0b10101, 0b10011, 0b10001, 0b10001},
	'O': {0b01110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'P': {0b11110, 0b10001, 0b10001, 0b11110, 0b10000, 0b10000, 0b10000},
	'Q': {0b01110, 0b10001, 0b10001, 0b10001, 0b10101, 0b10010, 0b01101},
	'R': {0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001},
	'S': {0b01111, 0b10000, 0b10000, 0b01110, 0b00001, 0b00001, 0b11110},
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100},
	'U': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'V': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01010, 0b00100},
	'W': {0b10001, 0b10001, 0b10001, 0b10101, 0b10101, 0b10101, 0b01010},
	'X': {0b10001, 0b10001, 0b01010, 0b00100, 0b01010, 0b10001, 0b10001},
	'Y': {0b10001, 0b10001, 0b01010, 0b00100, 0b00100, 0b00100, 0b00100},
	'Z': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b11111},
	'0': {0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110},
	'1': {0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'2': {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b01000, 0b11111},
	'3': {0b11110, 0b00001, 0b00001, 0b00110, 0b00001, 0b00001, 0b11110},
	'4': {0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010},
	'5': {0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110},
	'6': {0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110},
	'7': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000},
	'8': {0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110},
	'9': {0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100},
	' ': {},
	'-': {0, 0, 0, 0b11111, 0, 0, 0},
	'_': {0, 0, 0, 0, 0, 0, 0b11111},
}

// BannerStyle controls how RenderBanner draws pixels.
type BannerStyle struct {
	On      string
	Off     string
	Spacing int // blank columns between glyphs
	Scale   int // each pixel repeated Scale times in both directions
}

// DefaultBannerStyle is '#' on ' ' with one column of spacing.
var DefaultBannerStyle = BannerStyle{On: "#", Off: " ", Spacing: 1, Scale: 1}

// RenderBanner draws text in the bitmap font. Letters are upper-cased and
// unknown characters render as blanks.
func RenderBanner(text string, style BannerStyle) string {
	if style.Scale < 1 {
		style.Scale = 1
	}
	text = strings.ToUpper(text)

	var rows []string
	for row := 0; row < 7; row++ {
		chunks := make([]string, 0, len(text))
		for _, ch := range text {
			bits := glyphs[ch][row]
			var b strings.Builder
			for col := 4; col >= 0; col-- {
				px := style.Off
				if bits&(1<<col) != 0 {
					px = style.On
				}
				b.WriteString(strings.Repeat(px, style.Scale))
			}
			chunks = append(chunks, b.String())
		}
		line := strings.Join(chunks, strings.Repeat(" ", style.Spacing))
		for i := 0; i < style.Scale; i++ {
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n")
}

// Banner renders title followed by a dashed rule as wide as the art.
func Banner(title string) string {
	art := RenderBanner(title, DefaultBannerStyle)
	width := 0
	for _, line := range strings.Split(art, "\n") {
		width = max(width, len(line))
	}
	return art + "\n" + strings.Repeat("-", width) + "\n"
}

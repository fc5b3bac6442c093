package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/diorama/pkg/math3d"
)

// Draw converts the framebuffer to terminal cells inside area. Each cell is
// an upper half block with the top pixel as foreground and the bottom pixel
// as background, so the framebuffer height should be 2x the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// DrawText writes a single line of text at (x, y), clipped to the screen.
func DrawText(scr uv.Screen, x, y int, text string, fg, bg color.Color) {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for _, r := range text {
		if x >= bounds.Max.X {
			return
		}
		cell := uv.NewCell(scr.WidthMethod(), string(r))
		if cell.Width == 0 {
			continue
		}
		cell.Style = uv.Style{Fg: fg, Bg: bg}
		scr.SetCell(x, y, cell)
		x += cell.Width
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
	ColorSky   = color.RGBA{135, 206, 250, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}

// ColorFromVec converts a [0,1] RGBA vector to a color.
func ColorFromVec(v math3d.Vec4) Color {
	return toColor(v.GL())
}

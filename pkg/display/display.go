// Package display provides the drawing surface the scope renders onto.
package display

import (
	"fmt"
	"image/color"
)

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGBA converts c to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// FontID names a font known to the display.
type FontID string

// Display is a fixed-resolution surface with primitive drawing operations.
// Drawing outside the surface is clipped. Nothing is visible until Present.
type Display interface {
	Width() int
	Height() int
	Clear(c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawText(x, y int, s string, c Color, font FontID)
	Present() error
}

// Package render turns cell slices into RGBA pixels for the viewer.
package render

import "image/color"

// StatePalette maps each cell state code to a display color. Codes beyond the
// palette use its last entry.
var StatePalette = []color.RGBA{
	{R: 8, G: 8, B: 12, A: 255},      // void
	{R: 200, G: 200, B: 210, A: 255}, // structural
	{R: 70, G: 160, B: 255, A: 255},  // compute
	{R: 255, G: 170, B: 40, A: 255},  // energy
	{R: 110, G: 230, B: 120, A: 255}, // sensor
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillHeatRGBA converts neighbor counts into translucent red pixels, scaled so
// that max is fully saturated. Zero counts are fully transparent.
func fillHeatRGBA(buf []byte, counts []uint8, max int) {
	if max <= 0 {
		max = 1
	}
	for i, c := range counts {
		base := i * 4
		if c == 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		v := int(c)
		if v > max {
			v = max
		}
		a := uint8(40 + v*180/max)
		// Premultiplied alpha.
		buf[base+0] = a
		buf[base+1] = uint8(int(a) * (max - v) / (2 * max))
		buf[base+2] = 0
		buf[base+3] = a
	}
}

/*
Package sprite implements the two color bitmap sprites used for the cavern
background tiles.

A sprite record is a single attribute byte followed by a packed monochrome
bitmap, one bit per pixel with the most significant bit leftmost. Set bits
are drawn in the ink color and clear bits in the paper color.
*/
package sprite

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/minerdata/attribute"
	"github.com/bodgit/minerdata/record"
)

const (
	// Width is the width in pixels of the tile sprites
	Width = 8
	// Height is the height in pixels of the tile sprites
	Height = 8
	// TileSizeBytes is the size of an 8 by 8 sprite record
	TileSizeBytes = 1 + Height*(Width>>3)

	bytesPerPixel = 4
)

// Sprite is a decoded sprite. It implements image.Image.
type Sprite struct {
	width  int
	height int
	attr   attribute.Attribute
	bitmap []byte
}

// SizeBytes returns the record size in bytes of a sprite with the given
// dimensions.
func SizeBytes(width, height int) int {
	return 1 + height*(width>>3)
}

// Decode decodes a sprite of the given dimensions from b. The width must be
// a multiple of 8. The bitmap is retained, not copied.
func Decode(width, height int, b []byte) (*Sprite, error) {
	if width <= 0 || width&7 != 0 || height <= 0 {
		return nil, &record.DimensionError{
			Record: "sprite",
			Width:  width,
			Height: height,
		}
	}

	if err := record.CheckSize(fmt.Sprintf("sprite %dx%d", width, height), SizeBytes(width, height), b); err != nil {
		return nil, err
	}

	return &Sprite{
		width:  width,
		height: height,
		attr:   attribute.Decode(b[0]),
		bitmap: b[1:],
	}, nil
}

// Attribute returns the sprite's color attribute.
func (s *Sprite) Attribute() attribute.Attribute {
	return s.attr
}

// Bitmap returns a copy of the packed bitmap.
func (s *Sprite) Bitmap() []byte {
	return append([]byte(nil), s.bitmap...)
}

// Rows expands the bitmap into height rows of width RGBA pixels, four bytes
// per pixel. Each call returns a fresh slice.
func (s *Sprite) Rows() [][]byte {
	ink, paper := s.attr.Ink(), s.attr.Paper()
	stride := s.width >> 3

	rows := make([][]byte, s.height)
	for y := range rows {
		row := make([]byte, 0, s.width*bytesPerPixel)
		for _, b := range s.bitmap[y*stride : (y+1)*stride] {
			for bit := 7; bit >= 0; bit-- {
				c := paper
				if b>>uint(bit)&1 != 0 {
					c = ink
				}
				row = append(row, c.R, c.G, c.B, c.A)
			}
		}
		rows[y] = row
	}
	return rows
}

// ColorModel returns color.RGBAModel.
func (s *Sprite) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the sprite dimensions with the origin at (0, 0).
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At returns the color of the pixel at (x, y).
func (s *Sprite) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return color.RGBA{}
	}
	if s.bitmap[y*s.width>>3+x>>3]<<uint(x&7)&0x80 != 0 {
		return s.attr.Ink()
	}
	return s.attr.Paper()
}

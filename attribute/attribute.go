/*
Package attribute implements the ZX Spectrum color attribute byte.

Every 8 by 8 cell on the Spectrum display and every tile in the game data is
drawn in exactly two colors, ink for set bits and paper for clear bits. Both
are chosen by a single attribute byte laid out as:

	bit  7    flash
	bit  6    bright
	bits 5-3  paper index
	bits 2-0  ink index

Every one of the 256 possible values is a valid attribute.
*/
package attribute

import "image/color"

const (
	inkMask     = 0x07
	paperShift  = 3
	paperMask   = 0x07 << paperShift
	brightBit   = 1 << 6
	flashBit    = 1 << 7
	numColors   = 8
	normalLevel = 0xd7
	brightLevel = 0xff
)

// Color indices in hardware order.
const (
	Black = iota
	Blue
	Red
	Magenta
	Green
	Cyan
	Yellow
	White
)

// Each color index is a GRB bit triple; blue is bit 0, red bit 1, green bit 2
func level(index uint8, bright bool, bit uint8) uint8 {
	if index&bit == 0 {
		return 0
	}
	if bright {
		return brightLevel
	}
	return normalLevel
}

// RGBA returns the color for the given index and brightness. The index is
// masked to 0-7.
func RGBA(index uint8, bright bool) color.RGBA {
	index &= inkMask
	return color.RGBA{
		level(index, bright, 1<<1),
		level(index, bright, 1<<2),
		level(index, bright, 1<<0),
		0xff,
	}
}

// Palette returns all sixteen palette entries, the normal colors followed by
// the bright ones. Bright black is identical to black.
func Palette() color.Palette {
	p := make(color.Palette, 0, numColors<<1)
	for _, bright := range []bool{false, true} {
		for i := uint8(0); i < numColors; i++ {
			p = append(p, RGBA(i, bright))
		}
	}
	return p
}

// Attribute is a decoded attribute byte.
type Attribute struct {
	InkIndex   uint8
	PaperIndex uint8
	Bright     bool
	Flash      bool
}

// Decode returns the Attribute encoded in b.
func Decode(b byte) Attribute {
	return Attribute{
		InkIndex:   b & inkMask,
		PaperIndex: b & paperMask >> paperShift,
		Bright:     b&brightBit != 0,
		Flash:      b&flashBit != 0,
	}
}

// Byte re-encodes the attribute, Decode(a.Byte()) == a.
func (a Attribute) Byte() byte {
	b := a.InkIndex&inkMask | a.PaperIndex<<paperShift&paperMask
	if a.Bright {
		b |= brightBit
	}
	if a.Flash {
		b |= flashBit
	}
	return b
}

// Ink returns the foreground color.
func (a Attribute) Ink() color.RGBA {
	return RGBA(a.InkIndex, a.Bright)
}

// Paper returns the background color.
func (a Attribute) Paper() color.RGBA {
	return RGBA(a.PaperIndex, a.Bright)
}

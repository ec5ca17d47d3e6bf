package attribute

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tables := []struct {
		b     byte
		attr  Attribute
		ink   color.RGBA
		paper color.RGBA
	}{
		{0x00, Attribute{}, color.RGBA{0, 0, 0, 0xff}, color.RGBA{0, 0, 0, 0xff}},
		{0x42, Attribute{InkIndex: Red, Bright: true}, color.RGBA{0xff, 0, 0, 0xff}, color.RGBA{0, 0, 0, 0xff}},
		{0x38, Attribute{PaperIndex: White}, color.RGBA{0, 0, 0, 0xff}, color.RGBA{0xd7, 0xd7, 0xd7, 0xff}},
		{0x16, Attribute{InkIndex: Yellow, PaperIndex: Red}, color.RGBA{0xd7, 0xd7, 0, 0xff}, color.RGBA{0xd7, 0, 0, 0xff}},
		{0xc5, Attribute{InkIndex: Cyan, Bright: true, Flash: true}, color.RGBA{0, 0xff, 0xff, 0xff}, color.RGBA{0, 0, 0, 0xff}},
		{0x0c, Attribute{InkIndex: Green, PaperIndex: Blue}, color.RGBA{0, 0xd7, 0, 0xff}, color.RGBA{0, 0, 0xd7, 0xff}},
		{0x1b, Attribute{InkIndex: Magenta, PaperIndex: Magenta}, color.RGBA{0xd7, 0, 0xd7, 0xff}, color.RGBA{0xd7, 0, 0xd7, 0xff}},
	}

	for _, table := range tables {
		a := Decode(table.b)
		assert.Equal(t, table.attr, a, "attribute %#02x", table.b)
		assert.Equal(t, table.ink, a.Ink(), "ink %#02x", table.b)
		assert.Equal(t, table.paper, a.Paper(), "paper %#02x", table.b)
	}
}

func TestDecodeTotal(t *testing.T) {
	for i := 0; i < 256; i++ {
		a := Decode(byte(i))

		assert.True(t, a.InkIndex < numColors)
		assert.True(t, a.PaperIndex < numColors)
		assert.Equal(t, uint8(0xff), a.Ink().A)
		assert.Equal(t, uint8(0xff), a.Paper().A)
		assert.Equal(t, byte(i), a.Byte())

		if a.InkIndex != a.PaperIndex {
			assert.NotEqual(t, a.Ink(), a.Paper(), "attribute %#02x", i)
		} else {
			assert.Equal(t, a.Ink(), a.Paper(), "attribute %#02x", i)
		}

		// Deterministic
		assert.Equal(t, a, Decode(byte(i)))
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	assert.Len(t, p, 16)
	assert.Equal(t, p[Black], p[numColors+Black])

	seen := make(map[color.Color]struct{})
	for _, c := range p[1:] {
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 15)
}

/*
Package cavern implements the decoder for a single Manic Miner cavern record.

Each cavern is stored as exactly 1024 bytes:

	0x000-0x1ff  layout, 512 attribute bytes, 32 columns by 16 rows
	0x200-0x21f  name, 32 bytes of text
	0x220-0x267  tiles, 8 sprite records of 9 bytes each
	0x268-0x3ff  rest

The rest of the record holds the remainder of the cavern definition such as
guardians, items and the portal. It is kept verbatim but not decoded.

The decoded cavern retains slices of the record so callers must not reuse
the buffer passed to Decode.
*/
package cavern

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bodgit/minerdata/record"
	"github.com/bodgit/minerdata/sprite"
)

const (
	// SizeBytes is the size of a cavern record
	SizeBytes = 1024
	// NameSizeBytes is the size of the name field
	NameSizeBytes = 32
	// NumTiles is the number of tile sprites in each cavern
	NumTiles = 8

	layoutOffset = 0
	nameOffset   = layoutOffset + LayoutSizeBytes
	tilesOffset  = nameOffset + NameSizeBytes
	tilesBytes   = NumTiles * sprite.TileSizeBytes
	restOffset   = tilesOffset + tilesBytes
)

// Cavern is a decoded cavern record.
type Cavern struct {
	Layout Layout
	// Name is the raw decoded name including any padding
	Name  string
	Tiles [NumTiles]*sprite.Sprite
	// Rest holds the undecoded remainder of the record
	Rest []byte
}

// TrimmedName returns the name with any trailing spaces and control
// characters removed. The game pads names with spaces.
func (c *Cavern) TrimmedName() string {
	return strings.TrimRightFunc(c.Name, func(r rune) bool {
		return r == ' ' || r < 0x20 || r == 0x7f
	})
}

func (c *Cavern) decodeLayout(b []byte) (err error) {
	c.Layout, err = DecodeLayout(b)
	return
}

func (c *Cavern) decodeName(b []byte) error {
	if !utf8.Valid(b) {
		i := 0
		for i < len(b) {
			r, n := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && n == 1 {
				break
			}
			i += n
		}
		return &record.TextError{Record: "name", Offset: i}
	}
	c.Name = string(b)
	return nil
}

func (c *Cavern) tileDecoder(i int) func([]byte) error {
	return func(b []byte) (err error) {
		c.Tiles[i], err = sprite.Decode(sprite.Width, sprite.Height, b)
		return
	}
}

func (c *Cavern) decodeRest(b []byte) error {
	c.Rest = b
	return nil
}

func (c *Cavern) fields() record.Fields {
	fields := record.Fields{
		{Name: "layout", Offset: layoutOffset, Length: LayoutSizeBytes, Decode: c.decodeLayout},
		{Name: "name", Offset: nameOffset, Length: NameSizeBytes, Decode: c.decodeName},
	}
	for i := range c.Tiles {
		fields = append(fields, record.Field{
			Name:   fmt.Sprintf("tile %d", i),
			Offset: tilesOffset + i*sprite.TileSizeBytes,
			Length: sprite.TileSizeBytes,
			Decode: c.tileDecoder(i),
		})
	}
	return append(fields, record.Field{
		Name:   "rest",
		Offset: restOffset,
		Length: SizeBytes - restOffset,
		Decode: c.decodeRest,
	})
}

// Decode decodes a cavern from b which must be exactly SizeBytes long. No
// partially decoded cavern is returned on error.
func Decode(b []byte) (*Cavern, error) {
	c := new(Cavern)
	if err := c.fields().Decode("cavern", SizeBytes, b); err != nil {
		return nil, err
	}
	return c, nil
}

func init() {
	new(Cavern).fields().Validate(SizeBytes)
}

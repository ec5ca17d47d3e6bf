package minerdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/minerdata/record"
	"github.com/bodgit/minerdata/sprite"
	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNameOffset  = 512
	testTilesOffset = 544
)

// makeBinary returns a synthetic binary with recognisable caverns; tile slot
// t of cavern c has attribute byte c and every bitmap byte set to t.
func makeBinary() []byte {
	b := make([]byte, CavernsOffsetBytes+CavernsSizeBytes)
	for c := 0; c < CavernCount; c++ {
		rec := b[CavernsOffsetBytes+c*CavernSizeBytes:]
		copy(rec[testNameOffset:testNameOffset+32], fmt.Sprintf("%-32s", fmt.Sprintf("Cavern %d", c)))
		for t := 0; t < 8; t++ {
			tile := rec[testTilesOffset+t*sprite.TileSizeBytes:]
			tile[0] = byte(c)
			for i := 1; i < sprite.TileSizeBytes; i++ {
				tile[i] = byte(t)
			}
		}
	}
	return b
}

func TestLoad(t *testing.T) {
	b := makeBinary()

	gd, err := LoadBytes(b)
	require.Nil(t, err)
	require.Len(t, gd.Caverns, CavernCount)

	for i, c := range gd.Caverns {
		assert.Equal(t, fmt.Sprintf("Cavern %d", i), c.TrimmedName())
		assert.Len(t, c.Name, 32)
	}

	assert.Equal(t, xxhash.Sum64(b[CavernsOffsetBytes:]), gd.Checksum)
}

func TestLoadLogger(t *testing.T) {
	var buf bytes.Buffer
	m := New(log.New(&buf, "", 0))
	m.workers = 1

	_, err := m.Load(bytes.NewReader(makeBinary()))
	require.Nil(t, err)
	assert.Contains(t, buf.String(), "Read cavern 0 at offset 0xb000\n")
	assert.Contains(t, buf.String(), "Decoded cavern 19 \"Cavern 19\"\n")
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "minerdata")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "ManicMiner.bin")
	require.Nil(t, ioutil.WriteFile(file, makeBinary(), 0644))

	gd, err := New(log.New(ioutil.Discard, "", 0)).LoadFile(file)
	require.Nil(t, err)
	assert.Len(t, gd.Caverns, CavernCount)

	_, err = New(log.New(ioutil.Discard, "", 0)).LoadFile(filepath.Join(dir, "missing.bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadTruncated(t *testing.T) {
	b := makeBinary()

	for _, n := range []int{0, CavernsOffsetBytes, CavernsOffsetBytes + 1, len(b) - 1} {
		gd, err := LoadBytes(b[:n])
		assert.Nil(t, gd)
		require.NotNil(t, err, "length %d", n)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "length %d", n)

		var ce *CavernError
		require.True(t, errors.As(err, &ce))
		index := 0
		if n > CavernsOffsetBytes {
			index = (n - CavernsOffsetBytes) / CavernSizeBytes
		}
		assert.Equal(t, index, ce.Index)
	}
}

func TestLoadInvalidCavern(t *testing.T) {
	b := makeBinary()
	b[CavernsOffsetBytes+7*CavernSizeBytes+testNameOffset] = 0xff
	b[CavernsOffsetBytes+12*CavernSizeBytes+testNameOffset] = 0xff

	for i := 0; i < 10; i++ {
		gd, err := LoadBytes(b)
		assert.Nil(t, gd)
		require.NotNil(t, err)
		assert.True(t, errors.Is(err, record.ErrInvalidText))

		var ce *CavernError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 7, ce.Index)
		assert.Equal(t, int64(0xb000+7*1024), ce.Offset)
		assert.Equal(t, `cavern 7 at offset 0xcc00: cavern: field "name" at offset 0x200: name: invalid text at byte 0`, err.Error())
	}
}

func TestSprites(t *testing.T) {
	gd, err := LoadBytes(makeBinary())
	require.Nil(t, err)

	sprites := gd.Sprites()
	require.Len(t, sprites, CavernCount*8)

	for i, s := range sprites {
		assert.Equal(t, byte(i/8), s.Attribute().Byte(), "sprite %d", i)
		assert.Equal(t, bytes.Repeat([]byte{byte(i % 8)}, 8), s.Bitmap(), "sprite %d", i)
	}
}

func TestAtlas(t *testing.T) {
	gd, err := LoadBytes(makeBinary())
	require.Nil(t, err)

	a, err := gd.Atlas()
	require.Nil(t, err)
	assert.Equal(t, 128, a.Width)
	assert.Equal(t, (160/16+1)*8, a.Height)
	assert.Len(t, a.Pix, a.Width*a.Height*4)

	// Sprite 17 is cavern 2 (red on black) slot 1, bitmap 0x01 so only the
	// last pixel of each row is ink
	y, x := 8, 8
	assert.Equal(t, []byte{0, 0, 0, 0xff}, a.Pix[(y*a.Width+x)*4:(y*a.Width+x)*4+4])
	x = 15
	assert.Equal(t, []byte{0xd7, 0, 0, 0xff}, a.Pix[(y*a.Width+x)*4:(y*a.Width+x)*4+4])
}

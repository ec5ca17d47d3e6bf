/*
Package atlas composes 8 by 8 tiles into a single RGBA image and encodes it.

Tiles are packed left to right, top to bottom into a grid sixteen tiles wide.
The grid always has n/16 + 1 rows for n tiles so there is always at least one
padding row, even when n is an exact multiple of sixteen. Any cell without a
tile is fully transparent black.
*/
package atlas

import (
	"fmt"
	"image"

	"github.com/bodgit/minerdata/record"
)

const (
	tileWidth     = 8
	tileHeight    = tileWidth
	tileColumns   = 16
	bytesPerPixel = 4

	// WidthPixels is the width of every atlas
	WidthPixels = tileColumns * tileWidth
)

// Tile is anything that can be expanded to 8 rows of 8 RGBA pixels.
type Tile interface {
	Rows() [][]byte
}

// Atlas is a composed image in row-major RGBA order.
type Atlas struct {
	Pix    []byte
	Width  int
	Height int
}

// HeightPixels returns the height of an atlas holding n tiles.
func HeightPixels(n int) int {
	return (n/tileColumns + 1) * tileHeight
}

func expand(i int, t Tile) ([][]byte, error) {
	rows := t.Rows()
	if len(rows) == tileHeight {
		ok := true
		for _, row := range rows {
			ok = ok && len(row) == tileWidth*bytesPerPixel
		}
		if ok {
			return rows, nil
		}
	}

	var width int
	if len(rows) > 0 {
		width = len(rows[0]) / bytesPerPixel
	}
	return nil, &record.DimensionError{
		Record: fmt.Sprintf("atlas: tile %d", i),
		Width:  width,
		Height: len(rows),
	}
}

// Compose packs tiles into a new Atlas. Every tile must expand to exactly 8
// rows of 8 pixels.
func Compose(tiles []Tile) (*Atlas, error) {
	n := len(tiles)
	width, height := WidthPixels, HeightPixels(n)
	size := width * height * bytesPerPixel

	// Each tile is expanded once rather than once per pixel
	rows := make([][][]byte, n)
	for i, t := range tiles {
		r, err := expand(i, t)
		if err != nil {
			return nil, err
		}
		rows[i] = r
	}

	var transparent [tileWidth * bytesPerPixel]byte

	pix := make([]byte, 0, size)
	for y := 0; y < height; y++ {
		blockRow := y / tileHeight
		if blockRow*tileColumns >= n {
			break
		}
		for blockCol := 0; blockCol < tileColumns; blockCol++ {
			if i := blockRow*tileColumns + blockCol; i < n {
				pix = append(pix, rows[i][y%tileHeight]...)
			} else {
				pix = append(pix, transparent[:]...)
			}
		}
	}

	// Pad whatever the scan didn't reach
	pix = append(pix, make([]byte, size-len(pix))...)

	return &Atlas{
		Pix:    pix,
		Width:  width,
		Height: height,
	}, nil
}

// Image returns the atlas as an *image.NRGBA sharing the same pixels.
func (a *Atlas) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    a.Pix,
		Stride: a.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

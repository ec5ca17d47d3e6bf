package atlas

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

const maxColors = 256

// Options control how an atlas is encoded.
type Options struct {
	// Scale is the integer magnification, 0 or 1 for none
	Scale int
	// Colors, if non-zero, reduces the image to a paletted image with at
	// most this many colors
	Colors int
}

var (
	errBadScale  = errors.New("atlas: invalid scale")
	errBadColors = errors.New("atlas: invalid number of colors")
)

type encoder struct {
	w io.Writer
	o Options
}

func (e *encoder) scale(m image.Image) image.Image {
	if e.o.Scale <= 1 {
		return m
	}
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*e.o.Scale, b.Dy()*e.o.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

func (e *encoder) reduce(m image.Image) image.Image {
	if e.o.Colors == 0 {
		return m
	}
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, e.o.Colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

func (e *encoder) encode(m image.Image) error {
	return png.Encode(e.w, e.reduce(e.scale(m)))
}

// Encode writes the atlas a to w in PNG format. A nil o uses the defaults.
func Encode(w io.Writer, a *Atlas, o *Options) error {
	e := encoder{w: w}
	if o != nil {
		e.o = *o
	}

	if e.o.Scale < 0 {
		return errBadScale
	}
	if e.o.Colors < 0 || e.o.Colors == 1 || e.o.Colors > maxColors {
		return errBadColors
	}

	return e.encode(a.Image())
}

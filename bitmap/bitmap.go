/*
Package bitmap implements a two level image, the input of the VHDL row
encoder.

Each sample is either 0 or 1 and samples are stored row-major, top row first.
A Bitmap is usually produced from a decoded image by converting it to
grayscale and reducing every sample with a Binarizer.
*/
package bitmap

import (
	"errors"
	"fmt"
)

var (
	errRagged    = errors.New("bitmap: rows have different widths")
	errBadSample = errors.New("bitmap: sample is not 0 or 1")
)

// Bitmap is a Width by Height grid of samples in {0, 1}.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns an all zero Bitmap of the given size.
func New(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic("bitmap: negative size")
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromRows builds a Bitmap from a slice of rows. Every row must have the same
// length and every sample must be 0 or 1.
func FromRows(rows [][]uint8) (*Bitmap, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	b := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.Width {
			return nil, errRagged
		}
		for x, v := range row {
			if v > 1 {
				return nil, fmt.Errorf("%w at (%d, %d)", errBadSample, x, y)
			}
			b.Pix[y*b.Width+x] = v
		}
	}
	return b, nil
}

// At returns the sample at column x of row y.
func (b *Bitmap) At(x, y int) uint8 {
	return b.Pix[b.offset(x, y)]
}

// Set stores v at column x of row y. Any non-zero v is stored as 1.
func (b *Bitmap) Set(x, y int, v uint8) {
	if v != 0 {
		v = 1
	}
	b.Pix[b.offset(x, y)] = v
}

// Row returns row y. The returned slice shares storage with the Bitmap.
func (b *Bitmap) Row(y int) []uint8 {
	if y < 0 || y >= b.Height {
		panic("bitmap: row out of range")
	}
	return b.Pix[y*b.Width : (y+1)*b.Width : (y+1)*b.Width]
}

// Rows returns a copy of the samples as a slice of rows.
func (b *Bitmap) Rows() [][]uint8 {
	rows := make([][]uint8, b.Height)
	for y := range rows {
		rows[y] = append([]uint8(nil), b.Row(y)...)
	}
	return rows
}

// Empty reports whether the Bitmap has no samples at all.
func (b *Bitmap) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Validate checks every sample is 0 or 1. Samples written through Set always
// are, but Pix is exported.
func (b *Bitmap) Validate() error {
	if len(b.Pix) != b.Width*b.Height {
		return fmt.Errorf("bitmap: %d samples for %dx%d", len(b.Pix), b.Width, b.Height)
	}
	for i, v := range b.Pix {
		if v > 1 {
			return fmt.Errorf("%w at (%d, %d)", errBadSample, i%b.Width, i/b.Width)
		}
	}
	return nil
}

func (b *Bitmap) offset(x, y int) int {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		panic(fmt.Sprintf("bitmap: (%d, %d) out of range", x, y))
	}
	return y*b.Width + x
}

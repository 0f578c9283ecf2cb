package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

// A Binarizer reduces every sample of a grayscale image to 0 or 1.
type Binarizer interface {
	Binarize(src *image.Gray) *Bitmap
}

// BinarizerFunc adapts an ordinary function reducing a single sample to a
// Binarizer.
type BinarizerFunc func(y uint8) uint8

// Binarize implements Binarizer.
func (f BinarizerFunc) Binarize(src *image.Gray) *Bitmap {
	r := src.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Set(x-r.Min.X, y-r.Min.Y, f(src.GrayAt(x, y).Y))
		}
	}
	return b
}

var (
	// NonZero treats any non-zero sample as 1.
	NonZero Binarizer = BinarizerFunc(func(y uint8) uint8 {
		if y != 0 {
			return 1
		}
		return 0
	})

	// White treats only a full intensity sample as 1, so any shade of gray
	// becomes 0.
	White Binarizer = BinarizerFunc(func(y uint8) uint8 {
		if y == 0xff {
			return 1
		}
		return 0
	})
)

// Threshold treats samples at or above Level as 1.
type Threshold struct {
	Level uint8
}

// Binarize implements Binarizer.
func (t Threshold) Binarize(src *image.Gray) *Bitmap {
	return BinarizerFunc(func(y uint8) uint8 {
		if y >= t.Level {
			return 1
		}
		return 0
	}).Binarize(src)
}

// Quantize reduces the image to its two most representative shades using
// median cut quantization. Samples closest to the lighter shade become 1.
type Quantize struct{}

// Binarize implements Binarizer.
func (Quantize) Binarize(src *image.Gray) *Bitmap {
	r := src.Bounds()
	if r.Empty() {
		return New(r.Dx(), r.Dy())
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), src)

	light := make([]uint8, len(p))
	var lo, hi uint8 = 0xff, 0
	for i, c := range p {
		y := color.GrayModel.Convert(c).(color.Gray).Y
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
		light[i] = y
	}

	// A single shade carries no contrast to split on
	if lo == hi {
		return NonZero.Binarize(src)
	}

	pm := image.NewPaletted(r, p)
	draw.Draw(pm, r, src, r.Min, draw.Src)

	b := New(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if light[pm.ColorIndexAt(x, y)] == hi {
				b.Set(x-r.Min.X, y-r.Min.Y, 1)
			}
		}
	}
	return b
}

// ParseBinarizer returns the Binarizer with the given name, one of
// "nonzero", "white", "quantize" or "threshold". A threshold may carry its
// level after a colon, e.g. "threshold:200"; the default level is 128.
func ParseBinarizer(s string) (Binarizer, error) {
	name, arg := s, ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		name, arg = s[:i], s[i+1:]
	}

	switch strings.ToLower(name) {
	case "nonzero", "":
		return NonZero, nil
	case "white":
		return White, nil
	case "quantize":
		return Quantize{}, nil
	case "threshold":
		if arg == "" {
			return Threshold{Level: 128}, nil
		}
		level, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("bitmap: bad threshold level %q", arg)
		}
		return Threshold{Level: uint8(level)}, nil
	}
	return nil, fmt.Errorf("bitmap: unknown binarizer %q", name)
}

// ToGray converts any image to a grayscale picture of the same size.
func ToGray(src image.Image) *image.Gray {
	if dst, ok := src.(*image.Gray); ok {
		return dst
	}

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	model := dst.ColorModel()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, model.Convert(src.At(x, y)))
		}
	}
	return dst
}

// FromImage converts m to grayscale and binarizes it with b.
func FromImage(m image.Image, b Binarizer) *Bitmap {
	if b == nil {
		b = NonZero
	}
	return b.Binarize(ToGray(m))
}

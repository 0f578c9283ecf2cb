/*
Package png2vhdl converts sprite bitmaps into VHDL array literals for use as
ROM lookup tables, and keeps a catalogue of the sprites it has converted.
*/
package png2vhdl

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/png2vhdl/bitmap"
)

// Converter turns image files into VHDL array literals.
type Converter struct {
	db        *SpriteDB
	logger    *log.Logger
	binarizer bitmap.Binarizer
	width     int
	height    int
}

// Option configures a Converter.
type Option func(*Converter)

// WithBinarizer sets how grayscale samples are reduced to bits. The default
// is bitmap.NonZero.
func WithBinarizer(b bitmap.Binarizer) Option {
	return func(c *Converter) {
		c.binarizer = b
	}
}

// WithSize resizes images before they are binarized. A zero width or height
// preserves the aspect ratio, both zero leaves the image alone.
func WithSize(width, height int) Option {
	return func(c *Converter) {
		c.width, c.height = width, height
	}
}

// New returns a Converter. db may be nil in which case conversions are not
// recorded, a nil logger discards all output.
func New(db *SpriteDB, logger *log.Logger, options ...Option) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	c := &Converter{
		db:        db,
		logger:    logger,
		binarizer: bitmap.NonZero,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

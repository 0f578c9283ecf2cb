package vhdl

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/bodgit/png2vhdl/bitmap"
)

var errZeroWidth = errors.New("vhdl: bitmap has rows but no columns")

type encoder struct {
	w io.Writer

	// Enough to hold one line
	tmp []byte
}

func (e *encoder) encodeRow(b *bitmap.Bitmap, y int) error {
	e.tmp = append(e.tmp[:0], quote)
	for _, bit := range b.Row(y) {
		e.tmp = append(e.tmp, '0'+invert(bit))
	}
	e.tmp = append(e.tmp, quote)

	if y == b.Height-1 {
		e.tmp = append(e.tmp, last)
	} else {
		e.tmp = append(e.tmp, separator)
	}

	e.tmp = append(e.tmp, comment...)
	e.tmp = strconv.AppendInt(e.tmp, int64(y), 10)
	e.tmp = append(e.tmp, newline)

	_, err := e.w.Write(e.tmp)
	return err
}

func (e *encoder) encode(b *bitmap.Bitmap) error {
	for y := 0; y < b.Height; y++ {
		if err := e.encodeRow(b, y); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the Bitmap b to w as a VHDL array literal, one line per row.
// The bitmap is validated before anything is written.
func Encode(w io.Writer, b *bitmap.Bitmap) error {
	if b.Height == 0 {
		return nil
	}
	if b.Width == 0 {
		return errZeroWidth
	}
	if err := b.Validate(); err != nil {
		return err
	}

	e := encoder{
		w:   w,
		tmp: make([]byte, 0, b.Width+len(comment)+24),
	}

	return e.encode(b)
}

// Marshal returns the VHDL array literal for b.
func Marshal(b *bitmap.Bitmap) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

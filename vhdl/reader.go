package vhdl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bodgit/png2vhdl/bitmap"
)

var (
	errNotEnough = errors.New("vhdl: literal ends after a separator")
	errTooMuch   = errors.New("vhdl: data after the last row")
	errWidth     = errors.New("vhdl: rows have different widths")
)

type syntaxError struct {
	row int
	msg string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("vhdl: row %d: %s", e.row, e.msg)
}

type decoder struct {
	r *bufio.Reader

	width int
	rows  [][]uint8
	done  bool
}

func (d *decoder) readLine() ([]byte, error) {
	line, err := d.r.ReadBytes(newline)
	if err == io.EOF {
		if len(line) == 0 {
			return nil, io.EOF
		}
		return nil, io.ErrUnexpectedEOF
	}
	return line, err
}

func (d *decoder) parseRow(line []byte) error {
	y := len(d.rows)
	if d.done {
		return errTooMuch
	}

	if line[0] != quote {
		return &syntaxError{y, "missing opening quote"}
	}
	end := bytes.IndexByte(line[1:], quote)
	if end < 0 {
		return &syntaxError{y, "missing closing quote"}
	}
	bits, rest := line[1:1+end], line[2+end:]

	if y == 0 {
		d.width = len(bits)
		if d.width == 0 {
			return errZeroWidth
		}
	} else if len(bits) != d.width {
		return errWidth
	}

	row := make([]uint8, len(bits))
	for x, c := range bits {
		switch c {
		case '0', '1':
			row[x] = invert(c - '0')
		default:
			return &syntaxError{y, fmt.Sprintf("bad bit %q at column %d", c, x)}
		}
	}

	if len(rest) == 0 {
		return &syntaxError{y, "missing separator"}
	}
	switch rest[0] {
	case separator:
	case last:
		d.done = true
	default:
		return &syntaxError{y, fmt.Sprintf("bad separator %q", rest[0])}
	}
	rest = rest[1:]

	if !bytes.HasPrefix(rest, []byte(comment)) {
		return &syntaxError{y, "missing row comment"}
	}
	rest = bytes.TrimSuffix(rest[len(comment):], []byte{newline})

	if string(rest) != strconv.Itoa(y) {
		return &syntaxError{y, fmt.Sprintf("row comment %q out of sequence", rest)}
	}

	d.rows = append(d.rows, row)
	return nil
}

func (d *decoder) decode(r io.Reader) error {
	d.r = bufio.NewReader(r)

	for {
		line, err := d.readLine()
		switch err {
		case nil:
		case io.EOF:
			if len(d.rows) > 0 && !d.done {
				return errNotEnough
			}
			return nil
		case io.ErrUnexpectedEOF:
			return &syntaxError{len(d.rows), "missing line terminator"}
		default:
			return err
		}

		if err := d.parseRow(line); err != nil {
			return err
		}
	}
}

// Decode reads a VHDL array literal from r and returns it as a Bitmap,
// undoing the bit inversion applied by Encode. An empty document decodes to
// an empty Bitmap.
func Decode(r io.Reader) (*bitmap.Bitmap, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return bitmap.FromRows(d.rows)
}

// DecodeConfig returns the width and height of the bitmap held in a VHDL array
// literal. The whole literal is still validated.
func DecodeConfig(r io.Reader) (int, int, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return 0, 0, err
	}
	return d.width, len(d.rows), nil
}

// Unmarshal decodes the VHDL array literal in b.
func Unmarshal(b []byte) (*bitmap.Bitmap, error) {
	return Decode(bytes.NewReader(b))
}

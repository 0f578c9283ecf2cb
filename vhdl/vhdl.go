/*
Package vhdl implements an encoder and decoder for bitmaps written as a VHDL
array literal, suitable for a sprite ROM lookup table.

Each row of the bitmap becomes one line: the row's bits in column order
between double quotes, a comma (or a single space on the last row), a
comment marker and the zero based row index:

	"0110", --0
	"1001"  --1

Every bit is inverted on the way out so a lit pixel is written as '0',
matching the active low outputs the ROM drives. Decoding inverts them back.
A bitmap with no rows encodes to an empty document.
*/
package vhdl

const (
	quote     = '"'
	separator = ','
	last      = ' '
	comment   = " --"
	newline   = '\n'
)

// invert is the polarity flip applied to every bit in both directions.
func invert(bit uint8) uint8 {
	return bit ^ 1
}

package png2vhdl

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/png2vhdl/bitmap"
	"github.com/bodgit/png2vhdl/vhdl"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
)

var errEmptyImage = errors.New("image has no pixels")

// OutputFilename returns the default output filename for input, the same
// path with the extension replaced by ".txt".
func OutputFilename(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".txt"
}

// SpriteName returns the name a converted file is recorded under.
func SpriteName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func (c *Converter) binarize(m image.Image) (*bitmap.Bitmap, error) {
	if m.Bounds().Empty() {
		return nil, errEmptyImage
	}

	if c.width > 0 || c.height > 0 {
		m = imaging.Resize(m, c.width, c.height, imaging.Box)
		c.logger.Printf("Resized to %dx%d\n", m.Bounds().Dx(), m.Bounds().Dy())
	}

	return bitmap.FromImage(m, c.binarizer), nil
}

// ConvertImage binarizes m and returns it as a VHDL array literal.
func (c *Converter) ConvertImage(m image.Image) ([]byte, error) {
	b, err := c.binarize(m)
	if err != nil {
		return nil, err
	}
	return vhdl.Marshal(b)
}

// Convert reads the image in input and writes it to output as a VHDL array
// literal, replacing any existing file. Nothing is written unless the whole
// conversion succeeds. With a SpriteDB the file is written inside the
// transaction recording the sprite: output is left alone if the record cannot
// be stored, and the record is rolled back if output cannot be written.
func (c *Converter) Convert(input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	m, format, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if _, err = io.Copy(h, f); err != nil {
		return err
	}
	c.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", input, format, m.Bounds().Dx(), m.Bounds().Dy())

	b, err := c.binarize(m)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	literal, err := vhdl.Marshal(b)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	write := func() error {
		if err := writeFile(output, literal); err != nil {
			return err
		}
		c.logger.Printf("Wrote %d rows to \"%s\"\n", b.Height, output)
		return nil
	}

	if c.db == nil {
		return write()
	}

	return c.db.Record(Sprite{
		Name:    SpriteName(input),
		SHA1:    fmt.Sprintf("%X", h.Sum(nil)),
		Width:   b.Width,
		Height:  b.Height,
		Literal: literal,
	}, write)
}

// writeFile replaces file with b. The data goes to a temporary file in the
// same directory first so a failed write leaves any existing file intact.
func writeFile(file string, b []byte) error {
	f, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}

	if err = f.Chmod(0644); err != nil {
		f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), file)
}

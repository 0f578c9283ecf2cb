package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	app := newApp()
	app.Writer = out
	app.ErrWriter = ioutil.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"png2vhdl"}, args...))
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(cli.ExitCoder)
	require.True(t, ok, "%T: %v", err, err)
	return e.ExitCode()
}

func writePNG(t *testing.T, file string, row ...uint8) {
	t.Helper()
	m := image.NewGray(image.Rect(0, 0, len(row), 1))
	for x, v := range row {
		m.SetGray(x, 0, color.Gray{Y: v})
	}
	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, m))
	require.NoError(t, ioutil.WriteFile(file, b.Bytes(), 0644))
}

func readFile(t *testing.T, file string) string {
	t.Helper()
	b, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	return string(b)
}

func TestConvertListShow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "sprites.db")
	input := filepath.Join(dir, "ship.png")
	writePNG(t, input, 0x00, 0xff)

	_, err := run(t, "--db", db, "convert", input)
	require.NoError(t, err)
	assert.Equal(t, "\"10\"  --0\n", readFile(t, filepath.Join(dir, "ship.txt")))

	out, err := run(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Regexp(t, `^ship {20}    2x1    [0-9A-F]{40}\n$`, out)

	out, err = run(t, "--db", db, "show", "ship")
	require.NoError(t, err)
	assert.Equal(t, "\"10\"  --0\n", out)

	_, err = run(t, "--db", db, "show", "mine1")
	assert.Equal(t, 1, exitCode(t, err))
}

func TestConvertNoDB(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tunnel.png")
	output := filepath.Join(dir, "out.txt")
	writePNG(t, input, 0xff, 0x00, 0xff)

	// The database could not be opened, so it must not be touched at all
	db := filepath.Join(dir, "missing", "sprites.db")

	_, err := run(t, "--db", db, "convert", "--no-db", input, output)
	require.NoError(t, err)
	assert.Equal(t, "\"010\"  --0\n", readFile(t, output))

	_, err = os.Stat(filepath.Dir(db))
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, "--db", db, "convert", input, output)
	assert.Equal(t, 1, exitCode(t, err))
}

func TestConvertLevel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mine1.png")
	output := filepath.Join(dir, "mine1.txt")
	writePNG(t, input, 0x80, 0xfa)

	tables := []struct {
		name string
		args []string
		want string
	}{
		{"default level", []string{"--binarize", "threshold"}, "\"00\"  --0\n"},
		{"level flag", []string{"--binarize", "threshold", "--level", "250"}, "\"10\"  --0\n"},
		{"inline level", []string{"-b", "threshold:251"}, "\"11\"  --0\n"},
		{"level zero", []string{"-b", "threshold", "--level", "0"}, "\"00\"  --0\n"},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			args := append([]string{"convert", "--no-db"}, table.args...)
			_, err := run(t, append(args, input, output)...)
			require.NoError(t, err)
			assert.Equal(t, table.want, readFile(t, output))
		})
	}

	for _, bad := range [][]string{
		{"-b", "threshold", "--level", "256"},
		{"-b", "threshold", "--level", "-1"},
		{"-b", "white", "--level", "10"},
		{"-b", "otsu"},
	} {
		args := append([]string{"convert", "--no-db"}, bad...)
		_, err := run(t, append(args, input, output)...)
		assert.Equal(t, 1, exitCode(t, err), "%v", bad)
	}
}

func TestDefaultDB(t *testing.T) {
	home := t.TempDir()
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	t.Setenv("HOME", home)
	t.Setenv("PNG2VHDL_DB", "")

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = os.Stat(filepath.Join(home, defaultDB))
	assert.NoError(t, err)
}

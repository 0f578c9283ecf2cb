package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/png2vhdl"
	"github.com/bodgit/png2vhdl/bitmap"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v2"
)

const defaultDB = ".png2vhdl.db"

var errLevel = errors.New("--level only applies to --binarize threshold")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// dbFilename resolves --db, falling back to the home directory and then the
// current directory.
func dbFilename(c *cli.Context) (string, error) {
	if file := c.String("db"); file != "" {
		return homedir.Expand(file)
	}
	home, err := homedir.Dir()
	if err != nil {
		return defaultDB, nil
	}
	return filepath.Join(home, defaultDB), nil
}

func openDB(c *cli.Context) (*png2vhdl.SpriteDB, error) {
	file, err := dbFilename(c)
	if err != nil {
		return nil, err
	}
	return png2vhdl.NewSpriteDB(file)
}

func binarizer(c *cli.Context) (bitmap.Binarizer, error) {
	b, err := bitmap.ParseBinarizer(c.String("binarize"))
	if err != nil {
		return nil, err
	}
	if !c.IsSet("level") {
		return b, nil
	}

	if _, ok := b.(bitmap.Threshold); !ok {
		return nil, errLevel
	}
	level := c.Int("level")
	if level < 0 || level > 0xff {
		return nil, fmt.Errorf("level %d out of range 0-255", level)
	}
	return bitmap.Threshold{Level: uint8(level)}, nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	input := c.Args().Get(0)
	output := c.Args().Get(1)
	if output == "" {
		output = png2vhdl.OutputFilename(input)
	}

	b, err := binarizer(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var db *png2vhdl.SpriteDB
	if !c.Bool("no-db") {
		if db, err = openDB(c); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()
	}

	conv := png2vhdl.New(db, newLogger(c),
		png2vhdl.WithBinarizer(b),
		png2vhdl.WithSize(c.Int("width"), c.Int("height")),
	)

	if err := conv.Convert(input, output); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	sprites, err := db.Sprites()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, s := range sprites {
		fmt.Fprintf(c.App.Writer, "%-24s %4dx%-4d %s\n", s.Name, s.Width, s.Height, s.SHA1)
	}

	return nil
}

func show(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := openDB(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer db.Close()

	s, err := db.Find(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if s == nil {
		return cli.NewExitError(fmt.Sprintf("no sprite named \"%s\"", c.Args().First()), 1)
	}

	if _, err := c.App.Writer.Write(s.Literal); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "png2vhdl"
	app.Usage = "Convert sprite bitmaps to VHDL ROM literals"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PNG2VHDL_DB"},
			Usage:   "path to sprite database (default $HOME/" + defaultDB + ")",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to a VHDL array literal",
			Description: "OUTPUT defaults to INPUT with a .txt extension. Each row is written with its bits inverted.",
			ArgsUsage:   "INPUT [OUTPUT]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "binarize",
					Aliases: []string{"b"},
					Value:   "nonzero",
					Usage:   "how to reduce pixels to bits: nonzero, white, quantize or threshold[:LEVEL]",
				},
				&cli.IntFlag{
					Name:  "level",
					Usage: "threshold level 0-255 for --binarize threshold",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "resize to this width before converting",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "resize to this height before converting",
				},
				&cli.BoolFlag{
					Name:  "no-db",
					Usage: "do not record the sprite in the database",
				},
			},
			Action: convert,
		},
		{
			Name:   "list",
			Usage:  "List converted sprites",
			Action: list,
		},
		{
			Name:      "show",
			Usage:     "Print the literal of a converted sprite",
			ArgsUsage: "NAME",
			Action:    show,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"sheetkit"
	"sheetkit/analyze"
	"sheetkit/layout"
)

const (
	// editGridMax bounds the grid for the frame edit commands.
	editGridMax = 32
	// batchGridMax bounds the grid for the whole-sheet resize and
	// rotate commands.
	batchGridMax = 16
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func gridFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "cols",
			EnvVars: []string{"SHEETKIT_COLS"},
			Value:   4,
			Usage:   "grid columns",
		},
		&cli.IntFlag{
			Name:    "rows",
			EnvVars: []string{"SHEETKIT_ROWS"},
			Value:   4,
			Usage:   "grid rows",
		},
	}
}

func gridDims(c *cli.Context, max int) (int, int, error) {
	cols, rows := c.Int("cols"), c.Int("rows")
	if cols < 1 || cols > max || rows < 1 || rows > max {
		return 0, 0, fmt.Errorf("grid must be between 1x1 and %dx%d", max, max)
	}
	return cols, rows, nil
}

// outPath returns the output flag if set, otherwise the input path
// with suffix spliced in before the extension and the extension forced
// to .png.
func outPath(c *cli.Context, in, suffix string) string {
	if out := c.String("output"); out != "" {
		return out
	}
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + suffix + ".png"
}

// openSession loads the sheet at path into a new session. Grid flags
// override whatever a sidecar says.
func openSession(c *cli.Context, path string, max int) (*sheetkit.Session, error) {
	cols, rows, err := gridDims(c, max)
	if err != nil {
		return nil, err
	}

	s := sheetkit.New(newLogger(c))
	s.Cols, s.Rows = cols, rows
	if err := s.Load(path); err != nil {
		return nil, err
	}
	if c.IsSet("cols") || c.IsSet("rows") {
		if err := s.SetGrid(cols, rows); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// parseSource parses a combine argument of the form
// NAME=FILE:COLS:ROWS[:FRAMES].
func parseSource(arg string) (sheetkit.Source, error) {
	name, rest, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return sheetkit.Source{}, fmt.Errorf("%q: want NAME=FILE:COLS:ROWS[:FRAMES]", arg)
	}

	parts := strings.Split(rest, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return sheetkit.Source{}, fmt.Errorf("%q: want NAME=FILE:COLS:ROWS[:FRAMES]", arg)
	}

	src := sheetkit.Source{Name: name}

	var err error
	if src.Cols, err = strconv.Atoi(parts[1]); err != nil {
		return sheetkit.Source{}, fmt.Errorf("%q: invalid columns %q", arg, parts[1])
	}
	if src.Rows, err = strconv.Atoi(parts[2]); err != nil {
		return sheetkit.Source{}, fmt.Errorf("%q: invalid rows %q", arg, parts[2])
	}
	if len(parts) == 4 {
		if src.FrameCount, err = strconv.Atoi(parts[3]); err != nil {
			return sheetkit.Source{}, fmt.Errorf("%q: invalid frame count %q", arg, parts[3])
		}
	}

	if src.Image, _, err = sheetkit.LoadImage(parts[0]); err != nil {
		return sheetkit.Source{}, err
	}
	return src, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "sheetkit"
	app.Usage = "Sprite sheet grid toolkit"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "analyze",
			Usage:     "Report likely grid layouts and image facts for a sheet",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "cols",
					Usage: "analyze a specific column count",
				},
				&cli.IntFlag{
					Name:  "rows",
					Usage: "analyze a specific row count",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				m, format, err := sheetkit.LoadImage(path)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				fi, err := os.Stat(path)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				report := analyze.Analyze(filepath.Base(path), m, format, fi.Size())
				if c.IsSet("cols") || c.IsSet("rows") {
					manual, err := report.Manual(c.Int("cols"), c.Int("rows"))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Print(manual)
					return nil
				}
				fmt.Print(report)

				return nil
			},
		},
		{
			Name:      "resize",
			Usage:     "Resize every frame to a square target size",
			ArgsUsage: "FILE",
			Flags: append(gridFlags(),
				&cli.IntFlag{
					Name:  "size",
					Value: 128,
					Usage: "target frame size in pixels",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output sheet path",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				s, err := openSession(c, path, batchGridMax)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := s.Resize(c.Int("size")); err != nil {
					return cli.NewExitError(err, 1)
				}

				out := outPath(c, path, fmt.Sprintf("_resized_%d", c.Int("size")))
				if err := s.Save(out); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "rotate",
			Usage:     "Rotate every frame about its own center",
			ArgsUsage: "FILE",
			Flags: append(gridFlags(),
				&cli.Float64Flag{
					Name:  "angle",
					Value: -15,
					Usage: "rotation in degrees, counter-clockwise",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output sheet path",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				s, err := openSession(c, path, batchGridMax)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				s.Rotate(c.Float64("angle"))

				out := outPath(c, path, fmt.Sprintf("_rotated_%gdeg", c.Float64("angle")))
				if err := s.Save(out); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "delete",
			Usage:     "Blank frames, keeping their grid slots",
			ArgsUsage: "FILE",
			Flags: append(gridFlags(),
				&cli.IntSliceFlag{
					Name:  "frames",
					Usage: "frame indices to blank",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output sheet path",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				s, err := openSession(c, path, editGridMax)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := s.Select(c.IntSlice("frames")...); err != nil {
					return cli.NewExitError(err, 1)
				}
				s.DeleteSelected()

				if err := s.Save(outPath(c, path, "_edited")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "cleanup",
			Usage:     "Remove empty frames, keeping grid positions",
			ArgsUsage: "FILE",
			Flags: append(gridFlags(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output sheet path",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				s, err := openSession(c, path, editGridMax)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				removed := s.Cleanup()
				fmt.Printf("removed %d empty frames\n", removed)

				if err := s.Save(outPath(c, path, "_edited")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "compact",
			Usage:     "Remove empty frames and shrink the grid",
			ArgsUsage: "FILE",
			Flags: append(gridFlags(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output sheet path",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				path := c.Args().First()

				s, err := openSession(c, path, editGridMax)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				if err := s.Compact(); err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("compacted to %dx%d grid\n", s.Cols, s.Rows)

				if err := s.Save(outPath(c, path, "_edited")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "combine",
			Usage:     "Combine per-animation sheets into one strip sheet",
			ArgsUsage: "NAME=FILE:COLS:ROWS[:FRAMES]...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "mode",
					EnvVars: []string{"SHEETKIT_MODE"},
					Value:   string(layout.Horizontal),
					Usage:   "strip orientation, horizontal or vertical",
				},
				&cli.IntFlag{
					Name:    "size",
					EnvVars: []string{"SHEETKIT_SIZE"},
					Value:   128,
					Usage:   "target frame size in pixels",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "combined_spritesheet.png",
					Usage:   "output sheet path",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				sources := make([]sheetkit.Source, 0, c.NArg())
				for _, arg := range c.Args().Slice() {
					src, err := parseSource(arg)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					sources = append(sources, src)
				}

				sheet, cfg, err := sheetkit.Combine(sources, layout.Mode(c.String("mode")), c.Int("size"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				out := c.String("output")
				if err := sheetkit.WriteCombined(out, sheet, cfg); err != nil {
					return cli.NewExitError(err, 1)
				}
				fmt.Printf("wrote %s and %s\n", out, layout.SidecarPath(out))

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

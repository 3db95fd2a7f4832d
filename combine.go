package sheetkit

import (
	"image"
	"os"

	"github.com/pkg/errors"

	"sheetkit/grid"
	"sheetkit/layout"
	"sheetkit/transform"
)

// Source is one per-animation sheet fed to Combine. FrameCount limits
// how many frames are taken from the grid in row-major order; zero
// means all of them.
type Source struct {
	Name       string
	Image      image.Image
	Cols       int
	Rows       int
	FrameCount int
}

// Combine merges per-animation sheets into one strip sheet. Every
// frame is scaled to fit a size by size square, keeping its aspect
// ratio. In horizontal mode each animation becomes one row, frames
// left to right; in vertical mode one column, frames top to bottom.
// The returned config describes the result, with start offsets
// accumulated in source order.
func Combine(sources []Source, mode layout.Mode, size int) (*image.NRGBA, *layout.Config, error) {
	if len(sources) == 0 {
		return nil, nil, errors.New("no sources to combine")
	}
	if !mode.Valid() {
		return nil, nil, errors.Errorf("unknown mode %q", mode)
	}
	if size < 1 {
		return nil, nil, errors.Errorf("invalid frame size %d", size)
	}

	var (
		all       []*grid.Frame
		anims     []layout.Animation
		maxFrames int
		start     int
	)
	for i, src := range sources {
		n := src.FrameCount
		if n <= 0 {
			n = src.Cols * src.Rows
		}
		frames, err := grid.ExtractN(src.Image, src.Cols, src.Rows, n)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "slice %s", src.Name)
		}
		transform.Fit(frames, size)

		for j, f := range frames {
			if mode == layout.Vertical {
				f.GridX, f.GridY = i, j
			} else {
				f.GridX, f.GridY = j, i
			}
		}
		all = append(all, frames...)

		anims = append(anims, layout.Animation{
			Name:       src.Name,
			StartFrame: start,
			FrameCount: len(frames),
		})
		start += len(frames)
		if len(frames) > maxFrames {
			maxFrames = len(frames)
		}
	}

	cols, rows := maxFrames, len(sources)
	if mode == layout.Vertical {
		cols, rows = len(sources), maxFrames
	}

	sheet, err := grid.Compose(all, cols, rows, image.Pt(size, size))
	if err != nil {
		return nil, nil, errors.Wrap(err, "compose combined sheet")
	}

	return sheet, &layout.Config{
		Mode:       mode,
		TargetSize: size,
		GridCols:   cols,
		GridRows:   rows,
		Animations: anims,
	}, nil
}

// WriteCombined writes a combined sheet and its sidecar, including the
// frame mapping comment block, to path and its sidecar path.
func WriteCombined(path string, sheet image.Image, c *layout.Config) error {
	if err := SaveImage(path, sheet); err != nil {
		return err
	}
	p := layout.SidecarPath(path)
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, "create sidecar")
	}
	if err := layout.EncodeWithFrameMapping(f, c); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", p)
	}
	return errors.Wrapf(f.Close(), "close %s", p)
}

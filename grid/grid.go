/*
Package grid implements the frame grid model shared by all of the sheet
tools.

A sheet is a flat image subdivided into a uniform cols by rows grid of
equally sized frames. Frames are addressed by (GridX, GridY) and carry
the linear index they had at extraction time; structural edits renumber
indices but a frame's grid coordinates always stay within the current
grid bounds. When frames are placed back at (GridX*width, GridY*height)
they tile the sheet exactly with no overlap.
*/
package grid

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

const (
	// alphaFloor is the per-pixel alpha (out of 255) above which a pixel
	// counts as visible.
	alphaFloor = 10
	// emptyCoverage is the visible-pixel fraction below which a frame is
	// considered empty. The comparison is strict.
	emptyCoverage = 0.01
)

var (
	errBadGrid      = errors.New("grid: dimensions must be at least 1x1")
	errGridTooLarge = errors.New("grid: more cells than image pixels")
	errOutOfGrid    = errors.New("grid: frame coordinates outside grid")
)

// Frame is one rectangular cell of a sprite grid.
type Frame struct {
	Image         *image.NRGBA
	GridX         int
	GridY         int
	OriginalIndex int
	IsEmpty       bool
	Selected      bool
}

// HasAlpha reports whether m carries an alpha channel. Paletted and
// grayscale images are treated as fully opaque, so none of their frames
// are ever considered empty.
func HasAlpha(m image.Image) bool {
	switch m.ColorModel() {
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Extract slices m into cols*rows frames in row-major order. Frame
// dimensions floor-divide the image dimensions; remainder pixels on the
// right and bottom edges belong to no frame.
func Extract(m image.Image, cols, rows int) ([]*Frame, error) {
	return ExtractN(m, cols, rows, cols*rows)
}

// ExtractN is Extract stopping after the first n frames.
func ExtractN(m image.Image, cols, rows, n int) ([]*Frame, error) {
	if cols < 1 || rows < 1 {
		return nil, errBadGrid
	}
	b := m.Bounds()
	fw, fh := b.Dx()/cols, b.Dy()/rows
	if fw == 0 || fh == 0 {
		return nil, errGridTooLarge
	}

	alpha := HasAlpha(m)
	if n > cols*rows {
		n = cols * rows
	}
	frames := make([]*Frame, 0, n)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if len(frames) >= n {
				return frames, nil
			}
			dst := image.NewNRGBA(image.Rect(0, 0, fw, fh))
			sp := b.Min.Add(image.Pt(col*fw, row*fh))
			draw.Draw(dst, dst.Bounds(), m, sp, draw.Src)
			f := &Frame{
				Image:         dst,
				GridX:         col,
				GridY:         row,
				OriginalIndex: len(frames),
			}
			if alpha {
				f.IsEmpty = isEmpty(dst)
			}
			frames = append(frames, f)
		}
	}
	return frames, nil
}

// Compose places frames onto a new transparent canvas of
// cols*size.X by rows*size.Y pixels at their grid coordinates. Frames
// must already share the uniform size; no scaling occurs. Two frames at
// the same coordinates would be a logic error upstream and the later one
// wins.
func Compose(frames []*Frame, cols, rows int, size image.Point) (*image.NRGBA, error) {
	if cols < 1 || rows < 1 {
		return nil, errBadGrid
	}
	dst := image.NewNRGBA(image.Rect(0, 0, cols*size.X, rows*size.Y))
	for _, f := range frames {
		if f.GridX < 0 || f.GridX >= cols || f.GridY < 0 || f.GridY >= rows {
			return nil, errOutOfGrid
		}
		r := image.Rect(0, 0, size.X, size.Y).Add(image.Pt(f.GridX*size.X, f.GridY*size.Y))
		draw.Draw(dst, r, f.Image, f.Image.Bounds().Min, draw.Src)
	}
	return dst, nil
}

func isEmpty(m *image.NRGBA) bool {
	w, h := m.Rect.Dx(), m.Rect.Dy()
	total := w * h
	if total == 0 {
		return true
	}
	visible := 0
	for y := 0; y < h; y++ {
		i := y*m.Stride + 3
		for x := 0; x < w; x++ {
			if m.Pix[i] > alphaFloor {
				visible++
			}
			i += 4
		}
	}
	return float64(visible)/float64(total) < emptyCoverage
}

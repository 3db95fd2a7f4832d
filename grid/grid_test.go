package grid

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

// sheet builds a cols by rows sheet of size-square frames with the
// listed cells filled opaque red and everything else transparent.
func sheet(cols, rows, size int, filled ...image.Point) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, cols*size, rows*size))
	for _, p := range filled {
		r := image.Rect(0, 0, size, size).Add(image.Pt(p.X*size, p.Y*size))
		draw.Draw(m, r, image.NewUniform(red), image.Point{}, draw.Src)
	}
	return m
}

func TestExtract(t *testing.T) {
	m := sheet(4, 4, 16, image.Pt(0, 0), image.Pt(2, 1))

	frames, err := Extract(m, 4, 4)
	require.NoError(t, err)
	require.Len(t, frames, 16)

	for i, f := range frames {
		assert.Equal(t, i%4, f.GridX)
		assert.Equal(t, i/4, f.GridY)
		assert.Equal(t, i, f.OriginalIndex)
		assert.Equal(t, 16, f.Image.Bounds().Dx())
		assert.Equal(t, 16, f.Image.Bounds().Dy())
	}

	assert.False(t, frames[0].IsEmpty)
	assert.False(t, frames[6].IsEmpty)
	assert.True(t, frames[1].IsEmpty)
	assert.True(t, frames[15].IsEmpty)
}

func TestExtractRemainder(t *testing.T) {
	// 130 does not divide by 4; the 2px right and bottom margins
	// belong to no frame.
	m := image.NewNRGBA(image.Rect(0, 0, 130, 130))

	frames, err := Extract(m, 4, 4)
	require.NoError(t, err)
	require.Len(t, frames, 16)
	assert.Equal(t, 32, frames[0].Image.Bounds().Dx())
	assert.Equal(t, 32, frames[0].Image.Bounds().Dy())
}

func TestExtractInvalidGrid(t *testing.T) {
	m := sheet(2, 2, 8)

	_, err := Extract(m, 0, 2)
	assert.Error(t, err)
	_, err = Extract(m, 2, -1)
	assert.Error(t, err)
	_, err = Extract(m, 32, 1)
	assert.Error(t, err, "more columns than pixels")
}

func TestExtractN(t *testing.T) {
	m := sheet(4, 4, 8)

	frames, err := ExtractN(m, 4, 4, 5)
	require.NoError(t, err)
	require.Len(t, frames, 5)
	assert.Equal(t, 0, frames[4].GridX)
	assert.Equal(t, 1, frames[4].GridY)

	// n beyond the grid is clamped.
	frames, err = ExtractN(m, 2, 2, 100)
	require.NoError(t, err)
	assert.Len(t, frames, 4)
}

func TestComposeRoundTrip(t *testing.T) {
	m := sheet(4, 2, 16, image.Pt(0, 0), image.Pt(3, 1), image.Pt(1, 0))

	frames, err := Extract(m, 4, 2)
	require.NoError(t, err)

	out, err := Compose(frames, 4, 2, image.Pt(16, 16))
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), out.Bounds())
	assert.Equal(t, m.Pix, out.Pix)
}

func TestComposeOutOfGrid(t *testing.T) {
	f := &Frame{Image: image.NewNRGBA(image.Rect(0, 0, 8, 8)), GridX: 5}

	_, err := Compose([]*Frame{f}, 4, 4, image.Pt(8, 8))
	assert.Error(t, err)
}

func TestIsEmptyCoverage(t *testing.T) {
	// 10x10 frame: one visible pixel is exactly 1% coverage, which is
	// not below the threshold, so the frame is not empty.
	m := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	assert.True(t, isEmpty(m))

	m.SetNRGBA(3, 3, red)
	assert.False(t, isEmpty(m))
}

func TestIsEmptyAlphaFloor(t *testing.T) {
	// Alpha 10 is invisible, 11 is visible.
	m := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	m.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 10})
	assert.True(t, isEmpty(m))

	m.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 11})
	assert.False(t, isEmpty(m))
}

func TestHasAlpha(t *testing.T) {
	assert.True(t, HasAlpha(image.NewNRGBA(image.Rect(0, 0, 1, 1))))
	assert.True(t, HasAlpha(image.NewRGBA64(image.Rect(0, 0, 1, 1))))
	assert.False(t, HasAlpha(image.NewGray(image.Rect(0, 0, 1, 1))))
	assert.False(t, HasAlpha(image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{red})))
}

func TestExtractOpaqueModel(t *testing.T) {
	// Images without an alpha channel never produce empty frames,
	// even when fully black.
	m := image.NewGray(image.Rect(0, 0, 64, 64))

	frames, err := Extract(m, 2, 2)
	require.NoError(t, err)
	for _, f := range frames {
		assert.False(t, f.IsEmpty)
	}
}

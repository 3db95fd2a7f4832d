package sheetkit

import (
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetkit/grid"
	"sheetkit/layout"
)

// writeSheet writes a cols by rows sheet of size-square frames to dir,
// with the listed cells filled opaque red.
func writeSheet(t *testing.T, dir string, cols, rows, size int, filled ...image.Point) string {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, cols*size, rows*size))
	for _, p := range filled {
		r := image.Rect(0, 0, size, size).Add(image.Pt(p.X*size, p.Y*size))
		draw.Draw(m, r, image.NewUniform(red), image.Point{}, draw.Src)
	}
	path := filepath.Join(dir, "hero.png")
	require.NoError(t, SaveImage(path, m))
	return path
}

func TestSessionLoad(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 2, 2, 32,
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1))

	s := New(nil)
	s.Cols, s.Rows = 2, 2
	require.NoError(t, s.Load(path))

	require.Len(t, s.Frames, 4)
	assert.Equal(t, 2, s.Cols)
	assert.Equal(t, 2, s.Rows)
	assert.True(t, s.Frames[3].IsEmpty)
	assert.False(t, s.Frames[0].IsEmpty)
}

func TestSessionLoadWithSidecar(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, 4, 2, 32,
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1), image.Pt(1, 1))

	require.NoError(t, SaveSidecar(path, &layout.Config{
		Mode:       layout.Horizontal,
		TargetSize: 32,
		GridCols:   4,
		GridRows:   2,
		Animations: []layout.Animation{
			{Name: "idle", StartFrame: 0, FrameCount: 4},
			{Name: "run", StartFrame: 4, FrameCount: 4},
		},
	}))

	// The sidecar's grid beats the session default.
	s := New(nil)
	require.NoError(t, s.Load(path))
	assert.Equal(t, 4, s.Cols)
	assert.Equal(t, 2, s.Rows)
	assert.Equal(t, 32, s.TargetSize)

	bands := s.Bands()
	require.Len(t, bands, 2)
	assert.Equal(t, "idle", bands[0].Name)
	assert.Equal(t, "run", bands[1].Name)
	assert.Len(t, bands[0].Frames, 4)
}

func TestSessionBandsVertical(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 2, 3, 32)

	s := New(nil)
	s.Cols, s.Rows = 2, 3
	s.Mode = layout.Vertical
	require.NoError(t, s.Load(path))

	bands := s.Bands()
	require.Len(t, bands, 2)
	assert.Equal(t, "Col 1", bands[0].Name)
	assert.Len(t, bands[0].Frames, 3)
}

func TestSessionSetGrid(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 4, 4, 16)

	s := New(nil)
	require.NoError(t, s.Load(path))
	require.Len(t, s.Frames, 16)

	require.NoError(t, s.SetGrid(2, 2))
	require.Len(t, s.Frames, 4)
	assert.Equal(t, 32, s.Frames[0].Image.Bounds().Dx())

	assert.Error(t, s.SetGrid(0, 2))
	assert.Error(t, New(nil).SetGrid(2, 2))
}

func TestSessionSelection(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 2, 2, 32, image.Pt(0, 0), image.Pt(1, 0))

	s := New(nil)
	s.Cols, s.Rows = 2, 2
	require.NoError(t, s.Load(path))

	require.Error(t, s.Select(4))
	for _, f := range s.Frames {
		require.False(t, f.Selected)
	}

	require.NoError(t, s.Select(0, 1))
	assert.Equal(t, 2, s.DeleteSelected())
	assert.True(t, s.Frames[0].IsEmpty)

	s.SelectEmpty()
	assert.True(t, s.Frames[0].Selected)
	assert.False(t, s.Frames[2].Selected)

	s.ClearSelection()
	s.SelectAll()
	for _, f := range s.Frames {
		assert.True(t, f.Selected)
	}
}

func TestSessionEditFlow(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, 2, 2, 32,
		image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1))

	s := New(nil)
	s.Cols, s.Rows = 2, 2
	require.NoError(t, s.Load(path))

	assert.Equal(t, 1, s.Cleanup())
	require.Len(t, s.Frames, 3)

	out := filepath.Join(dir, "hero_edited.png")
	require.NoError(t, s.Save(out))

	m, _, err := LoadImage(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), m.Bounds())

	c, err := LoadSidecar(out)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 32, c.TargetSize)
	require.Len(t, c.Animations, 2)
	assert.Equal(t, layout.Animation{Name: "Row 1", StartFrame: 0, FrameCount: 2}, c.Animations[0])
	assert.Equal(t, layout.Animation{Name: "Row 2", StartFrame: 2, FrameCount: 1}, c.Animations[1])
}

func TestSessionCompact(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 4, 4, 16, image.Pt(1, 1), image.Pt(3, 1))

	s := New(nil)
	s.Cols, s.Rows = 4, 4
	require.NoError(t, s.Load(path))

	require.NoError(t, s.Compact())
	assert.Equal(t, 2, s.Cols)
	assert.Equal(t, 1, s.Rows)
	assert.Len(t, s.Frames, 2)
}

func TestSessionCompactAllEmpty(t *testing.T) {
	path := writeSheet(t, t.TempDir(), 2, 2, 16)

	s := New(nil)
	s.Cols, s.Rows = 2, 2
	require.NoError(t, s.Load(path))

	require.ErrorIs(t, s.Compact(), grid.ErrNoActiveFrames)
	assert.Equal(t, 2, s.Cols)
	assert.Len(t, s.Frames, 4)
}

func TestSessionSaveEmpty(t *testing.T) {
	assert.Error(t, New(nil).Save(filepath.Join(t.TempDir(), "out.png")))
}

func TestLoadSidecarMissing(t *testing.T) {
	c, err := LoadSidecar(filepath.Join(t.TempDir(), "hero.png"))
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestLoadImageMissing(t *testing.T) {
	_, _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadImageGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, _, err := LoadImage(path)
	assert.Error(t, err)
}

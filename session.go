package sheetkit

import (
	"image"
	"io"
	"log"

	"github.com/pkg/errors"

	"sheetkit/grid"
	"sheetkit/layout"
	"sheetkit/transform"
)

const (
	defaultGridCols   = 4
	defaultGridRows   = 4
	defaultTargetSize = 128
)

// Session is the state of one editing run over a single sheet: the
// source image, its frame list, the current grid and the selection.
// Sessions are not safe for concurrent use.
type Session struct {
	Frames     []*grid.Frame
	Cols       int
	Rows       int
	Mode       layout.Mode
	TargetSize int

	// Animations is the band metadata loaded from a sidecar. Names
	// override the synthetic band labels, matched by position.
	Animations []layout.Animation

	sheet  image.Image
	logger *log.Logger
}

// New returns an empty session with a 4x4 horizontal grid. A nil
// logger discards all output.
func New(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		Cols:       defaultGridCols,
		Rows:       defaultGridRows,
		Mode:       layout.Horizontal,
		TargetSize: defaultTargetSize,
		logger:     logger,
	}
}

// Load reads the sheet at path and slices it into frames. Grid
// dimensions, orientation and animation names come from the sidecar
// when one exists, otherwise the session's current settings apply. A
// sidecar that cannot be read is logged and ignored; the sheet can
// still be edited by grid alone. The session is unchanged on error.
func (s *Session) Load(path string) error {
	m, _, err := LoadImage(path)
	if err != nil {
		return err
	}

	cols, rows := s.Cols, s.Rows
	mode, size := s.Mode, s.TargetSize
	var anims []layout.Animation

	c, err := LoadSidecar(path)
	if err != nil {
		s.logger.Printf("ignoring sidecar for %s: %v", path, err)
	} else if c != nil {
		for _, w := range c.Warnings {
			s.logger.Printf("sidecar %s: %s", layout.SidecarPath(path), w)
		}
		cols, rows, mode = c.GridCols, c.GridRows, c.Mode
		if c.TargetSize > 0 {
			size = c.TargetSize
		}
		anims = c.Animations
	}

	frames, err := grid.Extract(m, cols, rows)
	if err != nil {
		return errors.Wrapf(err, "slice %s", path)
	}

	s.sheet = m
	s.Frames = frames
	s.Cols, s.Rows = cols, rows
	s.Mode, s.TargetSize = mode, size
	s.Animations = anims
	s.logger.Printf("loaded %s: %dx%d grid, %d frames", path, cols, rows, len(frames))
	return nil
}

// SetGrid re-slices the loaded sheet under new grid dimensions,
// discarding any pending edits and selection.
func (s *Session) SetGrid(cols, rows int) error {
	if s.sheet == nil {
		return errors.New("no sheet loaded")
	}
	frames, err := grid.Extract(s.sheet, cols, rows)
	if err != nil {
		return err
	}
	s.Frames = frames
	s.Cols, s.Rows = cols, rows
	return nil
}

// Select marks the frames at the given list positions. Fails without
// changing the selection if any position is out of range.
func (s *Session) Select(indices ...int) error {
	for _, i := range indices {
		if i < 0 || i >= len(s.Frames) {
			return errors.Errorf("frame %d out of range, sheet has %d frames", i, len(s.Frames))
		}
	}
	for _, i := range indices {
		s.Frames[i].Selected = true
	}
	return nil
}

// SelectAll marks every frame.
func (s *Session) SelectAll() {
	for _, f := range s.Frames {
		f.Selected = true
	}
}

// SelectEmpty sets the selection to exactly the empty frames.
func (s *Session) SelectEmpty() {
	for _, f := range s.Frames {
		f.Selected = f.IsEmpty
	}
}

// ClearSelection unmarks every frame.
func (s *Session) ClearSelection() {
	for _, f := range s.Frames {
		f.Selected = false
	}
}

// DeleteSelected blanks every selected frame in place and reports how
// many were blanked. Frames keep their grid slots.
func (s *Session) DeleteSelected() int {
	n := 0
	for _, f := range s.Frames {
		if f.Selected {
			grid.Delete(f)
			n++
		}
	}
	if n > 0 {
		s.logger.Printf("deleted %d frames", n)
	}
	return n
}

// Cleanup drops empty frames from the list. Survivors keep their grid
// coordinates. Returns the number removed.
func (s *Session) Cleanup() int {
	frames, removed := grid.Cleanup(s.Frames)
	s.Frames = frames
	if removed > 0 {
		s.logger.Printf("cleaned up %d empty frames, %d remain", removed, len(frames))
	}
	return removed
}

// Compact drops empty frames and closes the columns and rows they
// leave vacant, shrinking the grid. Fails without changing the session
// when every frame is empty.
func (s *Session) Compact() error {
	frames, cols, rows, err := grid.Compact(s.Frames)
	if err != nil {
		return err
	}
	s.Frames = frames
	s.Cols, s.Rows = cols, rows
	s.logger.Printf("compacted to %dx%d grid, %d frames", cols, rows, len(frames))
	return nil
}

// Resize scales every frame to an exact size by size square.
func (s *Session) Resize(size int) error {
	if size < 1 {
		return errors.Errorf("invalid frame size %d", size)
	}
	transform.Resize(s.Frames, size)
	s.TargetSize = size
	return nil
}

// Rotate turns every frame about its own center by angle degrees
// counter-clockwise, preserving frame and sheet dimensions.
func (s *Session) Rotate(angle float64) {
	transform.Rotate(s.Frames, angle)
}

// Bands groups the current frames into animation bands following the
// session's orientation: one band per row in horizontal mode, one per
// column in vertical mode. Names loaded from a sidecar replace the
// synthetic labels, matched by position.
func (s *Session) Bands() []grid.Band {
	var bands []grid.Band
	if s.Mode == layout.Vertical {
		bands = grid.GroupByColumn(s.Frames)
	} else {
		bands = grid.GroupByRow(s.Frames)
	}
	for i := range bands {
		if i < len(s.Animations) && s.Animations[i].Name != "" {
			bands[i].Name = s.Animations[i].Name
		}
	}
	return bands
}

// Config derives the sidecar metadata for the current frames. Start
// offsets accumulate over the band order, so the entries describe the
// flattened frame sequence of the sheet Save writes.
func (s *Session) Config() *layout.Config {
	bands := s.Bands()
	anims := make([]layout.Animation, 0, len(bands))
	start := 0
	for _, b := range bands {
		anims = append(anims, layout.Animation{
			Name:       b.Name,
			StartFrame: start,
			FrameCount: len(b.Frames),
		})
		start += len(b.Frames)
	}
	return &layout.Config{
		Mode:       s.Mode,
		TargetSize: s.TargetSize,
		GridCols:   s.Cols,
		GridRows:   s.Rows,
		Animations: anims,
	}
}

// Save composes the current frames back into a sheet and writes it to
// path along with its sidecar. Nothing is written when composition
// fails.
func (s *Session) Save(path string) error {
	if len(s.Frames) == 0 {
		return errors.New("no frames to save")
	}
	size := s.Frames[0].Image.Bounds().Size()
	sheet, err := grid.Compose(s.Frames, s.Cols, s.Rows, size)
	if err != nil {
		return errors.Wrapf(err, "compose %s", path)
	}
	if err := SaveImage(path, sheet); err != nil {
		return err
	}
	c := s.Config()
	c.TargetSize = size.X
	if err := SaveSidecar(path, c); err != nil {
		return err
	}
	s.logger.Printf("saved %s and %s", path, layout.SidecarPath(path))
	return nil
}

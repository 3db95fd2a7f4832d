package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// GridSize returns the grid implied by the band list: the widest band's
// frame count and the number of bands, swapped in vertical mode. A
// config with no bands keeps its stored dimensions, clamped to at
// least 1.
func (c *Config) GridSize() (cols, rows int) {
	if len(c.Animations) == 0 {
		cols, rows = c.GridCols, c.GridRows
		if cols < 1 {
			cols = 1
		}
		if rows < 1 {
			rows = 1
		}
		return cols, rows
	}
	maxFrames := 0
	for _, a := range c.Animations {
		if a.FrameCount > maxFrames {
			maxFrames = a.FrameCount
		}
	}
	if c.Mode == Vertical {
		return len(c.Animations), maxFrames
	}
	return maxFrames, len(c.Animations)
}

type encoder struct {
	w *bufio.Writer
}

// Encode writes c to w in sidecar form: a [layout] section followed by
// the [animations] and [animation_data] band lists. Grid dimensions are
// recomputed from the band list via GridSize, not copied from c.
func Encode(w io.Writer, c *Config) error {
	e := encoder{w: bufio.NewWriter(w)}
	e.layout(c)
	e.animations(c)
	return e.w.Flush()
}

// EncodeWithFrameMapping is Encode plus a trailing [frame_mapping]
// comment block listing each band's inclusive frame range, the form the
// combiner writes.
func EncodeWithFrameMapping(w io.Writer, c *Config) error {
	e := encoder{w: bufio.NewWriter(w)}
	e.layout(c)
	e.animations(c)
	e.mapping(c)
	return e.w.Flush()
}

// MarshalText implements encoding.TextMarshaler using the combiner
// form.
func (c *Config) MarshalText() ([]byte, error) {
	var b bytes.Buffer
	if err := EncodeWithFrameMapping(&b, c); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (e *encoder) layout(c *Config) {
	mode := c.Mode
	if mode == "" {
		mode = Horizontal
	}
	cols, rows := c.GridSize()

	fmt.Fprintln(e.w, "# Sprite sheet layout configuration")
	fmt.Fprintln(e.w, "# Generated by sheetkit")
	fmt.Fprintln(e.w)
	fmt.Fprintln(e.w, "[layout]")
	fmt.Fprintf(e.w, "mode = %s\n", mode)
	fmt.Fprintf(e.w, "target_size = %d\n", c.TargetSize)
	fmt.Fprintf(e.w, "grid_cols = %d\n", cols)
	fmt.Fprintf(e.w, "grid_rows = %d\n", rows)
	fmt.Fprintln(e.w)
}

func (e *encoder) animations(c *Config) {
	fmt.Fprintln(e.w, "[animations]")
	for _, a := range c.Animations {
		fmt.Fprintf(e.w, "%s = %d\n", a.Name, a.FrameCount)
	}
	fmt.Fprintln(e.w)

	fmt.Fprintln(e.w, "[animation_data]")
	for _, a := range c.Animations {
		fmt.Fprintf(e.w, "%s:\n", a.Name)
		fmt.Fprintf(e.w, "  start_frame: %d\n", a.StartFrame)
		fmt.Fprintf(e.w, "  frame_count: %d\n", a.FrameCount)
		fmt.Fprintf(e.w, "  end_frame: %d\n", a.EndFrame())
		fmt.Fprintln(e.w)
	}
}

func (e *encoder) mapping(c *Config) {
	fmt.Fprintln(e.w, "[frame_mapping]")
	for _, a := range c.Animations {
		fmt.Fprintf(e.w, "# %s: frames %d-%d\n", a.Name, a.StartFrame, a.EndFrame())
	}
}

/*
Package analyze inspects a sprite sheet and builds a human-readable
report: image and file facts, plausible grid layouts with advisory
ratings, and a palette summary.
*/
package analyze

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	colorful "github.com/lucasb-eyer/go-colorful"

	"sheetkit/detect"
	"sheetkit/grid"
)

// paletteSize is the number of colors the palette summary is reduced
// to.
const paletteSize = 8

// maxCandidates is how many detected layouts the report shows.
const maxCandidates = 5

// standardSizes are the frame sizes game pipelines usually expect.
var standardSizes = []int{64, 128, 256}

// Report summarizes one sheet.
type Report struct {
	Name       string
	FileSize   int64
	Width      int
	Height     int
	Format     string
	HasAlpha   bool
	Candidates []detect.Candidate
	Dominant   string
	Palette    []string
}

// ManualGrid is the analysis of a caller-specified grid.
type ManualGrid struct {
	Cols        int
	Rows        int
	FrameWidth  int
	FrameHeight int
	Frames      int
	UsedPixels  int
	WastePixels int
}

// Analyze builds a report for m. Format is the registered decoder name
// and fileSize the on-disk size in bytes.
func Analyze(name string, m image.Image, format string, fileSize int64) *Report {
	b := m.Bounds()
	r := &Report{
		Name:       name,
		FileSize:   fileSize,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Format:     format,
		HasAlpha:   grid.HasAlpha(m),
		Candidates: detect.Detect(b.Dx(), b.Dy()),
		Dominant:   dominantcolor.Hex(dominantcolor.Find(m)),
	}

	q := quantize.MedianCutQuantizer{}
	for _, c := range q.Quantize(make(color.Palette, 0, paletteSize), m) {
		col, ok := colorful.MakeColor(c)
		if !ok {
			continue
		}
		r.Palette = append(r.Palette, col.Hex())
	}
	return r
}

// Manual analyzes the sheet under a caller-specified grid. Fails when
// the grid has more cells than the image has pixels on either axis.
func (r *Report) Manual(cols, rows int) (*ManualGrid, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("analyze: grid %dx%d is not valid", cols, rows)
	}
	if cols > r.Width || rows > r.Height {
		return nil, fmt.Errorf("analyze: grid %dx%d exceeds image size %dx%d", cols, rows, r.Width, r.Height)
	}
	fw, fh := r.Width/cols, r.Height/rows
	frames := cols * rows
	used := frames * fw * fh
	return &ManualGrid{
		Cols:        cols,
		Rows:        rows,
		FrameWidth:  fw,
		FrameHeight: fh,
		Frames:      frames,
		UsedPixels:  used,
		WastePixels: r.Width*r.Height - used,
	}, nil
}

// String renders the report in the analyzer's text form.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintln(&b, "=== SPRITESHEET ANALYSIS REPORT ===")
	fmt.Fprintf(&b, "File: %s\n", r.Name)
	fmt.Fprintf(&b, "Size: %dx%d pixels (%.1f KB)\n", r.Width, r.Height, float64(r.FileSize)/1024)
	fmt.Fprintf(&b, "Format: %s\n", r.Format)
	fmt.Fprintf(&b, "Transparency: %s\n", yesNo(r.HasAlpha))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== AUTO-DETECTED GRID LAYOUTS ===")
	for i, c := range r.Candidates {
		if i >= maxCandidates {
			break
		}
		fmt.Fprintf(&b, "%dx%d grid: %d frames (%dx%dpx each)\n",
			c.Cols, c.Rows, c.Frames(), c.FrameWidth, c.FrameHeight)
		switch c.Rating {
		case detect.Recommended:
			fmt.Fprintln(&b, "    -> RECOMMENDED: standard game frame size")
		case detect.Valid:
			fmt.Fprintln(&b, "    -> VALID: reasonable game frame size")
		default:
			fmt.Fprintln(&b, "    -> UNUSUAL: may not be a standard frame size")
		}
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== PALETTE ===")
	fmt.Fprintf(&b, "Dominant color: %s\n", r.Dominant)
	if len(r.Palette) > 0 {
		fmt.Fprintf(&b, "Palette: %s\n", strings.Join(r.Palette, " "))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "=== RECOMMENDATIONS ===")
	compatible := false
	for _, size := range standardSizes {
		if r.Width%size == 0 && r.Height%size == 0 {
			fmt.Fprintf(&b, "compatible with %dpx frame sizes\n", size)
			compatible = true
		}
	}
	if !compatible {
		fmt.Fprintln(&b, "not optimally sized for standard frame sizes (64, 128, 256px)")
	}

	return b.String()
}

// String renders the manual analysis in the analyzer's text form.
func (m *ManualGrid) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, "=== MANUAL GRID ANALYSIS ===")
	fmt.Fprintf(&b, "Specified grid: %dx%d\n", m.Cols, m.Rows)
	fmt.Fprintf(&b, "Frame size: %dx%d pixels\n", m.FrameWidth, m.FrameHeight)
	fmt.Fprintf(&b, "Total frames: %d\n", m.Frames)
	fmt.Fprintf(&b, "Pixel efficiency: %d pixels used\n", m.UsedPixels)
	fmt.Fprintf(&b, "Wasted space: %d pixels\n", m.WastePixels)
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

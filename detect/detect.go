/*
Package detect enumerates candidate grid layouts for an unlabeled sprite
sheet from its pixel dimensions alone.

The ranking is a heuristic biased toward denser grids: candidates are
ordered by total frame count descending, which can place a
coincidentally divisible grid above the intended one. Callers must treat
the results as suggestions, not ground truth.
*/
package detect

import "sort"

// preferredSizes are common frame sizes tried before the exhaustive
// search.
var preferredSizes = []int{256, 128, 64, 96, 48, 32}

const (
	maxAxis   = 16
	maxFrames = 32
)

// Rating is an advisory classification of a candidate's frame size. It
// has no effect on the data.
type Rating int

const (
	Unusual Rating = iota
	Valid
	Recommended
)

func (r Rating) String() string {
	switch r {
	case Recommended:
		return "recommended"
	case Valid:
		return "valid"
	default:
		return "unusual"
	}
}

// Candidate is one possible (cols, rows) subdivision of a sheet.
type Candidate struct {
	Cols        int
	Rows        int
	FrameWidth  int
	FrameHeight int
	Rating      Rating
}

// Frames is the total cell count of the candidate grid.
func (c Candidate) Frames() int {
	return c.Cols * c.Rows
}

// Detect returns the candidate grids for a width by height sheet,
// ranked most frames first. Candidates come from the preferred frame
// sizes plus every grid up to 16x16 with at most 32 cells that divides
// both dimensions evenly. Ties are broken by cols descending so the
// order is stable.
func Detect(width, height int) []Candidate {
	if width < 1 || height < 1 {
		return nil
	}

	type key struct{ cols, rows int }
	seen := make(map[key]struct{})
	var grids []key

	add := func(cols, rows int) {
		k := key{cols, rows}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		grids = append(grids, k)
	}

	for _, size := range preferredSizes {
		if width%size == 0 && height%size == 0 {
			add(width/size, height/size)
		}
	}

	for rows := 1; rows <= maxAxis; rows++ {
		for cols := 1; cols <= maxAxis; cols++ {
			if rows*cols > maxFrames {
				continue
			}
			if width%cols == 0 && height%rows == 0 {
				add(cols, rows)
			}
		}
	}

	sort.Slice(grids, func(i, j int) bool {
		fi, fj := grids[i].cols*grids[i].rows, grids[j].cols*grids[j].rows
		if fi != fj {
			return fi > fj
		}
		return grids[i].cols > grids[j].cols
	})

	out := make([]Candidate, len(grids))
	for i, g := range grids {
		fw, fh := width/g.cols, height/g.rows
		out[i] = Candidate{
			Cols:        g.cols,
			Rows:        g.rows,
			FrameWidth:  fw,
			FrameHeight: fh,
			Rating:      rate(fw, fh),
		}
	}
	return out
}

func rate(fw, fh int) Rating {
	if standard(fw) && standard(fh) {
		return Recommended
	}
	if fw >= 32 && fw <= 512 && fh >= 32 && fh <= 512 {
		return Valid
	}
	return Unusual
}

func standard(size int) bool {
	return size == 64 || size == 128 || size == 256
}

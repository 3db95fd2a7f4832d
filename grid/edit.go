package grid

import (
	"errors"
	"image"
	"sort"
)

// ErrNoActiveFrames is returned by Compact when every frame is empty and
// nothing would survive.
var ErrNoActiveFrames = errors.New("grid: no frames to keep")

// Delete replaces the frame's pixels with fully transparent data of the
// same dimensions and marks it empty. Grid coordinates and list
// membership are unchanged. Idempotent.
func Delete(f *Frame) {
	f.Image = image.NewNRGBA(f.Image.Bounds())
	f.IsEmpty = true
	f.Selected = false
}

// Cleanup removes every empty frame. Survivors keep their grid
// coordinates, leaving gaps in the logical grid, but OriginalIndex is
// reassigned to the new list position. Returns the remaining frames and
// the number removed; the input is returned untouched when no frame is
// empty.
func Cleanup(frames []*Frame) ([]*Frame, int) {
	kept := make([]*Frame, 0, len(frames))
	for _, f := range frames {
		if !f.IsEmpty {
			kept = append(kept, f)
		}
	}
	removed := len(frames) - len(kept)
	if removed == 0 {
		return frames, 0
	}
	for i, f := range kept {
		f.OriginalIndex = i
	}
	return kept, removed
}

// Compact drops empty frames and closes the gaps they leave: every
// surviving frame's grid coordinate is remapped to the rank of its old
// value among the occupied columns and rows. Returns the compacted
// frames and the new grid dimensions. Fails without mutating anything
// when no frame would survive.
func Compact(frames []*Frame) ([]*Frame, int, int, error) {
	cols := make(map[int]struct{})
	rows := make(map[int]struct{})
	for _, f := range frames {
		if !f.IsEmpty {
			cols[f.GridX] = struct{}{}
			rows[f.GridY] = struct{}{}
		}
	}
	if len(cols) == 0 || len(rows) == 0 {
		return nil, 0, 0, ErrNoActiveFrames
	}

	colRank := rank(cols)
	rowRank := rank(rows)

	out := make([]*Frame, 0, len(frames))
	for _, f := range frames {
		if f.IsEmpty {
			continue
		}
		f.GridX = colRank[f.GridX]
		f.GridY = rowRank[f.GridY]
		out = append(out, f)
	}
	return out, len(cols), len(rows), nil
}

func rank(set map[int]struct{}) map[int]int {
	values := make([]int, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Ints(values)
	m := make(map[int]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}

package grid

import (
	"fmt"
	"sort"
)

// Band is an ordered group of frames forming one animation strip: all
// frames of one row in horizontal layouts, or one column in vertical
// layouts. Bands are a view derived from the current frame coordinates,
// not stored state.
type Band struct {
	Name   string
	Frames []*Frame
}

// GroupByRow partitions frames into one band per occupied row, rows
// ascending, frames within a band ordered by column. Band names are
// synthetic 1-based labels derived from the row coordinate.
func GroupByRow(frames []*Frame) []Band {
	return group(frames, "Row",
		func(f *Frame) int { return f.GridY },
		func(f *Frame) int { return f.GridX })
}

// GroupByColumn partitions frames into one band per occupied column,
// columns ascending, frames within a band ordered by row.
func GroupByColumn(frames []*Frame) []Band {
	return group(frames, "Col",
		func(f *Frame) int { return f.GridX },
		func(f *Frame) int { return f.GridY })
}

func group(frames []*Frame, label string, major, minor func(*Frame) int) []Band {
	byMajor := make(map[int][]*Frame)
	for _, f := range frames {
		byMajor[major(f)] = append(byMajor[major(f)], f)
	}

	keys := make([]int, 0, len(byMajor))
	for k := range byMajor {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	bands := make([]Band, 0, len(keys))
	for _, k := range keys {
		members := byMajor[k]
		sort.SliceStable(members, func(i, j int) bool {
			if minor(members[i]) != minor(members[j]) {
				return minor(members[i]) < minor(members[j])
			}
			return members[i].OriginalIndex < members[j].OriginalIndex
		})
		bands = append(bands, Band{
			Name:   fmt.Sprintf("%s %d", label, k+1),
			Frames: members,
		})
	}
	return bands
}

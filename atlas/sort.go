package atlas

import (
	"slices"

	"atlaspack/rectpack"

	"github.com/maruel/natural"
)

// SortFrames orders frames in place for display. Names compare in natural order ("walk2"
// before "walk10"); every other method is descending and stable. Unknown methods sort by area.
func SortFrames(frames []Frame, method SortMethod) {
	if method == SortByName {
		slices.SortStableFunc(frames, func(a, b Frame) int {
			switch {
			case natural.Less(a.Name, b.Name):
				return -1
			case natural.Less(b.Name, a.Name):
				return 1
			}
			return 0
		})
		return
	}

	var compare rectpack.SortFunc
	switch method {
	case SortByWidth:
		compare = rectpack.SortWidth
	case SortByHeight:
		compare = rectpack.SortHeight
	case SortByPerimeter:
		compare = rectpack.SortPerimeter
	case SortByMaxSide:
		compare = rectpack.SortMaxSide
	default:
		compare = rectpack.SortArea
	}
	slices.SortStableFunc(frames, func(a, b Frame) int {
		return compare(rectpack.NewSize(a.Width, a.Height), rectpack.NewSize(b.Width, b.Height))
	})
}

package rectpack

import "cmp"

// SortFunc 以 slices.SortFunc 的方式比较两个尺寸。
//
//	-1: a 排在 b 之前
//	 0: a 与 b 相等
//	 1: a 排在 b 之后
type SortFunc func(a, b Size) int

// SortArea 按面积降序排序。
func SortArea(a, b Size) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortPerimeter 按周长降序排序。
func SortPerimeter(a, b Size) int {
	return cmp.Compare(b.Perimeter(), a.Perimeter())
}

// SortMinSide 按短边降序排序。
func SortMinSide(a, b Size) int {
	return cmp.Compare(b.MinSide(), a.MinSide())
}

// SortMaxSide 按长边降序排序。
func SortMaxSide(a, b Size) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// SortWidth 按宽度降序排序。
func SortWidth(a, b Size) int {
	return cmp.Compare(b.Width, a.Width)
}

// SortHeight 按高度降序排序。
func SortHeight(a, b Size) int {
	return cmp.Compare(b.Height, a.Height)
}

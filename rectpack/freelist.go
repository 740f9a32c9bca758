package rectpack

import "slices"

// freeList 以一组可能相互重叠的矩形记录箱子中尚未分配的区域。
type freeList struct {
	rects []Rect
	// split 是单次 subtract 调用产生的剩余矩形的暂存空间。
	split []Rect
}

// reset 使整个 width x height 的箱子重新变为空闲。
func (f *freeList) reset(width, height int) {
	f.rects = append(f.rects[:0], NewRect(0, 0, width, height))
	f.split = f.split[:0]
}

// subtract 从空闲集合中切除 used。与 used 重叠的空闲矩形被替换为它位于 used 上方、下方、
// 左侧和右侧的部分。未受影响的矩形保持原有顺序，剩余矩形追加在其后。
func (f *freeList) subtract(used Rect) {
	f.split = f.split[:0]
	kept := f.rects[:0]
	for _, free := range f.rects {
		if !free.Intersects(used) {
			kept = append(kept, free)
			continue
		}
		f.split = splitFreeNode(f.split, free, used)
	}
	f.rects = append(kept, f.split...)
}

// splitFreeNode 将 free 减去 used 后的剩余矩形追加到 dst。used 必须与 free 相交。
func splitFreeNode(dst []Rect, free, used Rect) []Rect {
	// 已用节点上方
	if used.Y > free.Y {
		dst = append(dst, NewRect(free.X, free.Y, free.Width, used.Y-free.Y))
	}
	// 已用节点下方
	if used.Bottom() < free.Bottom() {
		dst = append(dst, NewRect(free.X, used.Bottom(), free.Width, free.Bottom()-used.Bottom()))
	}
	// 已用节点左侧
	if used.X > free.X {
		dst = append(dst, NewRect(free.X, free.Y, used.X-free.X, free.Height))
	}
	// 已用节点右侧
	if used.Right() < free.Right() {
		dst = append(dst, NewRect(used.Right(), free.Y, free.Right()-used.Right(), free.Height))
	}
	return dst
}

// prune 删除被其他空闲矩形包含的空闲矩形。两个相同的矩形中删除靠后的那个。
func (f *freeList) prune() {
	for i := 0; i < len(f.rects); i++ {
		for j := i + 1; j < len(f.rects); {
			if f.rects[i].ContainsRect(f.rects[j]) {
				f.rects = slices.Delete(f.rects, j, j+1)
				continue
			}
			if f.rects[j].ContainsRect(f.rects[i]) {
				f.rects = slices.Delete(f.rects, i, i+1)
				i--
				break
			}
			j++
		}
	}
}

package rectpack

import (
	"fmt"
	"math"
)

// DefaultSize 是箱子默认的最大宽度/高度。
//
// 该值取自许多现代 GPU 支持的最大纹理尺寸。
const DefaultSize = 4096

// Packer 使用 MaxRects 算法将矩形放入单个固定尺寸的箱子，按最佳短边适配（BSSF）选择空闲区域。
// 一个 Packer 只用于一次打包：创建、插入所有矩形、读取结果后丢弃。
type Packer struct {
	free freeList

	// packed 按插入顺序保存已放置的矩形（不含内边距）。
	packed []Rect

	maxWidth  int
	maxHeight int

	// padding 是每个已放置矩形四周保留的空白。
	padding int

	// usedArea 是目前已从箱子中切除的面积（含内边距）。
	usedArea int
}

// NewPacker 创建一个 maxWidth x maxHeight 箱子的打包器。整个箱子从一开始就是空闲区域。
//
// 任一尺寸小于 1 或 padding 为负时返回错误。
func NewPacker(maxWidth, maxHeight, padding int) (*Packer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("width and height must be greater than 0 (given %vx%v)", maxWidth, maxHeight)
	}
	if padding < 0 {
		return nil, fmt.Errorf("padding must not be negative (given %v)", padding)
	}
	p := &Packer{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		padding:   padding,
	}
	p.free.reset(maxWidth, maxHeight)
	return p, nil
}

// NewDefaultPacker 创建一个 DefaultSize x DefaultSize 且无内边距的打包器。
func NewDefaultPacker() *Packer {
	packer, _ := NewPacker(DefaultSize, DefaultSize, 0)
	return packer
}

// Insert 放置一个指定尺寸的矩形，返回不含内边距的放置结果和 true；
// 没有空闲区域能容纳加上内边距的矩形时返回 false。箱子不会扩大。
func (p *Packer) Insert(width, height int) (Rect, bool) {
	return p.InsertSize(NewSize(width, height))
}

// InsertSize 与 Insert 相同，但返回的矩形保留 size 的 ID。
func (p *Packer) InsertSize(size Size) (Rect, bool) {
	node := Rect{Size: size}
	if node.IsEmpty() {
		return Rect{}, false
	}
	paddedW := size.Width + 2*p.padding
	paddedH := size.Height + 2*p.padding

	free, ok := p.findPositionBestShortSideFit(paddedW, paddedH)
	if !ok {
		return Rect{}, false
	}

	padded := NewRect(free.X, free.Y, paddedW, paddedH)
	p.free.subtract(padded)
	p.free.prune()
	p.usedArea += padded.Area()

	node.Point = Point{X: free.X + p.padding, Y: free.Y + p.padding}
	p.packed = append(p.packed, node)
	return node, true
}

// findPositionBestShortSideFit 返回放入 width x height 矩形后短边剩余最小的空闲矩形。
// 相同时取长边剩余较小者，仍相同时取最先扫描到的。
func (p *Packer) findPositionBestShortSideFit(width, height int) (Rect, bool) {
	var bestNode Rect
	bestShortSideFit := math.MaxInt
	bestLongSideFit := math.MaxInt
	found := false

	for _, freeRect := range p.free.rects {
		if freeRect.Width < width || freeRect.Height < height {
			continue
		}
		leftoverHoriz := abs(freeRect.Width - width)
		leftoverVert := abs(freeRect.Height - height)
		shortSideFit := min(leftoverHoriz, leftoverVert)
		longSideFit := max(leftoverHoriz, leftoverVert)

		if shortSideFit < bestShortSideFit || (shortSideFit == bestShortSideFit && longSideFit < bestLongSideFit) {
			bestNode = freeRect
			bestShortSideFit = shortSideFit
			bestLongSideFit = longSideFit
			found = true
		}
	}
	return bestNode, found
}

// Rects 按插入顺序返回已放置的矩形。切片归打包器所有。
func (p *Packer) Rects() []Rect {
	return p.packed
}

// FreeRects 返回当前的空闲矩形。切片归打包器所有，下一次 Insert 后失效。
func (p *Packer) FreeRects() []Rect {
	return p.free.rects
}

// Padding 返回每个矩形四周的内边距。
func (p *Packer) Padding() int {
	return p.padding
}

// Size 计算包含所有已放置矩形及末尾内边距的最小尺寸。
func (p *Packer) Size() Size {
	var size Size
	for _, rect := range p.packed {
		size.Width = max(size.Width, rect.Right()+p.padding)
		size.Height = max(size.Height, rect.Bottom()+p.padding)
	}
	return size
}

// MaxSize 返回箱子的尺寸。
func (p *Packer) MaxSize() Size {
	return NewSize(p.maxWidth, p.maxHeight)
}

// Used 返回箱子被矩形（含内边距）占用的比例，从 0.0（空）到 1.0（满）。
func (p *Packer) Used() float64 {
	return float64(p.usedArea) / float64(p.maxWidth*p.maxHeight)
}

// UsedCurrent 返回矩形（含内边距）占当前紧凑打包尺寸的比例。
func (p *Packer) UsedCurrent() float64 {
	size := p.Size()
	if size.Width == 0 || size.Height == 0 {
		return 0
	}
	return float64(p.usedArea) / float64(size.Width*size.Height)
}

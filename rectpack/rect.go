package rectpack

import "fmt"

// Point 描述了二维空间中的一个位置。
type Point struct {
	// X 是水平 x 轴上的位置。
	X int `json:"x"`
	// Y 是垂直 y 轴上的位置。
	Y int `json:"y"`
}

// Size 描述了二维空间中实体的尺寸。
type Size struct {
	// Width 是水平 x 轴上的尺寸。
	Width int `json:"width"`
	// Height 是垂直 y 轴上的尺寸。
	Height int `json:"height"`
	// ID 是用户自定义标识，打包时原样携带，用于把放置结果对应回输入。
	ID int `json:"-"`
}

// NewSize 创建具有指定尺寸的新尺寸对象。
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// NewSizeID 创建具有指定尺寸和标识的新尺寸对象。
func NewSizeID(id, width, height int) Size {
	return Size{ID: id, Width: width, Height: height}
}

// Eq 判断接收者和另一个尺寸是否具有相同的值。ID 字段被忽略。
func (sz *Size) Eq(size Size) bool {
	return sz.Width == size.Width && sz.Height == size.Height
}

// String 返回尺寸的字符串表示形式 "[w, h]"。
func (sz *Size) String() string {
	return fmt.Sprintf("[%v, %v]", sz.Width, sz.Height)
}

// Area 返回总面积（宽度 * 高度）。
func (sz *Size) Area() int {
	return sz.Width * sz.Height
}

// Perimeter 返回所有边的总长度。
func (sz *Size) Perimeter() int {
	return (sz.Width + sz.Height) << 1
}

// MaxSide 返回较大边的值。
func (sz *Size) MaxSide() int {
	return max(sz.Width, sz.Height)
}

// MinSide 返回较小边的值。
func (sz *Size) MinSide() int {
	return min(sz.Width, sz.Height)
}

// Rect 描述了二维空间中的一个位置（左上角）和尺寸。
type Rect struct {
	Point
	Size
}

// NewRect 使用指定的位置和尺寸初始化一个矩形。
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Point: Point{X: x, Y: y},
		Size:  Size{Width: w, Height: h},
	}
}

// Eq 比较两个矩形的位置和尺寸。
func (r *Rect) Eq(rect Rect) bool {
	return r.X == rect.X && r.Y == rect.Y && r.Size.Eq(rect.Size)
}

// String 返回矩形的字符串表示形式 "[x, y, w, h]"。
func (r *Rect) String() string {
	return fmt.Sprintf("[%v, %v, %v, %v]", r.X, r.Y, r.Width, r.Height)
}

// Right 返回右边缘之后的 x 坐标。
func (r *Rect) Right() int {
	return r.X + r.Width
}

// Bottom 返回下边缘之后的 y 坐标。
func (r *Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsRect 判断 rect 是否完全位于接收者内部。共享边缘视为在内部。
func (r *Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X &&
		rect.X+rect.Width <= r.X+r.Width &&
		r.Y <= rect.Y &&
		rect.Y+rect.Height <= r.Y+r.Height
}

// Contains 判断点 (x, y) 是否位于接收者内部。
func (r *Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

// IsEmpty 判断宽度或高度是否小于 1。
func (r *Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inflate 将每条边按指定的量向外扩展。
func (r *Rect) Inflate(width, height int) {
	r.X -= width
	r.Y -= height
	r.Width += width << 1
	r.Height += height << 1
}

// Intersects 判断两个矩形是否重叠。仅在边缘相接的矩形不算相交。
func (r *Rect) Intersects(rect Rect) bool {
	return rect.X < r.X+r.Width &&
		r.X < rect.X+rect.Width &&
		rect.Y < r.Y+r.Height &&
		r.Y < rect.Y+rect.Height
}

// abs 返回 x 的绝对值。
func abs(x int) int {
	if x >= 0 {
		return x
	}
	return -x
}

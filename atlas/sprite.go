package atlas

import "atlaspack/rectpack"

// Sprite describes one image to pack. Width and Height are the packed dimensions, after any
// trimming done by the caller.
type Sprite struct {
	ID   int
	Name string

	Width  int
	Height int

	// SourceWidth and SourceHeight are the dimensions before trimming. Zero means untrimmed.
	SourceWidth  int
	SourceHeight int
	// OffsetX and OffsetY locate the packed region inside the untrimmed source.
	OffsetX int
	OffsetY int

	// Payload is carried through packing untouched, typically the decoded image.
	Payload any
}

// SourceSize returns the untrimmed dimensions.
func (s *Sprite) SourceSize() (width, height int) {
	width, height = s.SourceWidth, s.SourceHeight
	if width == 0 {
		width = s.Width
	}
	if height == 0 {
		height = s.Height
	}
	return width, height
}

// Trimmed reports whether transparent borders were cut from the source.
func (s *Sprite) Trimmed() bool {
	w, h := s.SourceSize()
	return s.OffsetX > 0 || s.OffsetY > 0 || s.Width < w || s.Height < h
}

// Frame is a sprite placed in an atlas.
type Frame struct {
	Sprite
	X int
	Y int
	// Rotated is always false: sprites are packed in their given orientation.
	Rotated bool
}

// Rect returns the packed region of the frame, without padding.
func (f *Frame) Rect() rectpack.Rect {
	return rectpack.NewRect(f.X, f.Y, f.Width, f.Height)
}

// PackedAtlas is the result of a successful pack.
type PackedAtlas struct {
	Width  int
	Height int
	Frames []Frame
}

// Lookup returns the frame with the given name.
func (a *PackedAtlas) Lookup(name string) (Frame, bool) {
	for _, f := range a.Frames {
		if f.Name == name {
			return f, true
		}
	}
	return Frame{}, false
}

// Occupancy returns the share of the atlas covered by sprite pixels.
func (a *PackedAtlas) Occupancy() float64 {
	if a.Width == 0 || a.Height == 0 {
		return 0
	}
	used := 0
	for _, f := range a.Frames {
		used += f.Width * f.Height
	}
	return float64(used) / float64(a.Width*a.Height)
}

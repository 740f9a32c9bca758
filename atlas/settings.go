package atlas

import (
	"fmt"

	"atlaspack/rectpack"
)

// Algorithm selects the packing algorithm. Only MaxRects is implemented; the other values are
// accepted and packed with MaxRects.
type Algorithm string

const (
	AlgorithmMaxRects Algorithm = "maxrects"
	AlgorithmShelf    Algorithm = "shelf"
	AlgorithmBasic    Algorithm = "basic"
)

// SortMethod selects the display order of frames. Packing order is always descending area.
type SortMethod string

const (
	SortByArea      SortMethod = "area"
	SortByName      SortMethod = "name"
	SortByWidth     SortMethod = "width"
	SortByHeight    SortMethod = "height"
	SortByPerimeter SortMethod = "perimeter"
	SortByMaxSide   SortMethod = "maxside"
)

// LayoutMode selects how sprites are arranged. Only the optimal (MaxRects) layout is
// implemented.
type LayoutMode string

const (
	LayoutOptimal    LayoutMode = "optimal"
	LayoutHorizontal LayoutMode = "horizontal"
	LayoutVertical   LayoutMode = "vertical"
	LayoutGrid       LayoutMode = "grid"
)

// Settings configures an atlas build.
type Settings struct {
	// MaxWidth and MaxHeight bound the bin. Packing fails rather than exceed them.
	MaxWidth  int `toml:"max_width" yaml:"max_width"`
	MaxHeight int `toml:"max_height" yaml:"max_height"`
	// Padding is the empty space kept on every side of every sprite.
	Padding int `toml:"padding" yaml:"padding"`
	// PowerOfTwo rounds each final dimension up to the next power of two.
	PowerOfTwo bool `toml:"power_of_two" yaml:"power_of_two"`
	// AllowRotation is accepted but sprites are never rotated.
	AllowRotation bool `toml:"allow_rotation" yaml:"allow_rotation"`
	// TrimAlpha asks the image loader to cut fully transparent borders before packing. The
	// packer itself never looks at pixels.
	TrimAlpha bool `toml:"trim_alpha" yaml:"trim_alpha"`
	// AlphaThreshold is the highest alpha value the trimmer treats as transparent.
	AlphaThreshold int `toml:"alpha_threshold" yaml:"alpha_threshold"`
	// Extrude is accepted but edge pixels are never repeated.
	Extrude int `toml:"extrude" yaml:"extrude"`

	Algorithm  Algorithm  `toml:"algorithm" yaml:"algorithm"`
	SortMethod SortMethod `toml:"sort_method" yaml:"sort_method"`
	LayoutMode LayoutMode `toml:"layout_mode" yaml:"layout_mode"`

	// MultiPage lets PackPages spill sprites that do not fit onto further pages.
	MultiPage bool `toml:"multi_page" yaml:"multi_page"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MaxWidth:   rectpack.DefaultSize,
		MaxHeight:  rectpack.DefaultSize,
		Algorithm:  AlgorithmMaxRects,
		SortMethod: SortByArea,
		LayoutMode: LayoutOptimal,
	}
}

// Validate reports settings that cannot be packed with. Empty enum fields mean their default.
func (s *Settings) Validate() error {
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		return fmt.Errorf("%w: maximum size must be positive (given %dx%d)", ErrInvalidSettings, s.MaxWidth, s.MaxHeight)
	}
	if s.Padding < 0 {
		return fmt.Errorf("%w: padding must not be negative (given %d)", ErrInvalidSettings, s.Padding)
	}
	if s.Extrude < 0 {
		return fmt.Errorf("%w: extrude must not be negative (given %d)", ErrInvalidSettings, s.Extrude)
	}
	if s.AlphaThreshold < 0 || s.AlphaThreshold > 255 {
		return fmt.Errorf("%w: alpha threshold must be within 0..255 (given %d)", ErrInvalidSettings, s.AlphaThreshold)
	}
	switch s.Algorithm {
	case "", AlgorithmMaxRects, AlgorithmShelf, AlgorithmBasic:
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidSettings, s.Algorithm)
	}
	switch s.SortMethod {
	case "", SortByArea, SortByName, SortByWidth, SortByHeight, SortByPerimeter, SortByMaxSide:
	default:
		return fmt.Errorf("%w: unknown sort method %q", ErrInvalidSettings, s.SortMethod)
	}
	switch s.LayoutMode {
	case "", LayoutOptimal, LayoutHorizontal, LayoutVertical, LayoutGrid:
	default:
		return fmt.Errorf("%w: unknown layout mode %q", ErrInvalidSettings, s.LayoutMode)
	}
	return nil
}

// Unsupported lists the configured options that are accepted but have no effect on packing.
func (s *Settings) Unsupported() []string {
	var names []string
	if s.AllowRotation {
		names = append(names, "allow_rotation")
	}
	if s.Extrude > 0 {
		names = append(names, "extrude")
	}
	if s.Algorithm == AlgorithmShelf || s.Algorithm == AlgorithmBasic {
		names = append(names, "algorithm="+string(s.Algorithm))
	}
	if s.LayoutMode != "" && s.LayoutMode != LayoutOptimal {
		names = append(names, "layout_mode="+string(s.LayoutMode))
	}
	return names
}

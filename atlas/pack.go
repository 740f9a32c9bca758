package atlas

import (
	"fmt"
	"log/slog"
	"math/bits"
	"slices"
	"time"

	"atlaspack/rectpack"
)

// Pack arranges sprites into a single atlas of at most settings.MaxWidth x settings.MaxHeight.
//
// Sprites are packed in order of descending area (ties keep their input order) regardless of
// settings.SortMethod. If any sprite cannot be placed the whole pack fails with a *NoFitError
// naming it; there is no partial result and the bin is never grown.
//
// The atlas size is the tight bound of all frames plus one padding on the trailing edges,
// rounded up per axis to a power of two when settings.PowerOfTwo is set. Frames are returned
// in packing order.
func Pack(sprites []Sprite, settings Settings) (*PackedAtlas, error) {
	start := time.Now()
	if err := prepare(sprites, &settings); err != nil {
		return nil, err
	}

	packer, err := rectpack.NewPacker(settings.MaxWidth, settings.MaxHeight, settings.Padding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	frames := make([]Frame, 0, len(sprites))
	for _, s := range sortForPacking(sprites) {
		r, ok := packer.Insert(s.Width, s.Height)
		if !ok {
			return nil, noFit(s, &settings)
		}
		frames = append(frames, Frame{Sprite: s, X: r.X, Y: r.Y})
	}

	atlas := finish(packer, frames, &settings)
	Logger().Debug("packed atlas",
		slog.Int("sprites", len(frames)),
		slog.Int("width", atlas.Width),
		slog.Int("height", atlas.Height),
		slog.Float64("occupancy", atlas.Occupancy()),
		slog.Float64("bin_usage", packer.UsedCurrent()),
		slog.Duration("elapsed", time.Since(start)))
	return atlas, nil
}

// PackPages is like Pack but spills sprites that do not fit onto further pages, each packed
// with a fresh bin. It fails only when a sprite cannot fit even into an empty bin.
func PackPages(sprites []Sprite, settings Settings) ([]*PackedAtlas, error) {
	start := time.Now()
	if err := prepare(sprites, &settings); err != nil {
		return nil, err
	}
	pending := sortForPacking(sprites)
	for _, s := range pending {
		if s.Width+2*settings.Padding > settings.MaxWidth || s.Height+2*settings.Padding > settings.MaxHeight {
			return nil, noFit(s, &settings)
		}
	}

	var pages []*PackedAtlas
	for len(pending) > 0 {
		packer, err := rectpack.NewPacker(settings.MaxWidth, settings.MaxHeight, settings.Padding)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		frames := make([]Frame, 0, len(pending))
		var rest []Sprite
		for _, s := range pending {
			if r, ok := packer.Insert(s.Width, s.Height); ok {
				frames = append(frames, Frame{Sprite: s, X: r.X, Y: r.Y})
			} else {
				rest = append(rest, s)
			}
		}
		if len(frames) == 0 {
			return nil, noFit(pending[0], &settings)
		}
		page := finish(packer, frames, &settings)
		Logger().Debug("packed atlas page",
			slog.Int("page", len(pages)),
			slog.Int("sprites", len(frames)),
			slog.Int("remaining", len(rest)),
			slog.Int("width", page.Width),
			slog.Int("height", page.Height))
		pages = append(pages, page)
		pending = rest
	}
	Logger().Debug("packed atlas pages", slog.Int("pages", len(pages)), slog.Duration("elapsed", time.Since(start)))
	return pages, nil
}

// NextPowerOfTwo returns the smallest power of two that is >= n. Values below 2 give 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func prepare(sprites []Sprite, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if len(sprites) == 0 {
		return ErrNoSprites
	}
	for i := range sprites {
		if sprites[i].Width <= 0 || sprites[i].Height <= 0 {
			return fmt.Errorf("%w: %q has size %dx%d", ErrInvalidSprite, sprites[i].Name, sprites[i].Width, sprites[i].Height)
		}
	}
	for _, name := range settings.Unsupported() {
		Logger().Warn("setting has no effect on packing", slog.String("setting", name))
	}
	return nil
}

// sortForPacking returns a copy of sprites ordered by descending area.
func sortForPacking(sprites []Sprite) []Sprite {
	sorted := slices.Clone(sprites)
	slices.SortStableFunc(sorted, func(a, b Sprite) int {
		return rectpack.SortArea(rectpack.NewSize(a.Width, a.Height), rectpack.NewSize(b.Width, b.Height))
	})
	return sorted
}

func finish(packer *rectpack.Packer, frames []Frame, settings *Settings) *PackedAtlas {
	size := packer.Size()
	if settings.PowerOfTwo {
		size.Width = NextPowerOfTwo(size.Width)
		size.Height = NextPowerOfTwo(size.Height)
		if size.Width > settings.MaxWidth || size.Height > settings.MaxHeight {
			Logger().Warn("power of two size exceeds the maximum",
				slog.Int("width", size.Width),
				slog.Int("height", size.Height),
				slog.Int("max_width", settings.MaxWidth),
				slog.Int("max_height", settings.MaxHeight))
		}
	}
	return &PackedAtlas{Width: size.Width, Height: size.Height, Frames: frames}
}

func noFit(s Sprite, settings *Settings) error {
	return &NoFitError{
		Sprite:    s,
		MaxWidth:  settings.MaxWidth,
		MaxHeight: settings.MaxHeight,
		Padding:   settings.Padding,
	}
}

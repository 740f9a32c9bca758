// Package export serializes packed atlases into the metadata formats understood by common
// game engines and by the browser.
//
// Every exporter is a pure function of the atlas and its name: the same input always yields
// the same bytes, so no timestamps are written.
package export

import (
	"errors"
	"fmt"
	"strings"

	"atlaspack/atlas"
)

const (
	// App is written into the meta block of every format that has one.
	App = "atlaspack"
	// Version is the metadata schema version.
	Version = "1.0"
	// PixelFormat is the pixel layout of the atlas image.
	PixelFormat = "RGBA8888"
)

var (
	// ErrNilAtlas is returned when an exporter is called before a successful pack.
	ErrNilAtlas = errors.New("export: atlas is nil")
	// ErrUnknownFormat is returned by Lookup and ParseFormats for unregistered names.
	ErrUnknownFormat = errors.New("export: unknown format")
)

// Exporter serializes an atlas. name is the atlas base name; the image is assumed to be
// ImageName(name).
type Exporter func(a *atlas.PackedAtlas, name string) ([]byte, error)

// Format names a metadata format.
type Format string

const (
	JSONArray Format = "json-array"
	JSONHash  Format = "json-hash"
	Cocos     Format = "cocos"
	Phaser    Format = "phaser"
	Unity     Format = "unity"
	CSS       Format = "css"
)

type entry struct {
	export    Exporter
	extension string
}

var registry = map[Format]entry{
	JSONArray: {ExportJSONArray, ".array.json"},
	JSONHash:  {ExportJSONHash, ".json"},
	Cocos:     {ExportCocos, ".plist"},
	Phaser:    {ExportPhaser, ".phaser.json"},
	Unity:     {ExportUnity, ".unity.json"},
	CSS:       {ExportCSS, ".css"},
}

// Formats returns every registered format in a fixed order.
func Formats() []Format {
	return []Format{JSONArray, JSONHash, Cocos, Phaser, Unity, CSS}
}

// Lookup returns the exporter registered for f.
func Lookup(f Format) (Exporter, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return e.export, nil
}

// Extension returns the file suffix used for f, including the leading dot.
func (f Format) Extension() string {
	return registry[f].extension
}

// FileName returns the metadata file name for an atlas called name.
func (f Format) FileName(name string) string {
	return name + f.Extension()
}

var aliases = map[string]Format{
	"json":  JSONHash,
	"array": JSONArray,
	"hash":  JSONHash,
	"plist": Cocos,
}

// ParseFormats parses a comma separated list of format names. "all" selects every format;
// "json" is short for json-hash and "plist" for cocos. Duplicates are dropped.
func ParseFormats(list string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == "all" {
			return Formats(), nil
		}
		f, ok := aliases[part]
		if !ok {
			f = Format(part)
		}
		if _, ok := registry[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, part)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("%w: empty format list", ErrUnknownFormat)
	}
	return formats, nil
}

// ImageName returns the image file name metadata refers to.
func ImageName(name string) string {
	return name + ".png"
}

type rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// frame is the TexturePacker style frame shared by the JSON formats.
type frame struct {
	Filename         string `json:"filename,omitempty"`
	Frame            rect   `json:"frame"`
	Rotated          bool   `json:"rotated"`
	Trimmed          bool   `json:"trimmed"`
	SpriteSourceSize rect   `json:"spriteSourceSize"`
	SourceSize       size   `json:"sourceSize"`
}

type meta struct {
	App     string `json:"app"`
	Version string `json:"version"`
	Image   string `json:"image"`
	Format  string `json:"format"`
	Size    size   `json:"size"`
	Scale   string `json:"scale"`
}

func newFrame(f *atlas.Frame) frame {
	sw, sh := f.SourceSize()
	return frame{
		Filename:         f.Name,
		Frame:            rect{X: f.X, Y: f.Y, W: f.Width, H: f.Height},
		Rotated:          f.Rotated,
		Trimmed:          f.Trimmed(),
		SpriteSourceSize: rect{X: f.OffsetX, Y: f.OffsetY, W: f.Width, H: f.Height},
		SourceSize:       size{W: sw, H: sh},
	}
}

func newMeta(a *atlas.PackedAtlas, name string) meta {
	return meta{
		App:     App,
		Version: Version,
		Image:   ImageName(name),
		Format:  PixelFormat,
		Size:    size{W: a.Width, H: a.Height},
		Scale:   "1",
	}
}

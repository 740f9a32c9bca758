package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"atlaspack/atlas"

	"howett.net/plist"
)

// testAtlas holds one untrimmed and one trimmed frame.
func testAtlas() *atlas.PackedAtlas {
	return &atlas.PackedAtlas{
		Width:  64,
		Height: 32,
		Frames: []atlas.Frame{
			{Sprite: atlas.Sprite{Name: "hero.png", Width: 16, Height: 16}, X: 0, Y: 0},
			{Sprite: atlas.Sprite{
				Name: "coin.png", Width: 8, Height: 6,
				SourceWidth: 10, SourceHeight: 10, OffsetX: 0, OffsetY: 1,
			}, X: 18, Y: 0},
		},
	}
}

func TestExportersNilAtlas(t *testing.T) {
	for _, f := range Formats() {
		exporter, err := Lookup(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := exporter(nil, "sprites"); !errors.Is(err, ErrNilAtlas) {
			t.Errorf("%s: err = %v, want ErrNilAtlas", f, err)
		}
	}
}

func TestExportersDeterministic(t *testing.T) {
	for _, f := range Formats() {
		exporter, _ := Lookup(f)
		first, err := exporter(testAtlas(), "sprites")
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		second, _ := exporter(testAtlas(), "sprites")
		if !bytes.Equal(first, second) {
			t.Errorf("%s: output differs between runs", f)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []Format
	}{
		{"json", []Format{JSONHash}},
		{"json-array, css", []Format{JSONArray, CSS}},
		{"plist,cocos,PHASER", []Format{Cocos, Phaser}},
		{"all", Formats()},
		{"unity,all", Formats()},
	}
	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if err != nil {
			t.Errorf("ParseFormats(%q): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", " , ", "json,xml"} {
		if _, err := ParseFormats(in); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormats(%q) err = %v, want ErrUnknownFormat", in, err)
		}
	}
}

func TestFormatFileName(t *testing.T) {
	seen := make(map[string]Format)
	for _, f := range Formats() {
		name := f.FileName("sprites")
		if other, ok := seen[name]; ok {
			t.Errorf("%s and %s both write %s", f, other, name)
		}
		seen[name] = f
	}
	if got := JSONHash.FileName("sprites"); got != "sprites.json" {
		t.Errorf("JSONHash.FileName = %q", got)
	}
}

func TestJSONArray(t *testing.T) {
	data, err := ExportJSONArray(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	var doc jsonArray
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	want := []frame{
		{
			Filename:         "hero.png",
			Frame:            rect{0, 0, 16, 16},
			SpriteSourceSize: rect{0, 0, 16, 16},
			SourceSize:       size{16, 16},
		},
		{
			Filename:         "coin.png",
			Frame:            rect{18, 0, 8, 6},
			Trimmed:          true,
			SpriteSourceSize: rect{0, 1, 8, 6},
			SourceSize:       size{10, 10},
		},
	}
	if !reflect.DeepEqual(doc.Frames, want) {
		t.Errorf("frames = %+v, want %+v", doc.Frames, want)
	}
	wantMeta := meta{App: App, Version: Version, Image: "sprites.png", Format: "RGBA8888", Size: size{64, 32}, Scale: "1"}
	if doc.Meta != wantMeta {
		t.Errorf("meta = %+v, want %+v", doc.Meta, wantMeta)
	}
}

func TestJSONHash(t *testing.T) {
	data, err := ExportJSONHash(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"filename"`)) {
		t.Error("hash frames must not repeat their filename")
	}
	var doc jsonHash
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(doc.Frames))
	}
	if got := doc.Frames["coin.png"].Frame; got != (rect{18, 0, 8, 6}) {
		t.Errorf("coin frame = %+v", got)
	}
}

func TestReadJSONHash(t *testing.T) {
	data, err := ExportJSONHash(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	got, image, err := ReadJSONHash(data)
	if err != nil {
		t.Fatal(err)
	}
	if image != "sprites.png" {
		t.Errorf("image = %q", image)
	}
	want := &atlas.PackedAtlas{
		Width:  64,
		Height: 32,
		Frames: []atlas.Frame{
			{Sprite: atlas.Sprite{
				Name: "coin.png", Width: 8, Height: 6,
				SourceWidth: 10, SourceHeight: 10, OffsetX: 0, OffsetY: 1,
			}, X: 18, Y: 0},
			{Sprite: atlas.Sprite{Name: "hero.png", Width: 16, Height: 16, SourceWidth: 16, SourceHeight: 16}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if _, _, err := ReadJSONHash([]byte("{")); err == nil {
		t.Error("ReadJSONHash accepted malformed input")
	}
}

func TestCocos(t *testing.T) {
	data, err := ExportCocos(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Errorf("output is not an XML property list: %.40s", data)
	}
	var doc cocosDocument
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	wantMeta := cocosMetadata{
		Format:              3,
		PixelFormat:         "RGBA8888",
		RealTextureFileName: "sprites.png",
		Size:                "{64,32}",
		TextureFileName:     "sprites.png",
	}
	if doc.Metadata != wantMeta {
		t.Errorf("metadata = %+v, want %+v", doc.Metadata, wantMeta)
	}
	tests := map[string]cocosFrame{
		"hero.png": {
			Aliases:          []string{},
			SpriteOffset:     "{0,0}",
			SpriteSize:       "{16,16}",
			SpriteSourceSize: "{16,16}",
			TextureRect:      "{{0,0},{16,16}}",
		},
		"coin.png": {
			Aliases:          []string{},
			SpriteOffset:     "{-1,1}",
			SpriteSize:       "{8,6}",
			SpriteSourceSize: "{10,10}",
			TextureRect:      "{{18,0},{8,6}}",
		},
	}
	for name, want := range tests {
		got, ok := doc.Frames[name]
		if !ok {
			t.Errorf("missing frame %s", name)
			continue
		}
		if len(got.Aliases) != 0 {
			t.Errorf("%s: aliases = %v", name, got.Aliases)
		}
		got.Aliases, want.Aliases = nil, nil
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s = %+v, want %+v", name, got, want)
		}
	}
}

func TestPhaser(t *testing.T) {
	data, err := ExportPhaser(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	var doc phaserDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Textures) != 1 {
		t.Fatalf("got %d textures, want 1", len(doc.Textures))
	}
	tex := doc.Textures[0]
	if tex.Image != "sprites.png" || tex.Size != (size{64, 32}) || tex.Scale != 1 {
		t.Errorf("texture = %+v", tex)
	}
	if len(tex.Frames) != 2 || tex.Frames[1].Filename != "coin.png" || !tex.Frames[1].Trimmed {
		t.Errorf("frames = %+v", tex.Frames)
	}
	if doc.Meta.App != App {
		t.Errorf("meta = %+v", doc.Meta)
	}
}

func TestUnity(t *testing.T) {
	data, err := ExportUnity(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	var doc unityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Texture != (unityTexture{"sprites.png", 64, 32}) {
		t.Errorf("texture = %+v", doc.Texture)
	}
	tests := []struct {
		rect   unityRect
		px, py float64
	}{
		{unityRect{0, 16, 16, 16}, 0.5, 0.5},
		{unityRect{18, 26, 8, 6}, 0.625, 1.0 / 3},
	}
	if len(doc.Sprites) != len(tests) {
		t.Fatalf("got %d sprites, want %d", len(doc.Sprites), len(tests))
	}
	for i, tt := range tests {
		s := doc.Sprites[i]
		if s.Rect != tt.rect {
			t.Errorf("%s: rect = %+v, want %+v", s.Name, s.Rect, tt.rect)
		}
		if math.Abs(s.Pivot.X-tt.px) > 1e-9 || math.Abs(s.Pivot.Y-tt.py) > 1e-9 {
			t.Errorf("%s: pivot = %+v, want (%v, %v)", s.Name, s.Pivot, tt.px, tt.py)
		}
	}
}

func TestCSS(t *testing.T) {
	data, err := ExportCSS(testAtlas(), "sprites")
	if err != nil {
		t.Fatal(err)
	}
	css := string(data)
	for _, want := range []string{
		".sprites-hero {",
		".sprites-coin {",
		"url('sprites.png')",
		"background-position: 0 0;",
		"background-position: -18px 0;",
		"width: 8px;",
		"height: 6px;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css does not contain %q:\n%s", want, css)
		}
	}
}

func TestCSSClass(t *testing.T) {
	tests := []struct{ atlas, sprite, want string }{
		{"ui", "button.png", "ui-button"},
		{"ui", "walk 1.png", "ui-walk-1"},
		{"ui", "icons/save.webp", "ui-icons-save"},
		{"my atlas", "a_b-c", "my-atlas-a_b-c"},
		{"1atlas", "hero.png", "_1atlas-hero"},
		{"-9", "x.png", "_-9-x"},
		{"-ui", "x.png", "-ui-x"},
	}
	for _, tt := range tests {
		if got := cssClass(tt.atlas, tt.sprite); got != tt.want {
			t.Errorf("cssClass(%q, %q) = %q, want %q", tt.atlas, tt.sprite, got, tt.want)
		}
	}
}

func TestCSSDistinctClasses(t *testing.T) {
	frame := func(name string, x int) atlas.Frame {
		return atlas.Frame{Sprite: atlas.Sprite{Name: name, Width: 4, Height: 4}, X: x}
	}
	a := &atlas.PackedAtlas{
		Width:  64,
		Height: 4,
		Frames: []atlas.Frame{
			frame("hero.png", 0),
			frame("hero.gif", 4),
			frame("hero-2.png", 8),
			frame("a b.png", 12),
			frame("a-b.png", 16),
		},
	}
	want := []string{"_1atlas-hero", "_1atlas-hero-2", "_1atlas-hero-2-2", "_1atlas-a-b", "_1atlas-a-b-2"}
	if got := cssClasses("1atlas", a.Frames); !reflect.DeepEqual(got, want) {
		t.Errorf("cssClasses = %v, want %v", got, want)
	}

	data, err := ExportCSS(a, "1atlas")
	if err != nil {
		t.Fatal(err)
	}
	css := string(data)
	if n := strings.Count(css, " {\n"); n != len(a.Frames) {
		t.Errorf("got %d rules, want %d:\n%s", n, len(a.Frames), css)
	}
	for i, class := range want {
		if n := strings.Count(css, "."+class+" {"); n != 1 {
			t.Errorf("class %s appears %d times, want 1", class, n)
		}
		rule := css[strings.Index(css, "."+class+" {"):]
		pos := "background-position: " + cssOffset(a.Frames[i].X) + " 0;"
		if !strings.Contains(rule[:strings.Index(rule, "}")], pos) {
			t.Errorf("class %s does not carry %q", class, pos)
		}
	}
}

package export

import (
	"encoding/json"

	"atlaspack/atlas"
)

type unityRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type unityVector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type unitySprite struct {
	Name  string       `json:"name"`
	Rect  unityRect    `json:"rect"`
	Pivot unityVector2 `json:"pivot"`
}

type unityTexture struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type unityDocument struct {
	Texture unityTexture  `json:"texture"`
	Sprites []unitySprite `json:"sprites"`
	Meta    meta          `json:"meta"`
}

// ExportUnity writes sprite rects in Unity's texture space, where y grows upwards from the
// bottom-left corner. The pivot of every sprite is the centre of its untrimmed source,
// normalized to the packed rect.
func ExportUnity(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	doc := unityDocument{
		Texture: unityTexture{Name: ImageName(name), Width: a.Width, Height: a.Height},
		Sprites: make([]unitySprite, len(a.Frames)),
		Meta:    newMeta(a, name),
	}
	for i := range a.Frames {
		f := &a.Frames[i]
		sw, sh := f.SourceSize()
		// bottom edge of the packed region inside the source, y up
		bottom := sh - f.OffsetY - f.Height
		doc.Sprites[i] = unitySprite{
			Name: f.Name,
			Rect: unityRect{
				X:      f.X,
				Y:      a.Height - f.Y - f.Height,
				Width:  f.Width,
				Height: f.Height,
			},
			Pivot: unityVector2{
				X: (float64(sw)/2 - float64(f.OffsetX)) / float64(f.Width),
				Y: (float64(sh)/2 - float64(bottom)) / float64(f.Height),
			},
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

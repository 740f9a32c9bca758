package export

import (
	"encoding/json"

	"atlaspack/atlas"
)

type jsonArray struct {
	Frames []frame `json:"frames"`
	Meta   meta    `json:"meta"`
}

type jsonHash struct {
	Frames map[string]frame `json:"frames"`
	Meta   meta             `json:"meta"`
}

// ExportJSONArray writes the TexturePacker "JSON (Array)" format: frames is a list and every
// frame carries its filename.
func ExportJSONArray(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	doc := jsonArray{
		Frames: make([]frame, len(a.Frames)),
		Meta:   newMeta(a, name),
	}
	for i := range a.Frames {
		doc.Frames[i] = newFrame(&a.Frames[i])
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ExportJSONHash writes the TexturePacker "JSON (Hash)" format: frames is an object keyed by
// filename. Keys are written in sorted order.
func ExportJSONHash(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	doc := jsonHash{
		Frames: make(map[string]frame, len(a.Frames)),
		Meta:   newMeta(a, name),
	}
	for i := range a.Frames {
		f := newFrame(&a.Frames[i])
		f.Filename = ""
		doc.Frames[a.Frames[i].Name] = f
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadJSONHash parses metadata written by ExportJSONHash back into an atlas. Frames come back
// in name order with the image name from the meta block.
func ReadJSONHash(data []byte) (*atlas.PackedAtlas, string, error) {
	var doc jsonHash
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", err
	}
	a := &atlas.PackedAtlas{
		Width:  doc.Meta.Size.W,
		Height: doc.Meta.Size.H,
		Frames: make([]atlas.Frame, 0, len(doc.Frames)),
	}
	for name, f := range doc.Frames {
		a.Frames = append(a.Frames, atlas.Frame{
			Sprite: atlas.Sprite{
				Name:         name,
				Width:        f.Frame.W,
				Height:       f.Frame.H,
				SourceWidth:  f.SourceSize.W,
				SourceHeight: f.SourceSize.H,
				OffsetX:      f.SpriteSourceSize.X,
				OffsetY:      f.SpriteSourceSize.Y,
			},
			X:       f.Frame.X,
			Y:       f.Frame.Y,
			Rotated: f.Rotated,
		})
	}
	atlas.SortFrames(a.Frames, atlas.SortByName)
	return a, doc.Meta.Image, nil
}

package export

import (
	"encoding/json"

	"atlaspack/atlas"
)

type phaserTexture struct {
	Image  string  `json:"image"`
	Format string  `json:"format"`
	Size   size    `json:"size"`
	Scale  int     `json:"scale"`
	Frames []frame `json:"frames"`
}

type phaserMeta struct {
	App     string `json:"app"`
	Version string `json:"version"`
}

type phaserDocument struct {
	Textures []phaserTexture `json:"textures"`
	Meta     phaserMeta      `json:"meta"`
}

// ExportPhaser writes the Phaser 3 multi-atlas format with a single texture.
func ExportPhaser(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	tex := phaserTexture{
		Image:  ImageName(name),
		Format: PixelFormat,
		Size:   size{W: a.Width, H: a.Height},
		Scale:  1,
		Frames: make([]frame, len(a.Frames)),
	}
	for i := range a.Frames {
		tex.Frames[i] = newFrame(&a.Frames[i])
	}
	doc := phaserDocument{
		Textures: []phaserTexture{tex},
		Meta:     phaserMeta{App: App, Version: Version},
	}
	return json.MarshalIndent(doc, "", "  ")
}

package export

import (
	"fmt"

	"atlaspack/atlas"

	"howett.net/plist"
)

// cocosFormat is the Cocos2d-x sprite frame format revision written by ExportCocos.
const cocosFormat = 3

type cocosFrame struct {
	Aliases          []string `plist:"aliases"`
	SpriteOffset     string   `plist:"spriteOffset"`
	SpriteSize       string   `plist:"spriteSize"`
	SpriteSourceSize string   `plist:"spriteSourceSize"`
	TextureRect      string   `plist:"textureRect"`
	TextureRotated   bool     `plist:"textureRotated"`
}

type cocosMetadata struct {
	Format              int    `plist:"format"`
	PixelFormat         string `plist:"pixelFormat"`
	PremultiplyAlpha    bool   `plist:"premultiplyAlpha"`
	RealTextureFileName string `plist:"realTextureFileName"`
	Size                string `plist:"size"`
	SmartUpdate         string `plist:"smartupdate"`
	TextureFileName     string `plist:"textureFileName"`
}

type cocosDocument struct {
	Frames   map[string]cocosFrame `plist:"frames"`
	Metadata cocosMetadata         `plist:"metadata"`
}

// ExportCocos writes a Cocos2d-x XML property list.
//
// spriteOffset is the distance from the centre of the untrimmed source to the centre of the
// packed region, with y pointing up.
func ExportCocos(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	doc := cocosDocument{
		Frames: make(map[string]cocosFrame, len(a.Frames)),
		Metadata: cocosMetadata{
			Format:              cocosFormat,
			PixelFormat:         PixelFormat,
			RealTextureFileName: ImageName(name),
			Size:                cocosSize(a.Width, a.Height),
			TextureFileName:     ImageName(name),
		},
	}
	for i := range a.Frames {
		f := &a.Frames[i]
		sw, sh := f.SourceSize()
		ox := float64(2*f.OffsetX+f.Width-sw) / 2
		oy := float64(sh-2*f.OffsetY-f.Height) / 2
		doc.Frames[f.Name] = cocosFrame{
			Aliases:          []string{},
			SpriteOffset:     fmt.Sprintf("{%g,%g}", ox, oy),
			SpriteSize:       cocosSize(f.Width, f.Height),
			SpriteSourceSize: cocosSize(sw, sh),
			TextureRect:      fmt.Sprintf("{{%d,%d},{%d,%d}}", f.X, f.Y, f.Width, f.Height),
			TextureRotated:   f.Rotated,
		}
	}
	return plist.MarshalIndent(doc, plist.XMLFormat, "\t")
}

func cocosSize(w, h int) string {
	return fmt.Sprintf("{%d,%d}", w, h)
}

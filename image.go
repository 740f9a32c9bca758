package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"atlaspack/atlas"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// imageExtensions 列出从输入目录读取的图像类型。
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

func isImageFile(path string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(path)))
}

// GetImageBBox 返回 alpha 大于 alphaThreshold 的像素的边界框。完全透明的图像保留完整边界。
func GetImageBBox(img image.Image, alphaThreshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false
	mark := func(x, y int) {
		found = true
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	switch src := img.(type) {
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					mark(x, y)
				}
				i += 4
			}
		}
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					mark(x, y)
				}
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if uint8(a>>8) > alphaThreshold {
					mark(x, y)
				}
			}
		}
	}
	if !found {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// readImagePaths 按文件名自然顺序列出 dir 中的图像。
func readImagePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s: %w", dir, atlas.ErrNoSprites)
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return paths, nil
}

// loadSprites 并行解码 paths。trim 为 true 时裁掉透明边缘，并记录保留区域在原图中的位置。
// 解码（及修剪）后的图像作为精灵的负载携带。
func loadSprites(paths []string, trim bool, alphaThreshold uint8) ([]atlas.Sprite, error) {
	sprites := make([]atlas.Sprite, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			src, err := imaging.Open(path)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			bounds := src.Bounds()
			s := atlas.Sprite{
				ID:           i,
				Name:         filepath.Base(path),
				Width:        bounds.Dx(),
				Height:       bounds.Dy(),
				SourceWidth:  bounds.Dx(),
				SourceHeight: bounds.Dy(),
				Payload:      src,
			}
			if trim {
				box := GetImageBBox(src, alphaThreshold)
				if box != bounds {
					s.Width, s.Height = box.Dx(), box.Dy()
					s.OffsetX, s.OffsetY = box.Min.X-bounds.Min.X, box.Min.Y-bounds.Min.Y
					s.Payload = imaging.Crop(src, box)
				}
			}
			sprites[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sprites, nil
}

// composeAtlas 将 page 的每一帧绘制到透明画布上。帧互不重叠，各工作协程写入的像素不相交。
func composeAtlas(page *atlas.PackedAtlas) (*image.NRGBA, error) {
	dst := imaging.New(page.Width, page.Height, color.NRGBA{0, 0, 0, 0})
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range page.Frames {
		f := &page.Frames[i]
		g.Go(func() error {
			src, ok := f.Payload.(image.Image)
			if !ok {
				return fmt.Errorf("frame %q carries no image", f.Name)
			}
			r := f.Rect()
			dstRect := image.Rect(r.X, r.Y, r.Right(), r.Bottom())
			draw.Draw(dst, dstRect, src, src.Bounds().Min, draw.Src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func saveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

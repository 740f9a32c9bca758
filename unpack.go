package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"atlaspack/export"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

var (
	errUnsafeName      = errors.New("frame name escapes the output directory")
	errDuplicateOutput = errors.New("frames unpack to the same file")
)

// unpackName 返回帧解包后的文件名。非 PNG 帧保留原扩展名并追加 .png（hero.gif -> hero.gif.png）。
func unpackName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return name
	}
	return name + ".png"
}

// unpack 解包图集：按 JSON Hash 元数据从图集图像中裁出每一帧，以 PNG 写入 outputDir。
// 被修剪过的帧会恢复原始尺寸的透明边距。两帧解包到同一文件时直接报错。
func unpack(metaPath, outputDir string) error {
	start := time.Now()
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return fmt.Errorf("read atlas metadata: %w", err)
	}
	page, imageName, err := export.ReadJSONHash(data)
	if err != nil {
		return fmt.Errorf("parse atlas metadata %s: %w", metaPath, err)
	}
	atlasImage, err := imaging.Open(filepath.Join(filepath.Dir(metaPath), imageName))
	if err != nil {
		return fmt.Errorf("open atlas image: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	outputs := make(map[string]string, len(page.Frames))
	for _, f := range page.Frames {
		if !filepath.IsLocal(f.Name) {
			return fmt.Errorf("%w: %q", errUnsafeName, f.Name)
		}
		key := strings.ToLower(filepath.Clean(unpackName(f.Name)))
		if other, ok := outputs[key]; ok {
			return fmt.Errorf("%w: %q and %q", errDuplicateOutput, other, f.Name)
		}
		outputs[key] = f.Name
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range page.Frames {
		f := &page.Frames[i]
		g.Go(func() error {
			r := f.Rect()
			sub := imaging.Crop(atlasImage, image.Rect(r.X, r.Y, r.Right(), r.Bottom()))
			if f.Trimmed() {
				sw, sh := f.SourceSize()
				canvas := imaging.New(sw, sh, color.NRGBA{0, 0, 0, 0})
				sub = imaging.Paste(canvas, sub, image.Pt(f.OffsetX, f.OffsetY))
			}
			outputPath := filepath.Join(outputDir, unpackName(f.Name))
			if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
				return err
			}
			return saveImage(sub, outputPath)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("unpacked %d sprites into %s in %v\n", len(page.Frames), outputDir, time.Since(start))
	return nil
}

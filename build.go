package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"atlaspack/atlas"
	"atlaspack/export"
)

type buildResult struct {
	Pages []*atlas.PackedAtlas
	Names []string
	Files []string
	Debug DebugInfo
}

func (r *buildResult) Print(w io.Writer) {
	for i, page := range r.Pages {
		fmt.Fprintf(w, "atlas %s: %dx%d, %d sprites, %.2f%% used\n",
			r.Names[i], page.Width, page.Height, len(page.Frames), page.Occupancy()*100)
	}
	for _, f := range r.Files {
		fmt.Fprintf(w, "- %s\n", f)
	}
}

// pageName 返回 n 页中第 i 页的名称。只有一页时使用图集名本身。
func pageName(name string, i, n int) string {
	if n == 1 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, i)
}

// build 加载 opts.InputDir 中的所有图像并打包，将图集图像和所选格式的元数据写入 opts.OutputDir。
func build(opts *Options) (*buildResult, error) {
	result := &buildResult{Debug: DebugInfo{IsDebug: opts.Debug}}
	start := time.Now()
	defer func() {
		result.Debug.TotalTime = time.Since(start)
	}()

	paths, err := readImagePaths(opts.InputDir)
	if err != nil {
		return nil, err
	}
	sprites, err := loadSprites(paths, opts.Settings.TrimAlpha, uint8(opts.Settings.AlphaThreshold))
	if err != nil {
		return nil, err
	}
	result.Debug.LoadTime = time.Since(start)
	slog.Debug("loaded sprites", slog.Int("count", len(sprites)), slog.String("dir", opts.InputDir))

	packStart := time.Now()
	if opts.Settings.MultiPage {
		result.Pages, err = atlas.PackPages(sprites, opts.Settings)
	} else {
		var page *atlas.PackedAtlas
		page, err = atlas.Pack(sprites, opts.Settings)
		result.Pages = []*atlas.PackedAtlas{page}
	}
	if err != nil {
		return nil, err
	}
	result.Debug.PackTime = time.Since(packStart)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	for i, page := range result.Pages {
		name := pageName(opts.Name, i, len(result.Pages))
		result.Names = append(result.Names, name)
		atlas.SortFrames(page.Frames, opts.Settings.SortMethod)

		composeStart := time.Now()
		img, err := composeAtlas(page)
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", name, err)
		}
		imagePath := filepath.Join(opts.OutputDir, export.ImageName(name))
		if err := saveImage(img, imagePath); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, imagePath)
		result.Debug.ComposeTime += time.Since(composeStart)

		exportStart := time.Now()
		for _, format := range opts.Formats {
			exporter, err := export.Lookup(format)
			if err != nil {
				return nil, err
			}
			data, err := exporter(page, name)
			if err != nil {
				return nil, fmt.Errorf("export %s as %s: %w", name, format, err)
			}
			path := filepath.Join(opts.OutputDir, format.FileName(name))
			if err := os.WriteFile(path, data, 0644); err != nil {
				return nil, err
			}
			result.Files = append(result.Files, path)
		}
		result.Debug.ExportTime += time.Since(exportStart)
	}
	return result, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"atlaspack/atlas"
	"atlaspack/export"
)

const (
	VERSION = "1.0.0"
)

type DebugInfo struct {
	IsDebug     bool
	TotalTime   time.Duration
	LoadTime    time.Duration
	PackTime    time.Duration
	ComposeTime time.Duration
	ExportTime  time.Duration
}

func (d *DebugInfo) Print(w io.Writer) {
	fmt.Fprintf(w, "image loading: %v\n", d.LoadTime)
	fmt.Fprintf(w, "packing: %v\n", d.PackTime)
	fmt.Fprintf(w, "atlas composition: %v\n", d.ComposeTime)
	fmt.Fprintf(w, "metadata export: %v\n", d.ExportTime)
	fmt.Fprintf(w, "total: %v\n", d.TotalTime)
}

type Options struct {
	UnpackPath      string          // 要解包的 JSON Hash 元数据
	InputDir        string          // 扫描精灵图像的目录
	OutputDir       string          // 图集图像和元数据的输出目录
	Name            string          // 图集基础名称
	ConfigPath      string          // TOML 或 YAML 配置文件
	WriteConfigPath string          // 将生效的配置写入此文件后退出
	Formats         []export.Format // 要输出的元数据格式
	Watch           bool            // 输入目录变化时重新构建
	Debug           bool            // 调试日志和耗时统计
	ShowVersion     bool
	Settings        atlas.Settings
}

// parseFlags 从命令行解析 Options。配置以默认值为起点，指定 -config 时由配置文件替换，
// 最后由显式设置的命令行参数覆盖。
func parseFlags(args []string, output io.Writer) (*Options, error) {
	def := atlas.DefaultSettings()
	fs := flag.NewFlagSet("atlaspack", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &Options{}
	fs.StringVar(&opts.UnpackPath, "unpack", "", "unpack the atlas described by this JSON Hash file")
	fs.StringVar(&opts.InputDir, "input", "input", "input directory")
	fs.StringVar(&opts.OutputDir, "output", "output", "output directory")
	fs.StringVar(&opts.Name, "name", "atlas", "atlas base name")
	fs.StringVar(&opts.ConfigPath, "config", "", "settings file (.toml, .yaml)")
	fs.StringVar(&opts.WriteConfigPath, "write-config", "", "write the effective settings to this file and exit")
	formats := fs.String("format", string(export.JSONHash), "comma separated metadata formats, or \"all\"")
	fs.BoolVar(&opts.Watch, "watch", false, "rebuild when the input directory changes")
	fs.BoolVar(&opts.Debug, "debug", false, "debug logging and timings")
	fs.BoolVar(&opts.ShowVersion, "version", false, "print the version and exit")

	var flagged atlas.Settings
	fs.IntVar(&flagged.MaxWidth, "width", def.MaxWidth, "maximum atlas width")
	fs.IntVar(&flagged.MaxHeight, "height", def.MaxHeight, "maximum atlas height")
	fs.IntVar(&flagged.Padding, "padding", def.Padding, "padding around every sprite")
	fs.BoolVar(&flagged.PowerOfTwo, "pow-of-two", def.PowerOfTwo, "round atlas dimensions up to powers of two")
	fs.BoolVar(&flagged.AllowRotation, "rotate", def.AllowRotation, "allow rotation (accepted, no effect)")
	fs.BoolVar(&flagged.TrimAlpha, "trim", def.TrimAlpha, "trim transparent borders")
	fs.IntVar(&flagged.AlphaThreshold, "threshold", def.AlphaThreshold, "highest alpha treated as transparent when trimming")
	fs.IntVar(&flagged.Extrude, "extrude", def.Extrude, "edge extrusion (accepted, no effect)")
	algorithm := fs.String("algorithm", string(def.Algorithm), "packing algorithm (maxrects, shelf, basic)")
	sortMethod := fs.String("sort", string(def.SortMethod), "frame order in metadata (area, name, width, height, perimeter, maxside)")
	layout := fs.String("layout", string(def.LayoutMode), "layout mode (optimal, horizontal, vertical, grid)")
	fs.BoolVar(&flagged.MultiPage, "multipage", def.MultiPage, "spill sprites that do not fit onto further atlas pages")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	flagged.Algorithm = atlas.Algorithm(*algorithm)
	flagged.SortMethod = atlas.SortMethod(*sortMethod)
	flagged.LayoutMode = atlas.LayoutMode(*layout)

	opts.Settings = def
	if opts.ConfigPath != "" {
		s, err := atlas.LoadSettings(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		opts.Settings = s
	}
	s := &opts.Settings
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			s.MaxWidth = flagged.MaxWidth
		case "height":
			s.MaxHeight = flagged.MaxHeight
		case "padding":
			s.Padding = flagged.Padding
		case "pow-of-two":
			s.PowerOfTwo = flagged.PowerOfTwo
		case "rotate":
			s.AllowRotation = flagged.AllowRotation
		case "trim":
			s.TrimAlpha = flagged.TrimAlpha
		case "threshold":
			s.AlphaThreshold = flagged.AlphaThreshold
		case "extrude":
			s.Extrude = flagged.Extrude
		case "algorithm":
			s.Algorithm = flagged.Algorithm
		case "sort":
			s.SortMethod = flagged.SortMethod
		case "layout":
			s.LayoutMode = flagged.LayoutMode
		case "multipage":
			s.MultiPage = flagged.MultiPage
		}
	})
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var err error
	if opts.Formats, err = export.ParseFormats(*formats); err != nil {
		return nil, err
	}
	if opts.Name == "" || opts.Name != filepath.Base(opts.Name) {
		return nil, fmt.Errorf("invalid atlas name %q", opts.Name)
	}
	return opts, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, opts *Options, logger *slog.Logger) error {
	if opts.ShowVersion {
		fmt.Printf("atlaspack %s\n", VERSION)
		return nil
	}
	if opts.WriteConfigPath != "" {
		if err := atlas.WriteSettings(opts.WriteConfigPath, opts.Settings); err != nil {
			return err
		}
		fmt.Printf("settings written to %s\n", opts.WriteConfigPath)
		return nil
	}
	if opts.UnpackPath != "" {
		return unpack(opts.UnpackPath, opts.OutputDir)
	}
	if opts.Watch {
		return watch(ctx, opts, logger)
	}
	result, err := build(opts)
	if err != nil {
		return err
	}
	result.Print(os.Stdout)
	if opts.Debug {
		result.Debug.Print(os.Stdout)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, opts.Debug)
	slog.SetDefault(logger)
	atlas.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("atlaspack failed", slog.Any("err", err))
		var noFit *atlas.NoFitError
		if errors.As(err, &noFit) {
			fmt.Fprintln(os.Stderr, "hint: try -multipage, a larger -width/-height or a smaller -padding")
		}
		stop()
		os.Exit(1)
	}
}

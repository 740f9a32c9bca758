package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// rebuildDelay 是输入目录保持无变化多久后才开始重新构建。
const rebuildDelay = 200 * time.Millisecond

// Watcher 报告某个目录中发生变化的图像文件。
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isImageFile(event.Name) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// watch 先构建一次，之后输入目录每出现一批变化就重新构建，直到 ctx 被取消。
// 重新构建失败时记录日志并继续监听。
func watch(ctx context.Context, opts *Options, logger *slog.Logger) error {
	in, err := filepath.Abs(opts.InputDir)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("watch: input and output directory must differ (%s)", in)
	}

	w, err := NewWatcher(opts.InputDir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.InputDir, err)
	}
	defer w.Close()

	rebuild := func() {
		result, err := build(opts)
		if err != nil {
			logger.Error("build failed", slog.Any("err", err))
			return
		}
		result.Print(os.Stdout)
	}
	rebuild()
	logger.Info("watching for changes", slog.String("dir", opts.InputDir))

	timer := time.NewTimer(rebuildDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case name := <-w.Events:
			logger.Debug("input changed", slog.String("file", name))
			timer.Reset(rebuildDelay)
		case err := <-w.Errors:
			logger.Warn("watch error", slog.Any("err", err))
		case <-timer.C:
			rebuild()
		}
	}
}

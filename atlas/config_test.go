package atlas

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsTOML(t *testing.T) {
	path := writeFile(t, "atlas.toml", `
max_width = 1024
max_height = 512
padding = 2
power_of_two = true
trim_alpha = true
alpha_threshold = 8
sort_method = "name"
`)
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultSettings()
	want.MaxWidth = 1024
	want.MaxHeight = 512
	want.Padding = 2
	want.PowerOfTwo = true
	want.TrimAlpha = true
	want.AlphaThreshold = 8
	want.SortMethod = SortByName
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadSettingsYAML(t *testing.T) {
	path := writeFile(t, "atlas.yml", `
max_width: 256
max_height: 256
algorithm: shelf
layout_mode: grid
multi_page: true
`)
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultSettings()
	want.MaxWidth = 256
	want.MaxHeight = 256
	want.Algorithm = AlgorithmShelf
	want.LayoutMode = LayoutGrid
	want.MultiPage = true
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadSettingsEmptyYAML(t *testing.T) {
	got, err := LoadSettings(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
		want                error
		contains            string
	}{
		{"unknown toml key", "a.toml", "max_widht = 3\n", ErrInvalidSettings, "max_widht"},
		{"unknown yaml key", "a.yaml", "paddng: 3\n", nil, "paddng"},
		{"invalid value", "a.toml", "padding = -4\n", ErrInvalidSettings, "padding"},
		{"bad enum", "a.yaml", "sort_method: random\n", ErrInvalidSettings, "random"},
		{"bad extension", "a.json", "{}", nil, "unsupported"},
		{"malformed toml", "a.toml", "max_width = \n", nil, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("LoadSettings succeeded, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %q, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWriteSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.MaxWidth = 300
	s.Padding = 1
	s.PowerOfTwo = true
	s.Extrude = 2
	s.SortMethod = SortByHeight
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteSettings(path, s); err != nil {
				t.Fatal(err)
			}
			got, err := LoadSettings(path)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, s) {
				t.Errorf("got %+v, want %+v", got, s)
			}
		})
	}
	if err := WriteSettings(filepath.Join(t.TempDir(), "out.ini"), s); err == nil {
		t.Error("WriteSettings accepted an .ini file")
	}
}

package atlas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSettings reads settings from a TOML (.toml) or YAML (.yaml, .yml) file. Keys missing from
// the file keep their DefaultSettings value; unknown keys are an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, &s)
		if err != nil {
			return Settings{}, fmt.Errorf("atlas: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Settings{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Settings{}, fmt.Errorf("atlas: load %s: %w", path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("atlas: decode %s: %w", path, err)
		}
	default:
		return Settings{}, fmt.Errorf("atlas: unsupported settings file extension %q", ext)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Debug("loaded settings", slog.String("path", path))
	return s, nil
}

// WriteSettings stores s as TOML or YAML, chosen by the extension of path.
func WriteSettings(path string, s Settings) error {
	var buffer bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.NewEncoder(&buffer).Encode(s); err != nil {
			return fmt.Errorf("atlas: encode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buffer)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("atlas: encode %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("atlas: encode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("atlas: unsupported settings file extension %q", ext)
	}
	return os.WriteFile(path, buffer.Bytes(), 0644)
}

package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load overlays the file at path, read through fs, on top of Default(). An
// empty path returns the defaults unchanged.
func Load(fs ports.FileSystem, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigNotFoundError(path)
		}
		return nil, err
	}

	if err := Decode(cfg, path, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays data onto cfg, choosing the format from path's extension.
func Decode(cfg *Config, path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return NewConfigParseError(path, "YAML", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return NewConfigParseError(path, "TOML", err)
		}
	default:
		return NewConfigFormatError(path)
	}
	return nil
}

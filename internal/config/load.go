package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads the configuration file at path, applies VIEWCORE_*
// environment overrides and validates the result. Keys missing from the
// file keep their defaults. An empty path loads defaults plus environment.
func Load(path string) (Options, error) {
	return load(path, NewEnvLoader(EnvPrefix))
}

func load(path string, env *EnvLoader) (Options, error) {
	data := make(map[string]any)
	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return Options{}, err
		}
		data = file
	}
	data = deepMerge(data, env.Load())

	opts, err := decode(data)
	if err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// readFile parses a TOML or YAML file into a map.
func readFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return parseTOML(path, raw)
	case ".yaml", ".yml":
		return parseYAML(path, raw)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func parseTOML(source string, raw []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(raw, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}

func parseYAML(source string, raw []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// decode lays the merged map over Default. The map is re-encoded as TOML
// so both file formats share one strict decoder.
func decode(data map[string]any) (Options, error) {
	opts := Default()
	if editor, ok := data["editor"].(map[string]any); ok {
		if _, ok := editor["autoClosingPairs"]; ok {
			opts.Editor.AutoClosingPairs = nil
		}
	}

	raw, err := toml.Marshal(data)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	return opts, nil
}

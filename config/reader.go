package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.ccpose.dev/ccpose/logging"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	// defaults alone always validate
	if err := cfg.Ensure(); err != nil {
		panic(err)
	}
	return cfg
}

// Read reads a config from the given file, expanding ${VAR} references from the environment.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
// Unknown keys are rejected.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}

	cfg := &Config{ConfigFilePath: originalPath}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	if err := cfg.Ensure(); err != nil {
		return nil, err
	}
	logger.Debugw("read config", "path", originalPath, "displays", len(cfg.Displays))
	return cfg, nil
}

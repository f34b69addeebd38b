// Package file loads pipeline settings from a TOML config file.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// LoadSettings reads the TOML config at path, overlaying it on the defaults.
// A missing file is not an error: the defaults run fine on their own. Any
// value the file does set wins over the default.
func LoadSettings(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("config %s not found, using defaults", path)
			if verr := settings.Validate(); verr != nil {
				return settings, verr
			}
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, path, err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("config %s: %w", path, err)
	}

	logger.Debug("loaded config from %s", path)
	return settings, nil
}

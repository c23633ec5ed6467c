package doctor

import (
	"context"
	"os"

	"github.com/colonyops/maple/internal/core/config"
)

// ConfigCheck validates the loaded configuration and the file it came from.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
		result.Items = append(result.Items, warn("config file", "no path given, using defaults"))
	case os.IsNotExist(err):
		result.Items = append(result.Items, warn("config file", "not found, using defaults"))
	case err != nil:
		result.Items = append(result.Items, fail("config file", err.Error()))
	default:
		result.Items = append(result.Items, pass("config file", c.path))
	}

	if err := c.cfg.ValidateDeep(c.path); err != nil {
		result.Items = append(result.Items, fail("values", err.Error()))
	} else {
		result.Items = append(result.Items, pass("values", "theme "+c.cfg.Theme))
	}

	return result
}

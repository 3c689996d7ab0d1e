package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/config"
)

// ConfigCheck verifies the loaded configuration file and its tracking
// category names.
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

	if c.path == "" {
		result.Items = append(result.Items, CheckItem{
			Label:  "config file",
			Status: StatusWarn,
			Detail: "no path set, built-in defaults in use",
		})
	} else if _, err := os.Stat(c.path); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "config file",
			Status: StatusWarn,
			Detail: c.path + " not found, built-in defaults in use",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "config file",
			Status: StatusPass,
			Detail: c.path,
		})
	}

	if err := c.cfg.Validate(); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "values",
			Status: StatusFail,
			Detail: err.Error(),
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "values",
			Status: StatusPass,
		})
	}

	known := make(map[capability.Category]bool, len(capability.All))
	for _, cat := range capability.All {
		known[cat] = true
	}
	unknown := 0
	for _, name := range c.cfg.Tracking {
		if !known[capability.Category(name)] {
			unknown++
			result.Items = append(result.Items, CheckItem{
				Label:  "tracking",
				Status: StatusFail,
				Detail: fmt.Sprintf("unknown category %q", name),
			})
		}
	}
	if unknown == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "tracking",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d enabled", len(c.cfg.Tracking)),
		})
	}

	return result
}

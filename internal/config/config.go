// Package config loads runtime settings from the environment.
//
// Settings only shape the diagnostic stream (the framed step blocks on
// stderr); the tool's wire behavior is not configurable.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Settings holds the runtime switches read once at startup.
type Settings struct {
	// DisableStepLogging suppresses the framed step blocks.
	DisableStepLogging bool `mapstructure:"disable_step_logging"`
	// NoColor disables colored labels in the step frames.
	NoColor bool `mapstructure:"no_color"`
}

// Load reads settings from STEPWISE_* environment variables
// (STEPWISE_DISABLE_STEP_LOGGING, STEPWISE_NO_COLOR). The standard
// NO_COLOR variable is honored as well. Missing or malformed values
// fall back to defaults; Load never fails startup.
func Load() Settings {
	v := viper.New()
	v.SetEnvPrefix("stepwise")
	v.AutomaticEnv()

	v.SetDefault("disable_step_logging", false)
	v.SetDefault("no_color", false)

	s := Settings{
		DisableStepLogging: v.GetBool("disable_step_logging"),
		NoColor:            v.GetBool("no_color"),
	}

	if os.Getenv("NO_COLOR") != "" {
		s.NoColor = true
	}

	return s
}

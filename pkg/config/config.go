package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "roadkill"

// Settings is the decoded application configuration
type Settings struct {
	LogLevel  string          `mapstructure:"logLevel"`
	Log       LogConfig       `mapstructure:"log"`
	Controls  ControlsConfig  `mapstructure:"controls"`
	Screen    ScreenConfig    `mapstructure:"screen"`
	Storage   PathConfig      `mapstructure:"storage"`
	Status    PathConfig      `mapstructure:"status"`
	Cars      PathConfig      `mapstructure:"cars"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Game      GameConfig      `mapstructure:"game"`
}

// LogConfig holds logger output settings
type LogConfig struct {
	Pretty bool `mapstructure:"pretty"`
}

// ControlsConfig holds key names for each logical action
type ControlsConfig struct {
	Forward  string `mapstructure:"forward"`
	Backward string `mapstructure:"backward"`
	Fire     string `mapstructure:"fire"`
}

// ScreenConfig is the logical screen size
type ScreenConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// PathConfig points at a file on disk
type PathConfig struct {
	Path string `mapstructure:"path"`
}

// TelemetryConfig toggles metric collection
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// GameConfig holds gameplay tunables
type GameConfig struct {
	StartLevel     int     `mapstructure:"startLevel"`
	FuelGraceTicks int     `mapstructure:"fuelGraceTicks"`
	EasterEggX     float64 `mapstructure:"easterEggX"`
	HeavyEvery     int     `mapstructure:"heavyEvery"` // every n-th campaign zombie is heavy
	Seed           int64   `mapstructure:"seed"`       // 0 picks a random seed
	Profile        string  `mapstructure:"profile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("log.pretty", true)

	controls := input.DefaultControls()
	v.SetDefault("controls.forward", controls[input.Forward])
	v.SetDefault("controls.backward", controls[input.Backward])
	v.SetDefault("controls.fire", controls[input.Fire])

	v.SetDefault("screen.width", 1024)
	v.SetDefault("screen.height", 600)

	v.SetDefault("storage.path", "roadkill.db")
	v.SetDefault("status.path", "upgrades_status.json")
	v.SetDefault("cars.path", "cars.json")

	v.SetDefault("telemetry.enabled", false)

	v.SetDefault("game.startLevel", 1)
	v.SetDefault("game.fuelGraceTicks", 300)
	v.SetDefault("game.easterEggX", -2000.0)
	v.SetDefault("game.heavyEvery", 4)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.profile", "player")
}

// Load reads roadkill.json from configDir on top of the defaults. A missing
// file is not an error. ROADKILL_* environment variables override both.
func Load(configDir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("ROADKILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.InputControls().Validate(); err != nil {
		return nil, fmt.Errorf("invalid controls: %w", err)
	}
	return &s, nil
}

// InputControls converts the configured key names to a control mapping
func (s *Settings) InputControls() input.Controls {
	return input.Controls{
		input.Forward:  s.Controls.Forward,
		input.Backward: s.Controls.Backward,
		input.Fire:     s.Controls.Fire,
	}
}

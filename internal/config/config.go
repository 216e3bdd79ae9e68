// Package config resolves the renderer's YAML configuration file into a
// validated Config, rejecting anything it does not recognize.
package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the fully resolved, validated set of render parameters.
type Config struct {
	Name                         string  `mapstructure:"name"`
	Width                        uint    `mapstructure:"width"`
	Height                       uint    `mapstructure:"height"`
	NumberOfSamples              uint    `mapstructure:"numberOfSamples"`
	NumberOfShadowRays           uint    `mapstructure:"numberOfShadowRays"`
	ProbabilityNotToTerminateRay float64 `mapstructure:"probabilityNotToTerminateRay"`
	Scene                        string  `mapstructure:"scene"`
	NumWorkers                   int     `mapstructure:"numWorkers"`
	PixelSizeX                   float64 `mapstructure:"pixelSizeX"`
	PixelSizeY                   float64 `mapstructure:"pixelSizeY"`
	ViewPlaneDistance            float64 `mapstructure:"viewPlaneDistance"`
	CameraX                      float64 `mapstructure:"cameraX"`
	CameraY                      float64 `mapstructure:"cameraY"`
	CameraZ                      float64 `mapstructure:"cameraZ"`
	LiveProgress                 bool    `mapstructure:"liveProgress"`
	LiveProgressAddr             string  `mapstructure:"liveProgressAddr"`
	MeshPath                     string  `mapstructure:"meshPath"`
}

// Error wraps a configuration failure: a missing file, an unrecognized
// key, or a value outside its valid range.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %v", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// String renders the resolved Config back to YAML, for logging the
// effective settings a render actually ran with.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<unencodable config: %v>", err)
	}
	return string(out)
}

// Load reads path (YAML) into a Config. Any key not present in Config's
// mapstructure tags is rejected, as is any out-of-range value.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, &Error{Cause: fmt.Errorf("reading %q: %w", path, err)}
	}

	var cfg Config
	decodeHook := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
	})
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return Config{}, &Error{Cause: fmt.Errorf("decoding %q: %w", path, err)}
	}

	if err := validate(cfg); err != nil {
		return Config{}, &Error{Cause: err}
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if cfg.NumberOfSamples < 1 {
		return fmt.Errorf("numberOfSamples must be at least 1")
	}
	if cfg.ProbabilityNotToTerminateRay <= 0 || cfg.ProbabilityNotToTerminateRay >= 1 {
		return fmt.Errorf("probabilityNotToTerminateRay must lie strictly between 0 and 1, got %f", cfg.ProbabilityNotToTerminateRay)
	}
	if cfg.PixelSizeX <= 0 || cfg.PixelSizeY <= 0 {
		return fmt.Errorf("pixelSizeX and pixelSizeY must be positive")
	}
	if cfg.ViewPlaneDistance <= 0 {
		return fmt.Errorf("viewPlaneDistance must be positive")
	}
	if cfg.Scene == "" {
		return fmt.Errorf("scene must be set")
	}
	if cfg.Scene == "mesh" && cfg.MeshPath == "" {
		return fmt.Errorf("meshPath must be set when scene is \"mesh\"")
	}
	return nil
}

// Package config loads the shared session configuration. Sender and
// receiver must run with identical modem parameters; keeping them in
// one file is how the two halves stay in agreement.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tonelink/pkg/modem"
)

type Config struct {
	Modem   ModemConfig   `yaml:"modem"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModemConfig mirrors modem.Params plus the frame repetition factor.
type ModemConfig struct {
	ZeroFreq    float64 `yaml:"f0"`
	OneFreq     float64 `yaml:"f1"`
	BitDuration float64 `yaml:"bit_duration"` // seconds
	SampleRate  float64 `yaml:"sample_rate"`
	Repeat      int     `yaml:"repeat"`
}

type AudioConfig struct {
	Device   string `yaml:"device"`    // ASIO device name
	BitDepth int    `yaml:"bit_depth"` // WAV sample width, 16 or 32
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default is the parameter set of the reference deployment.
func Default() Config {
	return Config{
		Modem: ModemConfig{
			ZeroFreq:    17000,
			OneFreq:     18500,
			BitDuration: 0.08,
			SampleRate:  44100,
			Repeat:      1,
		},
		Audio: AudioConfig{
			Device:   "ASIO4ALL v2",
			BitDepth: 16,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults; unset fields keep their default
// values. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unusable values before any signal processing.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("modem: %w", err)
	}
	if c.Modem.Repeat < 1 {
		return fmt.Errorf("modem: repeat %d must be at least 1", c.Modem.Repeat)
	}
	if c.Audio.BitDepth != 16 && c.Audio.BitDepth != 32 {
		return fmt.Errorf("audio: bit depth %d must be 16 or 32", c.Audio.BitDepth)
	}
	return nil
}

// Params is the modem view of the configuration.
func (c Config) Params() modem.Params {
	return modem.Params{
		ZeroFreq:    c.Modem.ZeroFreq,
		OneFreq:     c.Modem.OneFreq,
		BitDuration: c.Modem.BitDuration,
		SampleRate:  c.Modem.SampleRate,
	}
}

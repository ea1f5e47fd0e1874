// Package virtual is an in-process pipeline handler backed by simulated
// sensors. It implements the full pipeline contract — configuration
// negotiation, fd-backed buffer pools, ordered asynchronous completion —
// without hardware, and is the backend for tests and the demo binaries.
package virtual

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SizeConfig is a width/height pair in the catalog file.
type SizeConfig struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// FormatConfig lists the discrete sizes one pixel format supports.
type FormatConfig struct {
	FourCC string       `json:"fourcc"`
	Sizes  []SizeConfig `json:"sizes"`
}

// SensorConfig describes one simulated sensor. Optional fields fall back to
// the package defaults when nil.
type SensorConfig struct {
	ID       string  `json:"id"`
	Model    string  `json:"model"`
	Location *string `json:"location,omitempty"` // front, back or external
	Rotation *int32  `json:"rotation,omitempty"`

	PixelArraySize *SizeConfig    `json:"pixel_array_size,omitempty"`
	Formats        []FormatConfig `json:"formats"`

	MaxStreams    *int    `json:"max_streams,omitempty"`
	MinExposureUs *int32  `json:"min_exposure_us,omitempty"`
	MaxExposureUs *int32  `json:"max_exposure_us,omitempty"`
	MaxGain       *string `json:"max_gain,omitempty"` // decimal, e.g. "16.0"

	// FrameInterval is the simulated exposure duration per frame, as a
	// duration string like "1ms".
	FrameInterval *string `json:"frame_interval,omitempty"`
}

// Config is the root of the virtual pipeline's camera catalog.
type Config struct {
	Cameras []SensorConfig `json:"cameras"`
}

// Catalog defaults applied when a sensor leaves the optional fields unset.
const (
	defaultMaxStreams    = 4
	defaultMinExposureUs = int32(100)
	defaultMaxExposureUs = int32(66666)
	defaultFrameInterval = time.Millisecond
)

func ptrString(v string) *string { return &v }
func ptrInt32(v int32) *int32    { return &v }

// DefaultConfig returns the built-in catalog: a single high-resolution
// rolling-shutter sensor modelled on a 12MP module.
func DefaultConfig() *Config {
	ladder := []SizeConfig{
		{640, 480},
		{1280, 720},
		{1920, 1080},
		{2028, 1520},
		{4056, 3040},
	}
	return &Config{
		Cameras: []SensorConfig{
			{
				ID:             "/base/soc/i2c0mux/i2c@1/imx477@1a",
				Model:          "imx477",
				Location:       ptrString("back"),
				Rotation:       ptrInt32(0),
				PixelArraySize: &SizeConfig{4056, 3040},
				Formats: []FormatConfig{
					{FourCC: "NV12", Sizes: ladder},
					{FourCC: "YUYV", Sizes: ladder},
					{FourCC: "MJPG", Sizes: ladder},
					{FourCC: "RG10", Sizes: []SizeConfig{{2028, 1520}, {4056, 3040}}},
				},
			},
		},
	}
}

// LoadConfig reads a catalog from a JSON file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Cameras) == 0 {
		return fmt.Errorf("catalog lists no cameras")
	}
	seen := map[string]bool{}
	for i, sensor := range c.Cameras {
		if sensor.ID == "" {
			return fmt.Errorf("camera %d has no id", i)
		}
		if seen[sensor.ID] {
			return fmt.Errorf("duplicate camera id %q", sensor.ID)
		}
		seen[sensor.ID] = true
		if len(sensor.Formats) == 0 {
			return fmt.Errorf("camera %q lists no formats", sensor.ID)
		}
		for _, f := range sensor.Formats {
			if len(f.FourCC) != 4 {
				return fmt.Errorf("camera %q: bad fourcc %q", sensor.ID, f.FourCC)
			}
			if len(f.Sizes) == 0 {
				return fmt.Errorf("camera %q: format %s lists no sizes", sensor.ID, f.FourCC)
			}
		}
		if sensor.FrameInterval != nil {
			if _, err := time.ParseDuration(*sensor.FrameInterval); err != nil {
				return fmt.Errorf("camera %q: bad frame_interval: %w", sensor.ID, err)
			}
		}
	}
	return nil
}

func (s *SensorConfig) maxStreams() int {
	if s.MaxStreams != nil {
		return *s.MaxStreams
	}
	return defaultMaxStreams
}

func (s *SensorConfig) exposureRange() (int32, int32) {
	lo, hi := defaultMinExposureUs, defaultMaxExposureUs
	if s.MinExposureUs != nil {
		lo = *s.MinExposureUs
	}
	if s.MaxExposureUs != nil {
		hi = *s.MaxExposureUs
	}
	return lo, hi
}

func (s *SensorConfig) maxGain() float32 {
	if s.MaxGain != nil {
		var g float64
		if _, err := fmt.Sscanf(*s.MaxGain, "%g", &g); err == nil && g >= 1 {
			return float32(g)
		}
	}
	return 16.0
}

func (s *SensorConfig) frameInterval() time.Duration {
	if s.FrameInterval != nil {
		if d, err := time.ParseDuration(*s.FrameInterval); err == nil {
			return d
		}
	}
	return defaultFrameInterval
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DeviceType represents the model of a control surface
type DeviceType string

const (
	DeviceTypeLaunchpad     DeviceType = "launchpad-mini-mk3"    // grid controller
	DeviceTypeLaunchControl DeviceType = "launch-control-xl-mk2" // knob/mixer controller
)

// maxTemplate mirrors the Launch Control XL template range
const maxTemplate = 15

// DeviceConfig holds configuration for a single control surface
type DeviceConfig struct {
	ID   string     `yaml:"id"`   // Unique identifier
	Name string     `yaml:"name"` // User-friendly name
	Type DeviceType `yaml:"type"`
	// Port overrides the default port-name substring of the device type
	Port string `yaml:"port,omitempty"`
	// Template selects the LED template (launch control only)
	Template uint8 `yaml:"template,omitempty"`
}

// NewDeviceConfig creates a new device config with a generated ID
func NewDeviceConfig(deviceType DeviceType) DeviceConfig {
	return DeviceConfig{
		ID:   uuid.New().String(),
		Name: "New Device",
		Type: deviceType,
	}
}

// Validate checks the device type and its type-specific fields
func (d DeviceConfig) Validate() error {
	switch d.Type {
	case DeviceTypeLaunchpad:
		if d.Template != 0 {
			return fmt.Errorf("device %q: template is only supported by %s", d.Name, DeviceTypeLaunchControl)
		}
	case DeviceTypeLaunchControl:
		if d.Template > maxTemplate {
			return fmt.Errorf("device %q: template %d out of range 0..%d", d.Name, d.Template, maxTemplate)
		}
	default:
		return fmt.Errorf("device %q: unknown type %q", d.Name, d.Type)
	}
	return nil
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // stdout, stderr
}

// Config holds application configuration
type Config struct {
	Logging LoggingConfig  `yaml:"logging"`
	Devices []DeviceConfig `yaml:"devices"`

	path string
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Devices: []DeviceConfig{},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "tindrivers"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path, returning defaults if not found
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Ensure slices are not nil
	if cfg.Devices == nil {
		cfg.Devices = []DeviceConfig{}
	}

	// Hand-written entries may omit the ID
	for i := range cfg.Devices {
		if cfg.Devices[i].ID == "" {
			cfg.Devices[i].ID = uuid.New().String()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every device entry
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Devices))
	for _, d := range c.Devices {
		if d.ID != "" && seen[d.ID] {
			return fmt.Errorf("duplicate device id %q", d.ID)
		}
		seen[d.ID] = true
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to the file it was loaded from, or to the
// default path
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Device returns a device by ID, or nil if not found
func (c *Config) Device(id string) *DeviceConfig {
	for i := range c.Devices {
		if c.Devices[i].ID == id {
			return &c.Devices[i]
		}
	}
	return nil
}

// Lookup returns the device whose ID or name matches key, or the first device
// when key is empty.
func (c *Config) Lookup(key string) (*DeviceConfig, error) {
	if key == "" {
		if len(c.Devices) == 0 {
			return nil, errors.New("no devices configured")
		}
		return &c.Devices[0], nil
	}
	if d := c.Device(key); d != nil {
		return d, nil
	}
	for i := range c.Devices {
		if c.Devices[i].Name == key {
			return &c.Devices[i], nil
		}
	}
	return nil, fmt.Errorf("device %q not configured", key)
}

// AddDevice validates device and adds it to the config
func (c *Config) AddDevice(device DeviceConfig) error {
	if err := device.Validate(); err != nil {
		return err
	}
	if c.Device(device.ID) != nil {
		return fmt.Errorf("duplicate device id %q", device.ID)
	}
	c.Devices = append(c.Devices, device)
	return nil
}

// RemoveDevice removes a device by ID and reports whether it was present
func (c *Config) RemoveDevice(id string) bool {
	for i, d := range c.Devices {
		if d.ID == id {
			c.Devices = append(c.Devices[:i], c.Devices[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateDevice validates device and replaces the entry with the same ID
func (c *Config) UpdateDevice(device DeviceConfig) error {
	if err := device.Validate(); err != nil {
		return err
	}
	existing := c.Device(device.ID)
	if existing == nil {
		return fmt.Errorf("device %q not configured", device.ID)
	}
	*existing = device
	return nil
}

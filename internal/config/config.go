package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig           `yaml:"display"`
	PlayArea PlayAreaConfig          `yaml:"play_area"`
	Enemies  EnemySpawnConfig        `yaml:"enemies"`
	Hero     HeroConfig              `yaml:"hero"`
	Weapons  map[string]WeaponConfig `yaml:"weapons"`
	PowerUps PowerUpConfig           `yaml:"power_ups"`
	Audio    AudioConfig             `yaml:"audio"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
	Background   string `yaml:"background"`
}

type PlayAreaConfig struct {
	// Margin kept between random waypoints and the screen edge
	SpawnPadding float64 `yaml:"spawn_padding"`
}

type EnemySpawnConfig struct {
	DefaultLegDuration float64  `yaml:"default_leg_duration"` // seconds
	ShowDamageDuration float64  `yaml:"show_damage_duration"` // seconds
	DamageColor        string   `yaml:"damage_color"`
	SpawnInterval      float64  `yaml:"spawn_interval"` // seconds
	MaxActive          int      `yaml:"max_active"`
	SpawnKeys          []string `yaml:"spawn_keys"`
}

type HeroConfig struct {
	YOffset    float64 `yaml:"y_offset"` // distance from the bottom edge
	SweepSpeed float64 `yaml:"sweep_speed"`
	Weapon     string  `yaml:"weapon"`
	Size       float64 `yaml:"size"`
	Color      string  `yaml:"color"`
}

type WeaponConfig struct {
	DamageOnHit     float64 `yaml:"damage_on_hit"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	FireDelay       float64 `yaml:"fire_delay"` // seconds between shots
	ProjectileSize  float64 `yaml:"projectile_size"`
	Color           string  `yaml:"color"`
}

// PowerUpConfig describes the pickups dropped by destroyed enemies. Each
// pickup switches the hero to the next weapon in name order.
type PowerUpConfig struct {
	FallSpeed float64 `yaml:"fall_speed"`
	Size      float64 `yaml:"size"`
	Color     string  `yaml:"color"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// LoadConfig loads the configuration from config.yaml
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML config data
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate checks values that would break the simulation
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("display: screen size must be positive, got %dx%d",
			c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.PlayArea.SpawnPadding < 0 {
		return fmt.Errorf("play_area: spawn_padding must not be negative")
	}
	if c.Enemies.DefaultLegDuration < 0 {
		return fmt.Errorf("enemies: default_leg_duration must not be negative")
	}
	for name, w := range c.Weapons {
		if w.DamageOnHit <= 0 {
			return fmt.Errorf("weapon %q: damage_on_hit must be positive, got %v", name, w.DamageOnHit)
		}
	}
	if c.Hero.Weapon != "" {
		if _, ok := c.Weapons[c.Hero.Weapon]; !ok {
			return fmt.Errorf("hero: unknown weapon %q", c.Hero.Weapon)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTPS() int {
	if c.Display.TPS <= 0 {
		return 60
	}
	return c.Display.TPS
}

// GetLegDuration returns the default enemy leg duration, 4s when unset
func (c *Config) GetLegDuration() float64 {
	if c.Enemies.DefaultLegDuration <= 0 {
		return 4
	}
	return c.Enemies.DefaultLegDuration
}

func (c *Config) GetShowDamageDuration() float64 {
	if c.Enemies.ShowDamageDuration <= 0 {
		return 0.1
	}
	return c.Enemies.ShowDamageDuration
}

func (c *Config) GetDamageColor() color.RGBA {
	return ColorByName(c.Enemies.DamageColor, colornames.Red)
}

func (c *Config) GetPowerUpFallSpeed() float64 {
	if c.PowerUps.FallSpeed <= 0 {
		return 120
	}
	return c.PowerUps.FallSpeed
}

func (c *Config) GetPowerUpSize() float64 {
	if c.PowerUps.Size <= 0 {
		return 14
	}
	return c.PowerUps.Size
}

// NextWeapon returns the weapon after current in name order, wrapping around.
// An unknown current name yields the first weapon.
func (c *Config) NextWeapon(current string) string {
	keys := c.GetWeaponKeys()
	if len(keys) == 0 {
		return current
	}
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// GetWeaponConfig returns the named weapon, falling back to the hero's weapon
func (c *Config) GetWeaponConfig(name string) *WeaponConfig {
	if w, ok := c.Weapons[name]; ok {
		return &w
	}
	if w, ok := c.Weapons[c.Hero.Weapon]; ok {
		return &w
	}
	// Ultimate fallback - a basic blaster
	return &WeaponConfig{
		DamageOnHit:     1,
		ProjectileSpeed: 600,
		FireDelay:       0.2,
		ProjectileSize:  6,
	}
}

// GetWeaponKeys returns all weapon names in sorted order
func (c *Config) GetWeaponKeys() []string {
	keys := make([]string, 0, len(c.Weapons))
	for k := range c.Weapons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ColorByName resolves an SVG color name, returning fallback for unknown or
// empty names.
func ColorByName(name string, fallback color.RGBA) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return fallback
}

package enemy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// PartDefinition holds the configuration for one part from YAML
type PartDefinition struct {
	Name        string     `yaml:"name"`
	Health      float64    `yaml:"health"`
	ProtectedBy []string   `yaml:"protected_by"`
	Offset      [2]float64 `yaml:"offset"`
	Size        [2]float64 `yaml:"size"` // zero size means no visual
	Color       string     `yaml:"color"`
}

// EnemyDefinition holds the configuration for an enemy type from YAML
type EnemyDefinition struct {
	Name              string           `yaml:"name"`
	Score             int              `yaml:"score"`
	LegDuration       float64          `yaml:"leg_duration"` // 0 uses the game default
	PowerUpDropChance float64          `yaml:"power_up_drop_chance"`
	Parts             []PartDefinition `yaml:"parts"`
}

// EnemyYAMLConfig holds the complete enemy configuration from YAML
type EnemyYAMLConfig struct {
	Enemies map[string]EnemyDefinition `yaml:"enemies"`
}

// PartSpecs converts the part list into assembly specs
func (d *EnemyDefinition) PartSpecs() []PartSpec {
	specs := make([]PartSpec, len(d.Parts))
	for i, p := range d.Parts {
		specs[i] = PartSpec{
			Name:        p.Name,
			Health:      p.Health,
			ProtectedBy: p.ProtectedBy,
		}
	}
	return specs
}

// HasVisual reports whether the part gets a scene node
func (p *PartDefinition) HasVisual() bool {
	return p.Size[0] > 0 && p.Size[1] > 0
}

// validateEnemyConfiguration builds every definition once so bad protection
// graphs fail at load time instead of mid-game.
func validateEnemyConfiguration(config *EnemyYAMLConfig) error {
	var problems []string

	for _, key := range config.Keys() {
		def := config.Enemies[key]
		if def.LegDuration < 0 {
			problems = append(problems, fmt.Sprintf("%s: leg_duration must not be negative", key))
		}
		if def.PowerUpDropChance < 0 || def.PowerUpDropChance > 1 {
			problems = append(problems, fmt.Sprintf("%s: power_up_drop_chance must be within [0,1]", key))
		}
		if _, err := Build(def.PartSpecs()); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
		}
		for _, p := range def.Parts {
			if p.Color == "" {
				continue
			}
			if _, ok := colornames.Map[p.Color]; !ok {
				problems = append(problems, fmt.Sprintf("%s: part %q has unknown color %q", key, p.Name, p.Color))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("enemy configuration errors:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// ParseEnemyConfig decodes and validates enemy YAML data
func ParseEnemyConfig(data []byte) (*EnemyYAMLConfig, error) {
	var config EnemyYAMLConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy config YAML: %w", err)
	}
	if err := validateEnemyConfiguration(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadEnemyConfig loads enemy configuration from YAML file
func LoadEnemyConfig(filename string) (*EnemyYAMLConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy config file: %w", err)
	}

	return ParseEnemyConfig(data)
}

// MustLoadEnemyConfig loads enemy configuration and panics on error
func MustLoadEnemyConfig(filename string) *EnemyYAMLConfig {
	config, err := LoadEnemyConfig(filename)
	if err != nil {
		panic("Failed to load enemy config: " + err.Error())
	}
	return config
}

// GetEnemyByKey returns enemy definition by key
func (c *EnemyYAMLConfig) GetEnemyByKey(key string) (*EnemyDefinition, error) {
	def, exists := c.Enemies[key]
	if !exists {
		return nil, fmt.Errorf("enemy with key '%s' not found", key)
	}
	return &def, nil
}

// Keys returns all enemy keys in sorted order
func (c *EnemyYAMLConfig) Keys() []string {
	keys := make([]string, 0, len(c.Enemies))
	for k := range c.Enemies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

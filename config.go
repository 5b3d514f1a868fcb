package dynamix

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ClassConfig declares one class in a YAML config.
type ClassConfig struct {
	Name  string `yaml:"name"`
	Flags Flags  `yaml:"flags"`
}

// Config is the YAML form of a set of class definitions:
//
//	classes:
//	  - name: Person
//	    flags: {item: true, attr: true, iter: true, repr: true}
//	  - name: Tag
//	    flags: [item, repr]
//
// Unknown YAML keys are ignored, mirroring the unrecognized-flag rule, so
// configs written for newer library versions still load.
type Config struct {
	Classes []ClassConfig `yaml:"classes"`
}

// ParseConfig decodes a YAML class config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "dynamix: parse config")
	}
	return &cfg, nil
}

// LoadConfig reads and decodes a YAML class config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "dynamix: load config")
	}
	return ParseConfig(data)
}

// Define composes every class in the config. All-or-nothing: the first
// definition failure aborts with its *CompositionError and no classes are
// returned.
func (cfg *Config) Define() ([]*Class, error) {
	classes := make([]*Class, 0, len(cfg.Classes))
	for _, cc := range cfg.Classes {
		c, err := Define(cc.Name, cc.Flags)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// Apply composes every class in the config and registers them with r.
func (cfg *Config) Apply(r *Registry) error {
	classes, err := cfg.Define()
	if err != nil {
		return err
	}
	return r.Add(classes...)
}

// Package config holds app-wide settings unmarshalled from Viper
// (optional protgroup.yaml plus bound command-line flags).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct. Zero values are filled
// from SetDefaults before unmarshalling.
type Config struct {
	// matcher backend: auto | reference | ahocorasick
	Backend string `mapstructure:"backend"`

	// residues accepted immediately upstream of a peptide when the
	// tryptic filter is on
	Cleavage string `mapstructure:"cleavage"`

	// apply the digestion-specificity filter to annotations
	FilterTryptic bool `mapstructure:"filter-tryptic"`

	// fold proteins with subset evidence into the winning group
	Subsume bool `mapstructure:"subsume"`

	// matrix weighting: none | inverse
	Weighting string `mapstructure:"weighting"`

	// worker threads for the per-protein scan (0 = all CPUs)
	Threads int `mapstructure:"threads"`

	// output format: text | json
	Output string `mapstructure:"output"`

	// suppress the header line in text output
	NoHeader bool `mapstructure:"no-header"`

	// column name to extract when the peptide file is tabular
	Column string `mapstructure:"column"`
}

// SetDefaults registers defaults on v; flag bindings override them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend", "auto")
	v.SetDefault("cleavage", "RK")
	v.SetDefault("filter-tryptic", false)
	v.SetDefault("subsume", true)
	v.SetDefault("weighting", "none")
	v.SetDefault("threads", 0)
	v.SetDefault("output", "text")
	v.SetDefault("no-header", false)
	v.SetDefault("column", "peptide")
}

// Load reads the optional config file already wired on v and
// unmarshals the result.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

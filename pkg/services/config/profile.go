package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
)

// Profile is the service configuration file: where the dataset lives and
// how the pipeline should behave.
type Profile struct {
	Dataset        DatasetConfig        `mapstructure:"dataset"`
	Classification ClassificationConfig `mapstructure:"classification"`
	DefaultTopN    int                  `mapstructure:"default_top_n"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

type ClassificationConfig struct {
	// Mode is "headline" (bands follow the AQI column, the classic
	// behavior) or "selected" (bands follow the active metric).
	Mode string `mapstructure:"mode"`
}

func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("default_top_n", domain.DefaultTopN)
	v.SetDefault("classification.mode", string(analysis.ClassifyHeadline))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) Validate() error {
	if p.Dataset.Path == "" {
		return fmt.Errorf("profile is missing dataset.path")
	}
	switch analysis.ClassificationMode(p.Classification.Mode) {
	case analysis.ClassifyHeadline, analysis.ClassifySelected:
	default:
		return fmt.Errorf("unknown classification mode %q", p.Classification.Mode)
	}
	if p.DefaultTopN < 1 || p.DefaultTopN > domain.MaxTopN {
		return fmt.Errorf("default_top_n must be between 1 and %d", domain.MaxTopN)
	}
	return nil
}

func (p *Profile) Mode() analysis.ClassificationMode {
	return analysis.ClassificationMode(p.Classification.Mode)
}

func (p *Profile) DatasetName() string {
	if p.Dataset.Name != "" {
		return p.Dataset.Name
	}
	return "air-quality"
}

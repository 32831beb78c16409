// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"

	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"github.com/draeger-lab/TFpredict-sub001/internal/gofilter"
	"github.com/draeger-lab/TFpredict-sub001/internal/ipr"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ErrMissingOption is returned when a required setting is empty
var ErrMissingOption = errors.New("missing required option")

// IPRScanConfig is for running InterProScan
type IPRScanConfig struct {
	// Path to the iprscan executable
	Path string `mapstructure:"path"`

	// Args passed to iprscan before "-i <sequence file>"
	Args []string `mapstructure:"args"`
}

// ModelConfig is for the classifiers and the resources they were trained with
type ModelConfig struct {
	// Primary is the path to the TF/non-TF liblinear model
	Primary string `mapstructure:"primary"`

	// Super is the path to the superclass liblinear model
	Super string `mapstructure:"super"`

	// Vocabulary is the path to the primary model's domain list
	Vocabulary string `mapstructure:"vocabulary"`

	// SuperVocabulary is the path to the superclass model's domain list
	SuperVocabulary string `mapstructure:"super-vocabulary"`

	// GOTerms is the path to the list of relevant GO terms
	GOTerms string `mapstructure:"go-terms"`

	// Transfac is the path to the domain name to TRANSFAC class table
	Transfac string `mapstructure:"transfac"`

	// FeatureStart is the column offset of the domain features
	FeatureStart int `mapstructure:"feature-start"`
}

// FilterConfig is for the GO mislabel filter
type FilterConfig struct {
	// Ontology is the path to a Gene Ontology OBO file
	Ontology string `mapstructure:"ontology"`

	// TFTerms are the GO terms whose descendants mark a transcription factor
	TFTerms []string `mapstructure:"tf-terms"`
}

// Config is the root-level settings struct and is a mix
// of settings available in .tfpredict.yaml, the environment,
// and those available from the command line
type Config struct {
	// IPRScan settings
	IPRScan IPRScanConfig `mapstructure:"iprscan"`

	// Model settings
	Model ModelConfig `mapstructure:"model"`

	// Filter settings
	Filter FilterConfig `mapstructure:"filter"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults sets the default settings on a viper instance
func SetDefaults(v *viper.Viper) {
	v.SetDefault("iprscan.path", "iprscan")
	v.SetDefault("iprscan.args", ipr.DefaultArgs)
	v.SetDefault("model.feature-start", features.DefaultStart)
	v.SetDefault("filter.tf-terms", gofilter.DefaultTFTerms)
}

// New returns a new Config struct populated by Viper settings
// (either from the local .tfpredict.yaml) and/or command line arguments
func New() (*Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper decodes the settings of a viper instance. Paths starting
// with ~ are expanded to the user's home directory.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	paths := []*string{
		&c.IPRScan.Path,
		&c.Model.Primary,
		&c.Model.Super,
		&c.Model.Vocabulary,
		&c.Model.SuperVocabulary,
		&c.Model.GOTerms,
		&c.Model.Transfac,
		&c.Filter.Ontology,
	}
	for _, p := range paths {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %v", *p, err)
		}
		*p = expanded
	}

	return &c, nil
}

// missing returns an ErrMissingOption for the first empty option
func missing(options ...[2]string) error {
	for _, o := range options {
		if o[1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingOption, o[0])
		}
	}
	return nil
}

// ValidatePredict checks the settings a prediction run needs. The superclass
// model and its vocabulary are optional but have to be set together.
func (c *Config) ValidatePredict() error {
	if err := missing(
		[2]string{"model.primary", c.Model.Primary},
		[2]string{"model.vocabulary", c.Model.Vocabulary},
		[2]string{"model.go-terms", c.Model.GOTerms},
		[2]string{"model.transfac", c.Model.Transfac},
	); err != nil {
		return err
	}
	if c.Model.FeatureStart < 0 {
		return fmt.Errorf("model.feature-start has to be >= 0, got %d", c.Model.FeatureStart)
	}

	if c.Model.Super != "" {
		return missing([2]string{"model.super-vocabulary", c.Model.SuperVocabulary})
	}
	if c.Model.SuperVocabulary != "" {
		return missing([2]string{"model.super", c.Model.Super})
	}
	return nil
}

// ValidateVectors checks the settings a feature export needs
func (c *Config) ValidateVectors() error {
	return missing([2]string{"model.vocabulary", c.Model.Vocabulary})
}

// ValidateFilter checks the settings the GO mislabel filter needs
func (c *Config) ValidateFilter() error {
	if err := missing([2]string{"filter.ontology", c.Filter.Ontology}); err != nil {
		return err
	}
	if len(c.Filter.TFTerms) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingOption, "filter.tf-terms")
	}
	return nil
}

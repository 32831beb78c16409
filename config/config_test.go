package config

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"github.com/draeger-lab/TFpredict-sub001/internal/gofilter"
	"github.com/draeger-lab/TFpredict-sub001/internal/ipr"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(yaml)); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestFromViper(t *testing.T) {
	v := newViper(t, `
model:
  primary: /models/tf.model
  vocabulary: ~/models/iprs.txt
  go-terms: /models/goterms.txt
  transfac: /models/transfac.tsv
`)

	c, err := FromViper(v)
	if err != nil {
		t.Fatal(err)
	}

	if c.IPRScan.Path != "iprscan" {
		t.Errorf("IPRScan.Path = %q, want %q", c.IPRScan.Path, "iprscan")
	}
	if wantArgs := ipr.DefaultArgs; !reflect.DeepEqual(c.IPRScan.Args, wantArgs) {
		t.Errorf("IPRScan.Args = %v, want %v", c.IPRScan.Args, wantArgs)
	}
	if c.Model.FeatureStart != features.DefaultStart {
		t.Errorf("Model.FeatureStart = %d, want %d", c.Model.FeatureStart, features.DefaultStart)
	}
	if want := gofilter.DefaultTFTerms; !reflect.DeepEqual(c.Filter.TFTerms, want) {
		t.Errorf("Filter.TFTerms = %v, want %v", c.Filter.TFTerms, want)
	}

	vocab, _ := homedir.Expand("~/models/iprs.txt")
	if c.Model.Vocabulary != vocab {
		t.Errorf("Model.Vocabulary = %q, want %q", c.Model.Vocabulary, vocab)
	}
	if c.Model.Primary != "/models/tf.model" {
		t.Errorf("Model.Primary = %q, want %q", c.Model.Primary, "/models/tf.model")
	}
}

func TestConfig_ValidatePredict(t *testing.T) {
	valid := ModelConfig{
		Primary:    "tf.model",
		Vocabulary: "iprs.txt",
		GOTerms:    "goterms.txt",
		Transfac:   "transfac.tsv",
	}

	tests := []struct {
		name    string
		modify  func(m *ModelConfig)
		missing string
	}{
		{"valid", func(m *ModelConfig) {}, ""},
		{"no vocabulary", func(m *ModelConfig) { m.Vocabulary = "" }, "model.vocabulary"},
		{"no go terms", func(m *ModelConfig) { m.GOTerms = "" }, "model.go-terms"},
		{"no primary", func(m *ModelConfig) { m.Primary = "" }, "model.primary"},
		{"super without vocabulary", func(m *ModelConfig) { m.Super = "super.model" }, "model.super-vocabulary"},
		{"super vocabulary without model", func(m *ModelConfig) { m.SuperVocabulary = "super.txt" }, "model.super"},
		{"super pair", func(m *ModelConfig) { m.Super, m.SuperVocabulary = "super.model", "super.txt" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.modify(&m)
			c := &Config{Model: m}

			err := c.ValidatePredict()
			if tt.missing == "" {
				if err != nil {
					t.Errorf("ValidatePredict() = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, ErrMissingOption) {
				t.Fatalf("ValidatePredict() = %v, want %v", err, ErrMissingOption)
			}
			if !strings.HasSuffix(err.Error(), ": "+tt.missing) {
				t.Errorf("ValidatePredict() = %v, want it to name %s", err, tt.missing)
			}
		})
	}
}

func TestConfig_ValidatePredict_featureStart(t *testing.T) {
	c := &Config{Model: ModelConfig{
		Primary:      "tf.model",
		Vocabulary:   "iprs.txt",
		GOTerms:      "goterms.txt",
		Transfac:     "transfac.tsv",
		FeatureStart: -1,
	}}
	if err := c.ValidatePredict(); err == nil {
		t.Error("ValidatePredict() expected an error for a negative feature start")
	}
}

func TestConfig_ValidateFilter(t *testing.T) {
	c := &Config{}
	if err := c.ValidateFilter(); !errors.Is(err, ErrMissingOption) {
		t.Errorf("ValidateFilter() = %v, want %v", err, ErrMissingOption)
	}

	c.Filter.Ontology = "go.obo"
	if err := c.ValidateFilter(); !errors.Is(err, ErrMissingOption) {
		t.Errorf("ValidateFilter() = %v, want %v", err, ErrMissingOption)
	}

	c.Filter.TFTerms = []string{"GO:0006355"}
	if err := c.ValidateFilter(); err != nil {
		t.Errorf("ValidateFilter() = %v", err)
	}

	if err := (&Config{}).ValidateVectors(); !errors.Is(err, ErrMissingOption) {
		t.Errorf("ValidateVectors() = %v, want %v", err, ErrMissingOption)
	}
}

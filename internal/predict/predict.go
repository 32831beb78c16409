// Package predict classifies proteins as transcription factors from their
// InterProScan domain hits and reports the binding sites and TRANSFAC
// classes found for them.
package predict

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/draeger-lab/TFpredict-sub001/config"
	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"github.com/draeger-lab/TFpredict-sub001/internal/ipr"
	"github.com/draeger-lab/TFpredict-sub001/internal/linear"
	"github.com/draeger-lab/TFpredict-sub001/internal/resource"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// superClasses is the number of classes of the superclass model
const superClasses = 5

// Classifier returns a probability distribution over class labels,
// where index k is the probability of label k
type Classifier interface {
	Distribution(x features.Vector) ([]float64, error)
}

// Resources are the artifacts the classifiers were trained with
type Resources struct {
	// Vocabulary is the primary model's list of domain identifiers
	Vocabulary []string

	// SuperVocabulary is the superclass model's list of domain identifiers
	SuperVocabulary []string

	// GOTerms are the GO terms that make a domain hit relevant
	GOTerms []string

	// Transfac maps normalized domain names to TRANSFAC classes
	Transfac ipr.Transfac
}

// Predictor runs the classifiers over InterProScan records
type Predictor struct {
	// Primary separates TFs (label 1) from non-TFs (label 0)
	Primary Classifier

	// Super assigns TFs one of five superclasses. Optional
	Super Classifier

	Resources

	// Start is the column offset of the domain features
	Start int
}

// Load creates a Predictor from the models and resources in the settings
func Load(conf *config.Config) (*Predictor, error) {
	m := conf.Model
	p := &Predictor{Start: m.FeatureStart}

	var err error
	if p.Vocabulary, err = resource.LoadList(m.Vocabulary); err != nil {
		return nil, err
	}
	stderr.Printf("Number of significant IPRs: %d", len(p.Vocabulary))

	if p.GOTerms, err = resource.LoadList(m.GOTerms); err != nil {
		return nil, err
	}

	transfac, err := resource.LoadTable(m.Transfac)
	if err != nil {
		return nil, err
	}
	p.Transfac = ipr.Transfac(transfac)

	primary, err := linear.LoadModel(m.Primary)
	if err != nil {
		return nil, err
	}
	p.Primary = primary

	if m.Super != "" {
		if p.SuperVocabulary, err = resource.LoadList(m.SuperVocabulary); err != nil {
			return nil, err
		}
		super, err := linear.LoadModel(m.Super)
		if err != nil {
			return nil, err
		}
		p.Super = super
	}

	return p, nil
}

// Predict classifies every protein that has at least one domain of either
// vocabulary. Proteins with only superclass domains are classified from
// an empty primary vector.
func (p *Predictor) Predict(records []ipr.Record) (*Report, error) {
	if p.Primary == nil {
		return nil, fmt.Errorf("no primary classifier")
	}

	start := time.Now()
	res := ipr.Process(ipr.Extract(records), p.GOTerms, p.Transfac)

	domains := ipr.CollectDomains(records)
	primary := features.EncodeAll(domains, p.Vocabulary, p.Start)
	super := features.EncodeAll(domains, p.SuperVocabulary, p.Start)

	report := &Report{
		Extracted: res.Extracted,
		Relevant:  res.Relevant,
		Unique:    len(res.Proteins),
		Unmapped:  res.Unmapped.Names(),
	}

	for _, id := range features.Union(primary, super) {
		fv, _ := primary.Get(id)
		dist, err := p.Primary.Distribution(fv)
		if err != nil {
			return nil, fmt.Errorf("failed to classify %s: %w", id, err)
		}
		if len(dist) < 2 {
			return nil, fmt.Errorf("failed to classify %s: expected 2 classes, got %d", id, len(dist))
		}

		pred := &Prediction{ID: id, TF: dist[1], NonTF: dist[0]}
		if prot, ok := res.Proteins[id]; ok {
			pred.Annotated = true
			pred.Bindings = prot.Bindings
			if prot.Transfac != "" {
				pred.Transfac = ipr.FormatTransfac(prot.Transfac)
			}
		}

		if pred.TF > pred.NonTF && p.Super != nil {
			if sv, ok := super.Get(id); ok {
				sdist, err := p.Super.Distribution(sv)
				if err != nil {
					return nil, fmt.Errorf("failed to classify the superclass of %s: %w", id, err)
				}
				if len(sdist) < superClasses {
					return nil, fmt.Errorf("failed to classify the superclass of %s: expected %d classes, got %d", id, superClasses, len(sdist))
				}
				pred.Superclass = sdist[:superClasses]
			}
		}

		report.Predictions = append(report.Predictions, pred)
	}

	report.Execution = time.Since(start).Seconds()
	return report, nil
}

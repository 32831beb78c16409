// Package linear reads liblinear text models and computes decision values
// and probability estimates for sparse feature vectors.
package linear

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"gonum.org/v1/gonum/floats"
)

// ErrNoProbability is returned for models that can't estimate probabilities
var ErrNoProbability = errors.New("probability estimates need a logistic regression model")

// solver types, as named in the model file
const (
	L2RLR      = "L2R_LR"
	L2RL2Loss  = "L2R_L2LOSS_SVC"
	L2RL2Dual  = "L2R_L2LOSS_SVC_DUAL"
	L2RL1Loss  = "L2R_L1LOSS_SVC_DUAL"
	MCSVMCS    = "MCSVM_CS"
	L1RL2Loss  = "L1R_L2LOSS_SVC"
	L1RLR      = "L1R_LR"
	L2RLRDual  = "L2R_LR_DUAL"
	solverNone = ""
)

var solvers = map[string]bool{
	L2RLR: true, L2RL2Loss: true, L2RL2Dual: true, L2RL1Loss: true,
	MCSVMCS: true, L1RL2Loss: true, L1RLR: true, L2RLRDual: true,
}

// Model is a trained liblinear model
type Model struct {
	// Solver used in training, ex: L2R_LR
	Solver string

	// Labels of the classes in weight column order
	Labels []int

	// NrFeature is the number of features seen in training
	NrFeature int

	// Bias is the bias feature's value, negative if there is none
	Bias float64

	// W are the weights, row major: NrFeature(+1) rows of nrW columns
	W []float64
}

// nrW is the number of weight columns
func (m *Model) nrW() int {
	if len(m.Labels) == 2 && m.Solver != MCSVMCS {
		return 1
	}
	return len(m.Labels)
}

// nrRows is the number of weight rows, including the bias row
func (m *Model) nrRows() int {
	if m.Bias >= 0 {
		return m.NrFeature + 1
	}
	return m.NrFeature
}

// ReadModel parses a model in liblinear's text format
func ReadModel(in io.Reader) (*Model, error) {
	m := &Model{Bias: -1}
	nrClass := 0
	scanner := bufio.NewScanner(in)

	// header, up to the "w" line
	inWeights := false
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "solver_type":
			if len(fields) < 2 || !solvers[fields[1]] {
				return nil, fmt.Errorf("unknown solver type in model: %q", scanner.Text())
			}
			m.Solver = fields[1]
		case "nr_class":
			nrClass, err = headerInt(fields)
		case "nr_feature":
			m.NrFeature, err = headerInt(fields)
		case "bias":
			if len(fields) < 2 {
				return nil, fmt.Errorf("no bias value in model")
			}
			m.Bias, err = strconv.ParseFloat(fields[1], 64)
		case "label":
			m.Labels = make([]int, len(fields)-1)
			for i, l := range fields[1:] {
				if m.Labels[i], err = strconv.Atoi(l); err != nil {
					break
				}
			}
		case "w":
			inWeights = true
		default:
			return nil, fmt.Errorf("unknown text in model file: [%s]", scanner.Text())
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse model header %q: %v", scanner.Text(), err)
		}
		if inWeights {
			break
		}
	}

	if !inWeights {
		return nil, fmt.Errorf("model has no weights")
	}
	if m.Solver == solverNone {
		return nil, fmt.Errorf("model has no solver_type")
	}
	if nrClass < 2 || len(m.Labels) != nrClass {
		return nil, fmt.Errorf("model has %d classes and %d labels", nrClass, len(m.Labels))
	}

	// weights, nrW values per row
	for scanner.Scan() {
		for _, f := range strings.Fields(scanner.Text()) {
			w, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse model weight %q: %v", f, err)
			}
			m.W = append(m.W, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model: %v", err)
	}

	if want := m.nrRows() * m.nrW(); len(m.W) != want {
		return nil, fmt.Errorf("model has %d weights, expected %d", len(m.W), want)
	}

	return m, nil
}

// headerInt parses the integer value of a header line
func headerInt(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.Atoi(fields[1])
}

// LoadModel reads a model from the local fs
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %v", path, err)
	}
	defer f.Close()

	m, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return m, nil
}

// Decision returns the decision values of a vector, one per weight column.
// Features beyond those seen in training are ignored.
func (m *Model) Decision(x features.Vector) []float64 {
	nrW := m.nrW()
	dec := make([]float64, nrW)

	for _, node := range x {
		if node.Index < 1 || node.Index > m.NrFeature {
			continue
		}
		row := m.W[(node.Index-1)*nrW : node.Index*nrW]
		floats.AddScaled(dec, node.Value, row)
	}

	if m.Bias >= 0 {
		row := m.W[m.NrFeature*nrW : (m.NrFeature+1)*nrW]
		floats.AddScaled(dec, m.Bias, row)
	}

	return dec
}

// Probabilities returns the probability estimate of each class, in Labels order
func (m *Model) Probabilities(x features.Vector) ([]float64, error) {
	if m.Solver != L2RLR && m.Solver != L1RLR && m.Solver != L2RLRDual {
		return nil, ErrNoProbability
	}

	dec := m.Decision(x)
	for i, d := range dec {
		dec[i] = 1 / (1 + math.Exp(-d))
	}

	if len(m.Labels) == 2 {
		return []float64{dec[0], 1 - dec[0]}, nil
	}

	floats.Scale(1/floats.Sum(dec), dec)
	return dec, nil
}

// Distribution returns class probabilities indexed by label value, so
// index k is the probability of label k. Labels have to be 0..n-1.
func (m *Model) Distribution(x features.Vector) ([]float64, error) {
	probs, err := m.Probabilities(x)
	if err != nil {
		return nil, err
	}

	dist := make([]float64, len(m.Labels))
	for i, label := range m.Labels {
		if label < 0 || label >= len(dist) {
			return nil, fmt.Errorf("label %d is outside of 0..%d", label, len(dist)-1)
		}
		dist[label] = probs[i]
	}
	return dist, nil
}

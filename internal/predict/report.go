package predict

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Prediction is the classification of a single protein
type Prediction struct {
	// ID of the protein
	ID string `json:"id"`

	// TF is the probability that the protein is a transcription factor
	TF float64 `json:"tf"`

	// NonTF is the probability that it isn't
	NonTF float64 `json:"nonTF"`

	// Annotated is whether any relevant GO annotated domain hit the protein
	Annotated bool `json:"annotated"`

	// Bindings are "id    start\tend" binding site descriptors
	Bindings []string `json:"bindings,omitempty"`

	// Transfac is the formatted TRANSFAC class, ex: "1.2.0.0.0."
	Transfac string `json:"transfac,omitempty"`

	// Superclass probabilities, index k is superclass k
	Superclass []float64 `json:"superclass,omitempty"`
}

// Report is the outcome of a prediction run
type Report struct {
	// Time, ex: "2018/01/01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to predict
	Execution float64 `json:"execution"`

	// Predictions in protein order
	Predictions []*Prediction `json:"predictions"`

	// Extracted is the number of GO annotated domain hits
	Extracted int `json:"extracted"`

	// Relevant is the number of relevant GO matches
	Relevant int `json:"relevant"`

	// Unique is the number of proteins with relevant domain hits
	Unique int `json:"unique"`

	// Unmapped are the domain names without a TRANSFAC class
	Unmapped []string `json:"unmapped,omitempty"`
}

const separator = "###############################"

// Write prints the report in its console layout
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder

	if len(r.Predictions) == 0 {
		b.WriteString("No prediction possible.\n")
	}

	for _, p := range r.Predictions {
		fmt.Fprintf(&b, "\n%s\n", separator)
		b.WriteString("\nPrediction Results:\nID\tTF\tNon-TF\n")
		fmt.Fprintf(&b, "%s\t%.2f\t%.2f\n", p.ID, p.TF, p.NonTF)

		if p.Annotated {
			if len(p.Bindings) > 0 {
				b.WriteString("\nBinding side(s):\nID\tstart\tend\n")
				for _, bind := range p.Bindings {
					b.WriteString(bind + "\n")
				}
			}
			if p.Transfac != "" {
				fmt.Fprintf(&b, "\nID\tTransfac\n%s\t%s\n", p.ID, p.Transfac)
			}
		} else {
			b.WriteString("No binding information and transfac class found.\n")
		}

		if len(p.Superclass) > 0 {
			b.WriteString("\nSuperClass Prediction:\nID\t4\t3\t2\t1\t0\n")
			b.WriteString(p.ID)
			for k := len(p.Superclass) - 1; k >= 0; k-- {
				fmt.Fprintf(&b, "\t%.2f", p.Superclass[k])
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n%d entries extracted.\n", r.Extracted)
	fmt.Fprintf(&b, "%d relevant entries processed.\n", r.Relevant)
	fmt.Fprintf(&b, "%d unique entries found.\n", r.Unique)
	b.WriteString("Missing annotations:\n")
	for _, name := range r.Unmapped {
		b.WriteString(name + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report to filename as indented JSON
func (r *Report) WriteJSON(filename string) (output []byte, err error) {
	// store save time, using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	r.Time = fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	output, err = json.MarshalIndent(r, "", "  ")
	if err != nil {
		return output, fmt.Errorf("failed to serialize output: %v", err)
	}

	if err = os.WriteFile(filename, output, 0666); err != nil {
		return output, fmt.Errorf("failed to write the output: %v", err)
	}

	return output, nil
}

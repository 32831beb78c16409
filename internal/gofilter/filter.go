// Package gofilter removes mislabeled training sequences: TF records without
// a transcription factor GO term and non-TF records with one.
package gofilter

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// DefaultTFTerms are the GO terms whose descendants mark a transcription factor
var DefaultTFTerms = []string{
	"GO:0006355", // regulation of transcription, DNA-templated
	"GO:0001071", // nucleic acid binding transcription factor activity
}

// Ancestry answers whether a GO term descends from another
type Ancestry interface {
	IsDescendant(term, ancestor string) bool
}

// Label is the class a record claims in its header
type Label int

const (
	// Unlabeled records claim neither class
	Unlabeled Label = iota

	// TF records contain "TF" in the header
	TF

	// NonTF records contain "nonTF" in the header
	NonTF
)

// labelOf reads the class out of a FASTA header
func labelOf(header string) Label {
	switch {
	case strings.Contains(header, "nonTF"):
		return NonTF
	case strings.Contains(header, "TF"):
		return TF
	default:
		return Unlabeled
	}
}

// goTerms returns the GO terms of "|" separated header tokens like "GO:0003700,GO:0005634"
func goTerms(header string) (terms []string) {
	for _, token := range strings.Split(header, "|") {
		token = strings.TrimSpace(token)
		if !strings.HasPrefix(token, "GO:") {
			continue
		}
		for _, term := range strings.Split(token, ",") {
			if term = strings.TrimSpace(term); term != "" {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

// Stats are the counts of a filter run
type Stats struct {
	// Total records read
	Total int

	// Annotated records have at least one GO term
	Annotated int

	// TFs and NonTFs are the annotated records with each label
	TFs    int
	NonTFs int

	// MislabeledTFs are TF records without a TF GO term
	MislabeledTFs int

	// MislabeledNonTFs are non-TF records with a TF GO term
	MislabeledNonTFs int

	// Written is the number of records in the output
	Written int
}

// Contradictions is the number of records whose label and GO terms disagree
func (s Stats) Contradictions() int {
	return s.MislabeledTFs + s.MislabeledNonTFs
}

// String is the end of run summary
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total entries:\t%d\n", s.Total)
	fmt.Fprintf(&b, "contradictions found:\t%d\n", s.Contradictions())
	fmt.Fprintf(&b, "mislabeled nonTFs:\t%d\n", s.MislabeledNonTFs)
	fmt.Fprintf(&b, "correct TFs:\t%d\n", s.TFs-s.MislabeledTFs)
	fmt.Fprintf(&b, "correct nonTFs:\t%d\n", s.NonTFs-s.MislabeledNonTFs)
	fmt.Fprintf(&b, "mislabeled TFs:\t%d\n", s.MislabeledTFs)
	fmt.Fprintf(&b, "correctly labeled entries:\t%d", s.Total-s.Contradictions())
	return b.String()
}

// Filter checks record labels against the GO terms in their headers
type Filter struct {
	// Ontology to test GO term ancestry with
	Ontology Ancestry

	// TFTerms are the GO terms whose descendants indicate a TF
	TFTerms []string
}

// New returns a Filter over an ontology with the default TF terms
func New(o Ancestry) *Filter {
	return &Filter{Ontology: o, TFTerms: DefaultTFTerms}
}

// isTF returns whether any term descends from a TF term
func (f *Filter) isTF(terms []string) bool {
	for _, term := range terms {
		for _, tf := range f.TFTerms {
			if f.Ontology.IsDescendant(term, tf) {
				return true
			}
		}
	}
	return false
}

// Check a header. annotated is false if the header has no GO terms;
// correct is false if its label contradicts them.
func (f *Filter) Check(header string) (label Label, annotated, correct bool) {
	label = labelOf(header)
	terms := goTerms(header)
	if len(terms) == 0 {
		return label, false, false
	}

	hasTF := f.isTF(terms)
	switch label {
	case NonTF:
		return label, true, !hasTF
	case TF:
		return label, true, hasTF
	default:
		return label, true, true
	}
}

// Run reads protein FASTA records from in and writes those with GO terms
// that agree with their label to out. Spaces in written headers become "_".
func (f *Filter) Run(in io.Reader, out io.Writer) (stats Stats, err error) {
	r := fasta.NewReader(in, linear.NewSeq("", nil, alphabet.Protein))
	w := fasta.NewWriter(out, 60)

	sc := seqio.NewScanner(r)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		stats.Total++

		header := s.Name()
		if desc := s.Description(); desc != "" {
			header += " " + desc
		}

		label, annotated, correct := f.Check(header)
		if !annotated {
			continue
		}
		stats.Annotated++

		switch label {
		case TF:
			stats.TFs++
			if !correct {
				stats.MislabeledTFs++
			}
		case NonTF:
			stats.NonTFs++
			if !correct {
				stats.MislabeledNonTFs++
			}
		}

		if !correct {
			stderr.Printf("contradiction: %s", header)
			continue
		}

		s.ID = strings.ReplaceAll(header, " ", "_")
		s.Desc = ""
		if _, err := w.Write(s); err != nil {
			return stats, fmt.Errorf("failed to write sequence %q: %v", s.ID, err)
		}
		stats.Written++
	}

	if err := sc.Error(); err != nil {
		return stats, fmt.Errorf("failed during read: %v", err)
	}
	return stats, nil
}

// RunFiles filters the FASTA file at inPath into a new file at outPath
func (f *Filter) RunFiles(inPath, outPath string) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input FASTA file: %v", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open output FASTA file: %v", err)
	}

	stats, err := f.Run(in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output FASTA file: %v", cerr)
	}
	return stats, err
}

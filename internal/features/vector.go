// Package features encodes the InterPro domains of proteins as sparse
// presence/absence feature vectors for the linear classifiers.
package features

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DefaultStart is the column offset of the domain block. The columns
// before it are reserved for other feature blocks.
const DefaultStart = 10

// Node is a single non-zero feature. Index is 1-based.
type Node struct {
	Index int
	Value float64
}

// Vector is a sparse feature vector in ascending Index order
type Vector []Node

// String renders the vector in libsvm "index:value" notation
func (v Vector) String() string {
	cols := make([]string, len(v))
	for i, n := range v {
		cols[i] = strconv.Itoa(n.Index) + ":" + strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	return strings.Join(cols, " ")
}

// Source is a collection of proteins and their domain identifiers
type Source interface {
	// IDs of the proteins, in reporting order
	IDs() []string

	// Accessions returns the domain identifiers seen on a protein
	Accessions(id string) []string
}

// Encode creates the vector of a protein with the domains present against a
// vocabulary of domain identifiers. The domain at vocabulary position i
// is column i+1+start.
func Encode(present, vocabulary []string, start int) Vector {
	has := make(map[string]bool, len(present))
	for _, p := range present {
		has[p] = true
	}

	var v Vector
	for i, domain := range vocabulary {
		if has[domain] {
			v = append(v, Node{Index: i + 1 + start, Value: 1})
		}
	}
	return v
}

// Vectors are feature vectors keyed by protein ID
type Vectors struct {
	// IDs of the encoded proteins in source order
	IDs []string

	// ByID is the vector for each protein in IDs
	ByID map[string]Vector
}

// Get returns a protein's vector and whether it has one
func (vs *Vectors) Get(id string) (Vector, bool) {
	v, ok := vs.ByID[id]
	return v, ok
}

// EncodeAll encodes every protein of src against vocabulary. Proteins without
// a single vocabulary domain are left out.
func EncodeAll(src Source, vocabulary []string, start int) *Vectors {
	vs := &Vectors{ByID: make(map[string]Vector)}

	for _, id := range src.IDs() {
		v := Encode(src.Accessions(id), vocabulary, start)
		if len(v) == 0 {
			continue
		}
		vs.IDs = append(vs.IDs, id)
		vs.ByID[id] = v
	}

	return vs
}

// Union returns the IDs in either set: those of a first, then the rest of b
func Union(a, b *Vectors) []string {
	ids := append([]string(nil), a.IDs...)
	for _, id := range b.IDs {
		if _, ok := a.ByID[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// WriteLibSVM writes a "<label> <index>:<value> ..." line per vector, in IDs order
func (vs *Vectors) WriteLibSVM(w io.Writer, label int) error {
	bw := bufio.NewWriter(w)
	for _, id := range vs.IDs {
		if _, err := bw.WriteString(strconv.Itoa(label) + " " + vs.ByID[id].String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

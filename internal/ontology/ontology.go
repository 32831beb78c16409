// Package ontology loads OBO ontologies, like the Gene Ontology, into a
// directed graph and answers ancestry queries against it.
package ontology

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Relationship is a typed edge from a term to another, ex: part_of GO:0005634
type Relationship struct {
	Type     string
	TargetID string
}

// Term is a single [Term] stanza of an OBO file
type Term struct {
	ID            string
	Name          string
	Namespace     string
	AltIDs        []string
	IsA           []string
	Relationships []Relationship
	Obsolete      bool
}

// Ontology is a set of terms and the graph of edges from each term to its parents
type Ontology struct {
	terms map[string]*Term

	// alt maps alternative ids to primary ids
	alt map[string]string

	// nodes are the graph node ids of terms (and parents referenced before definition)
	nodes map[string]int64

	g *simple.DirectedGraph
}

// Parse reads an ontology in OBO flat file format. Only [Term] stanzas are kept.
func Parse(in io.Reader) (*Ontology, error) {
	o := &Ontology{
		terms: make(map[string]*Term),
		alt:   make(map[string]string),
		nodes: make(map[string]int64),
		g:     simple.NewDirectedGraph(),
	}

	var current *Term
	inTerm := false
	flush := func() error {
		if current == nil {
			return nil
		}
		if current.ID == "" {
			return fmt.Errorf("term stanza without an id")
		}
		if _, dup := o.terms[current.ID]; dup {
			return fmt.Errorf("duplicate term %s", current.ID)
		}
		o.add(current)
		current = nil
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %v", n, err)
			}
			inTerm = line == "[Term]"
			if inTerm {
				current = &Term{}
			}
			continue
		}
		if !inTerm {
			continue // header or typedef
		}

		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected tag: value, got %q", n, line)
		}
		value = stripComment(value)

		switch tag {
		case "id":
			current.ID = value
		case "name":
			current.Name = value
		case "namespace":
			current.Namespace = value
		case "alt_id":
			current.AltIDs = append(current.AltIDs, value)
		case "is_a":
			current.IsA = append(current.IsA, firstWord(value))
		case "relationship":
			fields := strings.Fields(value)
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: malformed relationship %q", n, value)
			}
			current.Relationships = append(current.Relationships, Relationship{Type: fields[0], TargetID: fields[1]})
		case "is_obsolete":
			current.Obsolete = value == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ontology: %v", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return o, nil
}

// Load reads an OBO file from the local fs
func Load(path string) (*Ontology, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology %s: %v", path, err)
	}
	defer f.Close()

	o, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ontology %s: %v", path, err)
	}
	return o, nil
}

// add a term and the edges to its parents
func (o *Ontology) add(t *Term) {
	o.terms[t.ID] = t
	for _, a := range t.AltIDs {
		o.alt[a] = t.ID
	}

	from := o.node(t.ID)
	for _, parent := range t.IsA {
		o.edge(from, o.node(parent))
	}
	for _, r := range t.Relationships {
		o.edge(from, o.node(r.TargetID))
	}
}

// node returns the graph node of a term id, creating it if needed
func (o *Ontology) node(id string) graph.Node {
	if n, ok := o.nodes[id]; ok {
		return o.g.Node(n)
	}

	n := o.g.NewNode()
	o.g.AddNode(n)
	o.nodes[id] = n.ID()
	return n
}

// edge adds an edge between two distinct nodes
func (o *Ontology) edge(from, to graph.Node) {
	if from.ID() == to.ID() {
		return // simple graphs panic on self loops
	}
	o.g.SetEdge(o.g.NewEdge(from, to))
}

// resolve maps an id or alt id to the primary term id
func (o *Ontology) resolve(id string) string {
	if primary, ok := o.alt[id]; ok {
		return primary
	}
	return id
}

// Term returns the term with the id or alt id
func (o *Ontology) Term(id string) (*Term, bool) {
	t, ok := o.terms[o.resolve(id)]
	return t, ok
}

// Len is the number of terms in the ontology
func (o *Ontology) Len() int {
	return len(o.terms)
}

// IsDescendant returns whether term is ancestor or reaches it over is_a and
// relationship edges. Unknown terms are never descendants.
func (o *Ontology) IsDescendant(term, ancestor string) bool {
	term, ancestor = o.resolve(term), o.resolve(ancestor)
	if _, ok := o.terms[term]; !ok {
		return false
	}
	if term == ancestor {
		return true
	}

	to, ok := o.nodes[ancestor]
	if !ok {
		return false
	}

	// the walk keeps a visited set, so cycles terminate
	var bf traverse.BreadthFirst
	found := bf.Walk(o.g, o.g.Node(o.nodes[term]), func(n graph.Node, _ int) bool {
		return n.ID() == to
	})
	return found != nil
}

// stripComment removes trailing "! comment" text and modifiers from a value
func stripComment(value string) string {
	if i := strings.Index(value, " !"); i >= 0 {
		value = value[:i]
	}
	if i := strings.Index(value, " {"); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}

// firstWord returns the text before the first space
func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

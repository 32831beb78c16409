package ipr

// Protein is the binding and TRANSFAC evidence gathered for one protein
// from its relevant domain hits
type Protein struct {
	// ID of the protein
	ID string `json:"id"`

	// Bindings are the distinct binding site descriptors, in order of discovery
	Bindings []string `json:"bindings"`

	// Transfac is the longest TRANSFAC class mapped from the protein's domains
	Transfac string `json:"transfac,omitempty"`
}

// Result is the outcome of a single processing pass
type Result struct {
	// Proteins keyed by ID
	Proteins map[string]*Protein

	// IDs of the proteins in the order they were first seen
	IDs []string

	// Extracted is the number of GO annotated entries processed
	Extracted int

	// Relevant counts relevant GO matches. An entry that matches several
	// relevance terms is counted once per matching term.
	Relevant int

	// RelevantEntries counts entries with at least one relevant GO term
	RelevantEntries int

	// Unmapped are the domain names without a TRANSFAC class
	Unmapped *Unmapped
}

// Process merges the entries that carry a relevant GO term into one
// Protein per ID. goTerms is the relevance set, transfac the class table.
func Process(entries []Evidence, goTerms []string, transfac Transfac) *Result {
	res := &Result{
		Proteins:  make(map[string]*Protein),
		Extracted: len(entries),
		Unmapped:  &Unmapped{},
	}

	for _, e := range entries {
		matches := relevantMatches(e.GOTerms, goTerms)
		if matches == 0 {
			continue
		}
		res.Relevant += matches
		res.RelevantEntries++

		class := transfac.Map(e.Domains, res.Unmapped)

		p, ok := res.Proteins[e.ID]
		if !ok {
			res.Proteins[e.ID] = &Protein{
				ID:       e.ID,
				Bindings: []string{e.Binding},
				Transfac: class,
			}
			res.IDs = append(res.IDs, e.ID)
			continue
		}

		// strictly longer classes are more specific, ties keep the first
		if len(class) > len(p.Transfac) {
			p.Transfac = class
		}
		if !contains(p.Bindings, e.Binding) {
			p.Bindings = append(p.Bindings, e.Binding)
		}
	}

	return res
}

// relevantMatches counts the relevance terms found in an entry's GO terms
func relevantMatches(terms, relevant []string) (matches int) {
	for _, r := range relevant {
		if contains(terms, r) {
			matches++
		}
	}
	return matches
}

// contains returns whether s holds an element equal to v
func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

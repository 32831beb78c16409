package ipr

import (
	"strings"
)

// Evidence is a single GO-annotated domain hit from the InterProScan output
type Evidence struct {
	// ID of the protein the hit is on
	ID string

	// Binding is the "id    start\tend" descriptor of the hit's location
	Binding string

	// Domains are the two domain name candidates: the signature
	// description (column 5) and the InterPro description (column 12)
	Domains [2]string

	// GOTerms are the GO identifiers annotated to the hit
	GOTerms []string
}

// Extract keeps the records that have a GO column without a NULL entry
// and converts each of them to Evidence
func Extract(records []Record) []Evidence {
	var entries []Evidence

	for _, r := range records {
		goColumn, ok := r.GO()
		if !ok || strings.Contains(goColumn, "NULL") {
			continue
		}

		id := r.ID()
		entries = append(entries, Evidence{
			ID:      id,
			Binding: id + "    " + r.Field(startField) + "\t" + r.Field(endField),
			Domains: [2]string{
				firstToken(r.Field(domainField)),
				firstToken(r.Field(iprDescField)),
			},
			GOTerms: parseGOTerms(goColumn),
		})
	}

	stderr.Printf("%d entries extracted.", len(entries))
	return entries
}

// parseGOTerms pulls the GO ids out of a column like
// "transcription factor activity (GO:0003700), DNA binding (GO:0003677)"
func parseGOTerms(goColumn string) []string {
	var terms []string

	for _, token := range strings.Split(goColumn, ",") {
		if !strings.Contains(token, "GO:") {
			continue
		}

		start := strings.Index(token, "(GO:") + 1
		if start == 0 {
			start = strings.Index(token, "GO:") // no opening paren, take it from GO: on
		}

		end := strings.Index(token[start:], ")")
		if end < 0 {
			end = len(token) - start
		}

		terms = append(terms, token[start:start+end])
	}

	return terms
}

// firstToken returns the trimmed text before the first comma
func firstToken(s string) string {
	return strings.TrimSpace(strings.Split(s, ",")[0])
}

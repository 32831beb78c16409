package ipr

// Domains holds every InterPro accession reported for each protein,
// regardless of GO annotation. It's the input to feature vector encoding.
type Domains struct {
	ids        []string
	accessions map[string][]string
}

// CollectDomains gathers the InterPro accession (column 11) of every
// record by protein ID. Records without that column are skipped.
func CollectDomains(records []Record) *Domains {
	d := &Domains{accessions: make(map[string][]string)}

	for _, r := range records {
		if len(r) < minIPRColumns {
			continue
		}

		id := r.ID()
		acc := r.Field(iprField)

		accs, ok := d.accessions[id]
		if !ok {
			d.ids = append(d.ids, id)
		}
		if !contains(accs, acc) {
			d.accessions[id] = append(accs, acc)
		}
	}

	return d
}

// IDs returns the protein IDs in the order they were first seen
func (d *Domains) IDs() []string {
	return append([]string(nil), d.ids...)
}

// Accessions returns the distinct InterPro accessions of a protein
func (d *Domains) Accessions(id string) []string {
	return d.accessions[id]
}

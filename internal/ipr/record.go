// Package ipr turns InterProScan raw output into per-protein evidence:
// GO-annotated domain hits, binding sites, TRANSFAC classes and the
// InterPro accessions used for feature vectors.
package ipr

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// goFieldCount is the number of columns in a raw line that carries a GO column
const goFieldCount = 14

// field indexes of the InterProScan raw format
const (
	idField       = 0
	domainField   = 5
	startField    = 6
	endField      = 7
	iprField      = 11
	iprDescField  = 12
	goField       = 13
	minIPRColumns = iprField + 1
)

// Record is a single tab-delimited line of InterProScan raw output.
// Fields are kept untrimmed; they're trimmed when read.
type Record []string

// ParseRecord splits a raw output line on tabs
func ParseRecord(line string) Record {
	return Record(strings.Split(line, "\t"))
}

// Field returns the trimmed field at index i or "" if the record is too short
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// ID is the protein identifier in the first column
func (r Record) ID() string {
	return r.Field(idField)
}

// GO returns the trimmed GO column. Only records with exactly 14 fields
// have one; for all others ok is false.
func (r Record) GO() (goColumn string, ok bool) {
	if len(r) != goFieldCount {
		return "", false
	}
	return r.Field(goField), true
}

// ReadRecords reads every non-blank line of raw InterProScan output
func ReadRecords(in io.Reader) (records []Record, err error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024) // GO columns get long

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseRecord(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read InterProScan output: %v", err)
	}
	return records, nil
}

// ReadRecordsFile reads raw InterProScan output from a file on the local fs
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open InterProScan output %s: %v", path, err)
	}
	defer f.Close()

	return ReadRecords(f)
}

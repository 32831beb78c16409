// Package resource reads and writes the plain-text artifacts a prediction
// run depends on: domain vocabularies, relevant GO terms and the TRANSFAC
// class table.
//
// Lists have one identifier per line (only the first tab-separated column is
// used). Tables have a "key<TAB>value" pair per line. In both, blank lines and
// lines starting with '#' are skipped. A file may start with a header line
// "#tfpredict <kind> v<version>"; versions newer than Version are rejected.
package resource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// Version is the newest artifact format version understood
const Version = 1

// artifact kinds, as written in headers
const (
	KindVocabulary = "vocabulary"
	KindGOTerms    = "goterms"
	KindTransfac   = "transfac"
)

// ErrVersion is returned for artifacts written by a newer format version
var ErrVersion = errors.New("unsupported artifact version")

const headerPrefix = "#tfpredict "

// readLines calls fn with the non-comment lines of in, after checking its header
func readLines(in io.Reader, fn func(n int, line string) error) error {
	scanner := bufio.NewScanner(in)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, headerPrefix) {
			if err := checkHeader(line); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			continue
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := fn(n, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// checkHeader validates a "#tfpredict <kind> v<version>" line
func checkHeader(line string) error {
	fields := strings.Fields(strings.TrimPrefix(line, headerPrefix))
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "v") {
		return fmt.Errorf("malformed header %q", line)
	}

	v, err := strconv.Atoi(strings.TrimPrefix(fields[1], "v"))
	if err != nil {
		return fmt.Errorf("malformed header %q", line)
	}
	if v > Version {
		return fmt.Errorf("%w: %s v%d (max v%d)", ErrVersion, fields[0], v, Version)
	}
	return nil
}

// ReadList reads an ordered list of identifiers
func ReadList(in io.Reader) (list []string, err error) {
	err = readLines(in, func(_ int, line string) error {
		id := strings.TrimSpace(strings.Split(line, "\t")[0])
		if id != "" {
			list = append(list, id)
		}
		return nil
	})
	return list, err
}

// ReadTable reads a key to value table
func ReadTable(in io.Reader) (map[string]string, error) {
	table := make(map[string]string)
	err := readLines(in, func(n int, line string) error {
		kv := strings.SplitN(line, "\t", 2)
		if len(kv) != 2 {
			return fmt.Errorf("line %d: expected key<TAB>value, got %q", n, line)
		}

		key := strings.TrimSpace(kv[0])
		if _, dup := table[key]; dup {
			return fmt.Errorf("line %d: duplicate key %q", n, key)
		}
		table[key] = strings.TrimSpace(kv[1])
		return nil
	})
	return table, err
}

// WriteList writes a list with a header for kind
func WriteList(out io.Writer, kind string, list []string) error {
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%s%s v%d\n", headerPrefix, kind, Version)
	for _, id := range list {
		fmt.Fprintln(w, id)
	}
	return w.Flush()
}

// WriteTable writes a table, sorted by key, with a header for kind
func WriteTable(out io.Writer, kind string, table map[string]string) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%s%s v%d\n", headerPrefix, kind, Version)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, table[k])
	}
	return w.Flush()
}

// open opens a file, expanding a leading ~ to the user's home directory
func open(path string) (*os.File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return os.Open(expanded)
}

// LoadList reads a list from the local fs
func LoadList(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list %s: %v", path, err)
	}
	defer f.Close()

	list, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", path, err)
	}
	return list, nil
}

// LoadTable reads a table from the local fs
func LoadTable(path string) (map[string]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %v", path, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return table, nil
}

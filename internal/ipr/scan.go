package ipr

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultArgs are passed to InterProScan ahead of the input file
var DefaultArgs = []string{"-cli", "-format", "raw", "-goterms", "-iprlookup", "-altjobs"}

// Scanner executes InterProScan against a file of protein sequences
type Scanner struct {
	// Path to the iprscan executable
	Path string

	// Args are the arguments before "-i <sequence file>"
	Args []string
}

// Scan runs InterProScan on the FASTA file at seqFile and parses its raw output.
// It blocks until the process exits, there is no timeout.
func (s *Scanner) Scan(seqFile string) ([]Record, error) {
	if _, err := os.Stat(seqFile); err != nil {
		return nil, fmt.Errorf("failed to find a sequence file at %s: %v", seqFile, err)
	}

	args := append(append([]string{}, s.Args...), "-i", seqFile)
	stderr.Println("Running InterProScan ...")
	stderr.Println(s.Path + " " + strings.Join(args, " "))

	var stdout, errOut bytes.Buffer
	iprCmd := exec.Command(s.Path, args...)
	iprCmd.Stdout = &stdout
	iprCmd.Stderr = &errOut

	// execute InterProScan and wait on it to finish
	if err := iprCmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to execute InterProScan on %s: %v: %s", seqFile, err, errOut.String())
	}

	return ReadRecords(&stdout)
}

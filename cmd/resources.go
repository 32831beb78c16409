package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/draeger-lab/TFpredict-sub001/internal/resource"
	"github.com/spf13/cobra"
)

// resourcesCmd is for stamping model artifacts with the current format header
var resourcesCmd = &cobra.Command{
	Use:   "resources [kind] [in] [out]",
	Short: "Write a vocabulary, GO term list or TRANSFAC table in the versioned format",
	Long: `Write a vocabulary, GO term list or TRANSFAC table in the versioned format.

[kind] is one of "vocabulary", "goterms" or "transfac". The input may be a plain
list or table, or an artifact of an older format version. The output starts with
a "#tfpredict <kind> v<version>" header; tables are sorted by key. Without [out]
the artifact is written to stdout.`,
	Example:                    "  tfpredict resources transfac transfac_classes.txt transfac.tsv",
	Args:                       cobra.RangeArgs(2, 3),
	RunE:                       runResources,
	SuggestionsMinimumDistance: 2,
}

func init() {
	RootCmd.AddCommand(resourcesCmd)
}

// writeResource reads the artifact of a kind at inPath and writes it to w
func writeResource(w io.Writer, kind, inPath string) error {
	switch kind {
	case resource.KindVocabulary, resource.KindGOTerms:
		list, err := resource.LoadList(inPath)
		if err != nil {
			return err
		}
		return resource.WriteList(w, kind, list)
	case resource.KindTransfac:
		table, err := resource.LoadTable(inPath)
		if err != nil {
			return err
		}
		return resource.WriteTable(w, kind, table)
	default:
		return fmt.Errorf("unknown resource kind %q", kind)
	}
}

// runResources is the resources command's entry point
func runResources(cmd *cobra.Command, args []string) error {
	kind, in := args[0], args[1]
	if kind != resource.KindVocabulary && kind != resource.KindGOTerms && kind != resource.KindTransfac {
		return fmt.Errorf("unknown resource kind %q, expected %s, %s or %s",
			kind, resource.KindVocabulary, resource.KindGOTerms, resource.KindTransfac)
	}
	if len(args) < 3 {
		return writeResource(cmd.OutOrStdout(), kind, in)
	}

	f, err := os.Create(args[2])
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", args[2], err)
	}

	err = writeResource(f, kind, in)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return err
}

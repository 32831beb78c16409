package cmd

import (
	"github.com/draeger-lab/TFpredict-sub001/config"
	"github.com/draeger-lab/TFpredict-sub001/internal/gofilter"
	"github.com/draeger-lab/TFpredict-sub001/internal/ontology"
	"github.com/spf13/cobra"
)

// filterCmd is for removing mislabeled sequences from a training set
var filterCmd = &cobra.Command{
	Use:   "filter [in.fa] [out.fa]",
	Short: "Remove training sequences whose TF label contradicts their GO terms",
	Long: `Remove training sequences whose TF label contradicts their GO terms.

Headers are read as "|" separated tokens. Tokens starting with "GO:" are comma
separated GO term lists. A header containing "nonTF" is a non-TF; one containing
"TF" otherwise is a TF. A TF without a GO term descending from a TF term, and a
non-TF with one, are contradictions and are dropped. Sequences without GO terms
are dropped too. Spaces in the headers written are replaced by "_".`,
	Example:                    "  tfpredict filter train.fa train.filtered.fa --ontology gene_ontology.obo",
	Args:                       cobra.ExactArgs(2),
	PreRunE:                    func(cmd *cobra.Command, args []string) error { return bindFlags(cmd, filterKeys) },
	RunE:                       runFilter,
	SuggestionsMinimumDistance: 2,
}

// filterKeys maps settings keys to the filter command's flags
var filterKeys = map[string]string{
	"filter.ontology": "ontology",
	"filter.tf-terms": "tf-terms",
}

// set flags
func init() {
	filterCmd.Flags().StringP("ontology", "g", "", "Gene Ontology OBO file")
	filterCmd.Flags().StringSliceP("tf-terms", "t", gofilter.DefaultTFTerms, "GO terms whose descendants mark a TF")

	RootCmd.AddCommand(filterCmd)
}

// runFilter is the filter command's entry point
func runFilter(cmd *cobra.Command, args []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}
	if err := conf.ValidateFilter(); err != nil {
		return err
	}

	o, err := ontology.Load(conf.Filter.Ontology)
	if err != nil {
		return err
	}

	f := gofilter.New(o)
	f.TFTerms = conf.Filter.TFTerms

	stats, err := f.RunFiles(args[0], args[1])
	if err != nil {
		return err
	}
	stderr.Println(stats)
	return nil
}

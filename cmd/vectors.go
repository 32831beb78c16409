package cmd

import (
	"fmt"
	"os"

	"github.com/draeger-lab/TFpredict-sub001/config"
	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"github.com/draeger-lab/TFpredict-sub001/internal/ipr"
	"github.com/draeger-lab/TFpredict-sub001/internal/resource"
	"github.com/spf13/cobra"
)

// vectorsCmd is for exporting the feature vectors of proteins
var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Write the domain feature vectors of proteins in libsvm format",
	Long: `Write the domain feature vectors of proteins in libsvm format.

Each protein with at least one domain of the vocabulary gets a line
"<label> <column>:1 ...", the input format of liblinear's train. Proteins
without a vocabulary domain are skipped.`,
	Example:                    "  tfpredict vectors --ipr-out tfs.raw --vocabulary iprs.txt --label 1 --out tfs.libsvm",
	PreRunE:                    func(cmd *cobra.Command, args []string) error { return bindFlags(cmd, vectorsKeys) },
	RunE:                       runVectors,
	SuggestionsMinimumDistance: 2,
}

// vectorsKeys maps settings keys to the vectors command's flags
var vectorsKeys = map[string]string{
	"model.vocabulary":    "vocabulary",
	"model.feature-start": "feature-start",
	"iprscan.path":        "iprscan",
}

// set flags
func init() {
	vectorsCmd.Flags().StringP("in", "i", "", "FASTA file of protein sequences to run InterProScan on")
	vectorsCmd.Flags().StringP("ipr-out", "r", "", "raw InterProScan output to read rather than running InterProScan")
	vectorsCmd.Flags().StringP("out", "o", "", "libsvm file to write (default is stdout)")
	vectorsCmd.Flags().String("vocabulary", "", "domain list defining the feature columns")
	vectorsCmd.Flags().String("iprscan", "", "path to the iprscan executable")
	vectorsCmd.Flags().Int("feature-start", features.DefaultStart, "column offset of the domain features")
	vectorsCmd.Flags().IntP("label", "l", 0, "class label of every vector, ex: 1 for TFs and 0 for non-TFs")

	RootCmd.AddCommand(vectorsCmd)
}

// runVectors is the vectors command's entry point
func runVectors(cmd *cobra.Command, args []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}
	if err := conf.ValidateVectors(); err != nil {
		return err
	}

	vocabulary, err := resource.LoadList(conf.Model.Vocabulary)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd, conf)
	if err != nil {
		return fmt.Errorf("failed to read InterProScan output: %w", err)
	}

	vectors := features.EncodeAll(ipr.CollectDomains(records), vocabulary, conf.Model.FeatureStart)
	label, _ := cmd.Flags().GetInt("label")

	if err := writeVectors(cmd, vectors, label); err != nil {
		return err
	}
	stderr.Printf("%d vectors written.", len(vectors.IDs))
	return nil
}

// writeVectors writes vectors to --out, or the command's output if it's unset
func writeVectors(cmd *cobra.Command, vectors *features.Vectors, label int) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return vectors.WriteLibSVM(cmd.OutOrStdout(), label)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", out, err)
	}

	err = vectors.WriteLibSVM(f, label)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write vectors to %s: %v", out, err)
	}
	return nil
}

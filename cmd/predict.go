package cmd

import (
	"fmt"

	"github.com/draeger-lab/TFpredict-sub001/config"
	"github.com/draeger-lab/TFpredict-sub001/internal/features"
	"github.com/draeger-lab/TFpredict-sub001/internal/ipr"
	"github.com/draeger-lab/TFpredict-sub001/internal/predict"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// predictCmd is for classifying the proteins of a FASTA file
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict whether proteins are transcription factors",
	Long: `Predict whether proteins are transcription factors from their InterPro domains.

"tfpredict predict" runs InterProScan on a FASTA file of protein sequences,
or reads the raw output of an earlier run with --ipr-out, and:

1. Classifies each protein with a domain in the model's vocabulary as a
   transcription factor (TF) or not (Non-TF)
2. Reports the binding sites and TRANSFAC class of the domains annotated
   with a relevant GO term
3. Predicts the superclass of proteins that are more likely TFs than not`,
	Example: `  tfpredict predict --in proteins.fa --model tf.model --vocabulary iprs.txt --go-terms goterms.txt --transfac transfac.tsv
  tfpredict predict --ipr-out proteins.raw --out predictions.json`,
	PreRunE:                    func(cmd *cobra.Command, args []string) error { return bindFlags(cmd, predictKeys) },
	RunE:                       runPredict,
	SuggestionsMinimumDistance: 2,
}

// predictKeys maps settings keys to the predict command's flags
var predictKeys = map[string]string{
	"model.primary":          "model",
	"model.super":            "super-model",
	"model.vocabulary":       "vocabulary",
	"model.super-vocabulary": "super-vocabulary",
	"model.go-terms":         "go-terms",
	"model.transfac":         "transfac",
	"model.feature-start":    "feature-start",
	"iprscan.path":           "iprscan",
}

// set flags
func init() {
	predictCmd.Flags().StringP("in", "i", "", "FASTA file of protein sequences to run InterProScan on")
	predictCmd.Flags().StringP("ipr-out", "r", "", "raw InterProScan output to read rather than running InterProScan")
	predictCmd.Flags().StringP("out", "o", "", "JSON file to write the predictions to")
	predictCmd.Flags().StringP("model", "m", "", "liblinear TF/non-TF model")
	predictCmd.Flags().StringP("super-model", "s", "", "liblinear superclass model")
	predictCmd.Flags().String("vocabulary", "", "domain list of the TF/non-TF model")
	predictCmd.Flags().String("super-vocabulary", "", "domain list of the superclass model")
	predictCmd.Flags().String("go-terms", "", "list of relevant GO terms")
	predictCmd.Flags().String("transfac", "", "domain name to TRANSFAC class table")
	predictCmd.Flags().String("iprscan", "", "path to the iprscan executable")
	predictCmd.Flags().Int("feature-start", features.DefaultStart, "column offset of the domain features")

	RootCmd.AddCommand(predictCmd)
}

// bindFlags binds settings keys to a command's flags. Commands share keys,
// so binding happens once the command to run is known.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s to %s: %v", flag, key, err)
		}
	}
	return nil
}

// readRecords reads raw InterProScan output from --ipr-out, or creates
// it by running InterProScan on the sequences in --in
func readRecords(cmd *cobra.Command, conf *config.Config) ([]ipr.Record, error) {
	if iprOut, _ := cmd.Flags().GetString("ipr-out"); iprOut != "" {
		return ipr.ReadRecordsFile(iprOut)
	}

	in, _ := cmd.Flags().GetString("in")
	if in == "" {
		return nil, fmt.Errorf("%w: in or ipr-out", config.ErrMissingOption)
	}

	scanner := &ipr.Scanner{Path: conf.IPRScan.Path, Args: conf.IPRScan.Args}
	return scanner.Scan(in)
}

// runPredict is the predict command's entry point
func runPredict(cmd *cobra.Command, args []string) error {
	conf, err := config.New()
	if err != nil {
		return err
	}
	if err := conf.ValidatePredict(); err != nil {
		return err
	}

	predictor, err := predict.Load(conf)
	if err != nil {
		return err
	}

	records, err := readRecords(cmd, conf)
	if err != nil {
		return fmt.Errorf("failed to read InterProScan output: %w", err)
	}

	report, err := predictor.Predict(records)
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout()); err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if _, err := report.WriteJSON(out); err != nil {
			return err
		}
	}
	return nil
}

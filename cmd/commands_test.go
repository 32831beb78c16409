package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/draeger-lab/TFpredict-sub001/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetCommands clears settings and flag values left over from an earlier run
func resetCommands() {
	viper.Reset()
	config.SetDefaults(viper.GetViper())

	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(strings.Split(strings.Trim(f.DefValue, "[]"), ","))
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}

	RootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range RootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// execute runs tfpredict with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetCommands()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

// writeFile writes contents to name in dir and returns its path
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// iprLine joins InterProScan raw output fields
func iprLine(fields ...string) string {
	return strings.Join(fields, "\t") + "\n"
}

// fixtures are the input files of a command run
type fixtures struct {
	dir, raw, vocab, vocab2, model, goTerms, transfac string
}

func newFixtures(t *testing.T) fixtures {
	dir := t.TempDir()
	raw := iprLine("P1", "8D1E2F", "305", "HMMPfam", "PF00010", "bHLH-domain", "10", "60", "1.1e-12", "T", "06-Oct-2010", "IPR000001", "Myc-type", "transcription factor activity (GO:0003700)") +
		iprLine("P2", "8D1E2F", "305", "HMMPfam", "PF00046", "Homeobox", "5", "40", "1.1e-12", "T", "06-Oct-2010", "IPR000002")

	return fixtures{
		dir:      dir,
		raw:      writeFile(t, dir, "proteins.raw", raw),
		vocab:    writeFile(t, dir, "voc.txt", "IPR000001\nIPR000002\n"),
		vocab2:   writeFile(t, dir, "voc2.txt", "IPR000002\n"),
		model:    writeFile(t, dir, "tf.model", "solver_type L2R_LR\nnr_class 2\nlabel 1 0\nnr_feature 1\nbias -1\nw\n0\n"),
		goTerms:  writeFile(t, dir, "goterms.txt", "GO:0003700\n"),
		transfac: writeFile(t, dir, "transfac.tsv", "BHLH\t1.2\n"),
	}
}

func Test_vectorsSettings(t *testing.T) {
	fx := newFixtures(t)
	settings := writeFile(t, fx.dir, ".tfpredict.yaml", "model:\n  vocabulary: "+fx.vocab2+"\n  feature-start: 0\n")

	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{
			"settings file",
			"",
			[]string{"--config", settings},
			"0 1:1\n",
		},
		{
			"flags over settings file",
			"",
			[]string{"--config", settings, "--vocabulary", fx.vocab, "--feature-start", "5"},
			"0 6:1\n0 7:1\n",
		},
		{
			"env over settings file",
			"3",
			[]string{"--config", settings},
			"0 4:1\n",
		},
		{
			"flags over env",
			"3",
			[]string{"--config", settings, "--feature-start", "5"},
			"0 6:1\n",
		},
		{
			"defaults",
			"",
			[]string{"--vocabulary", fx.vocab},
			"0 11:1\n0 12:1\n",
		},
		{
			"label",
			"",
			[]string{"--config", settings, "--label", "1"},
			"1 1:1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("TFPREDICT_MODEL_FEATURE_START", tt.env)
			}

			args := append([]string{"vectors", "--ipr-out", fx.raw}, tt.args...)
			got, err := execute(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("vectors = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_vectorsOut(t *testing.T) {
	fx := newFixtures(t)
	out := filepath.Join(fx.dir, "tfs.libsvm")

	stdout, err := execute(t, "vectors", "--ipr-out", fx.raw, "--vocabulary", fx.vocab, "--out", out)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("vectors wrote %q to stdout with --out", stdout)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "0 11:1\n0 12:1\n"; string(written) != want {
		t.Errorf("vectors --out = %q, want %q", written, want)
	}

	_, err = execute(t, "vectors", "--ipr-out", fx.raw, "--vocabulary", fx.vocab, "--out", filepath.Join(fx.dir, "missing", "tfs.libsvm"))
	if err == nil {
		t.Error("vectors expected an error for an unwritable --out")
	}
}

func Test_predict(t *testing.T) {
	fx := newFixtures(t)
	settings := writeFile(t, fx.dir, ".tfpredict.yaml",
		"model:\n  primary: "+fx.model+"\n  go-terms: "+fx.goTerms+"\n  transfac: "+fx.transfac+"\n")
	jsonOut := filepath.Join(fx.dir, "predictions.json")

	// predict and vectors share model.vocabulary, predict's flag has to be the one read
	got, err := execute(t, "predict", "--config", settings, "--ipr-out", fx.raw, "--vocabulary", fx.vocab, "--out", jsonOut)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Prediction Results:\nID\tTF\tNon-TF\nP1\t0.50\t0.50\n",
		"Binding side(s):\nID\tstart\tend\nP1    10\t60\n",
		"ID\tTransfac\nP1\t1.2.0.0.0.\n",
		"P2\t0.50\t0.50\nNo binding information and transfac class found.\n",
		"Missing annotations:\nMYC TYPE\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("predict = %q, missing %q", got, want)
		}
	}

	if _, err := os.Stat(jsonOut); err != nil {
		t.Errorf("predict didn't write --out: %v", err)
	}
}

func Test_predictErrors(t *testing.T) {
	fx := newFixtures(t)
	settings := writeFile(t, fx.dir, ".tfpredict.yaml",
		"model:\n  primary: "+fx.model+"\n  go-terms: "+fx.goTerms+"\n  transfac: "+fx.transfac+"\n")

	tests := []struct {
		name    string
		args    []string
		missing string
	}{
		{
			"no vocabulary",
			[]string{"predict", "--config", settings, "--ipr-out", fx.raw},
			"model.vocabulary",
		},
		{
			"no input",
			[]string{"predict", "--config", settings, "--vocabulary", fx.vocab},
			"in or ipr-out",
		},
		{
			"no settings",
			[]string{"predict", "--ipr-out", fx.raw, "--vocabulary", fx.vocab},
			"model.primary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, config.ErrMissingOption) {
				t.Fatalf("predict error = %v, want %v", err, config.ErrMissingOption)
			}
			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("predict error = %v, want it to name %s", err, tt.missing)
			}
		})
	}

	if _, err := execute(t, "predict", "--config", filepath.Join(fx.dir, "missing.yaml")); err == nil {
		t.Error("predict expected an error for a missing settings file")
	}
}

const commandOBO = `[Term]
id: GO:0001071
name: nucleic acid binding transcription factor activity

[Term]
id: GO:0003700
name: sequence-specific DNA binding transcription factor activity
is_a: GO:0001071

[Term]
id: GO:0005634
name: nucleus
`

func Test_filter(t *testing.T) {
	dir := t.TempDir()
	obo := writeFile(t, dir, "go.obo", commandOBO)
	in := writeFile(t, dir, "train.fa", ">P1|TF|GO:0003700\nMKV\n>P2|TF|GO:0005634\nMAA\n>P3 nonTF|GO:0005634\nMCC\n")
	out := filepath.Join(dir, "train.filtered.fa")

	if _, err := execute(t, "filter", in, out, "--ontology", obo); err != nil {
		t.Fatal(err)
	}

	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{">P1|TF|GO:0003700", ">P3_nonTF|GO:0005634"} {
		if !strings.Contains(string(written), want) {
			t.Errorf("filter output = %q, missing %q", written, want)
		}
	}
	if strings.Contains(string(written), "P2") {
		t.Errorf("filter output = %q, kept the mislabeled P2", written)
	}

	if _, err := execute(t, "filter", in, out); !errors.Is(err, config.ErrMissingOption) {
		t.Errorf("filter error = %v, want %v", err, config.ErrMissingOption)
	}
}

func Test_resources(t *testing.T) {
	dir := t.TempDir()
	table := writeFile(t, dir, "transfac.txt", "ZIP\t1.1\nBHLH\t1.2\n")
	list := writeFile(t, dir, "goterms.txt", "GO:0003700\nGO:0001071\n")

	got, err := execute(t, "resources", "transfac", table)
	if err != nil {
		t.Fatal(err)
	}
	if want := "#tfpredict transfac v1\nBHLH\t1.2\nZIP\t1.1\n"; got != want {
		t.Errorf("resources transfac = %q, want %q", got, want)
	}

	out := filepath.Join(dir, "goterms.v1.txt")
	if _, err := execute(t, "resources", "goterms", list, out); err != nil {
		t.Fatal(err)
	}
	written, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := "#tfpredict goterms v1\nGO:0003700\nGO:0001071\n"; string(written) != want {
		t.Errorf("resources goterms = %q, want %q", written, want)
	}

	if _, err := execute(t, "resources", "model", list); err == nil {
		t.Error("resources expected an error for an unknown kind")
	}
}

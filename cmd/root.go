// Package cmd is for command line interactions with the tfpredict application
package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)

	// cfgFile is the path to a settings file passed with --config
	cfgFile string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "tfpredict",
	Short: `Predict transcription factors from protein sequences using their
InterPro domains. Reports binding sites, TRANSFAC classes and superclasses`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
// Errors of every command end the process here.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		stderr.Fatalln(err)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $HOME/.tfpredict.yaml)")
}

// initConfig reads in the settings file and TFPREDICT_ environment variables
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".tfpredict")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("tfpredict")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read settings file: %v", err)
		}
	}
	return nil
}

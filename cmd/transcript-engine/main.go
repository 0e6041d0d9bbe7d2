// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the transcript-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the transcript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "transcript-engine",
	Short: "Convert and aggregate qualitative-research interview transcripts",
	Long: `transcript-engine manages interview transcripts stored as
transcript_PATIENT_NNN.docx files in a working directory.

regenerate rebuilds genuine DOCX containers from transcripts that are
really plaintext mislabeled with a .docx extension, preserving the
original text in a .orig.txt backup sidecar. aggregate concatenates all
transcripts into a single UTF-8 corpus file for import into qualitative
analysis tools such as NVivo or Atlas.ti. catalog inspects the state
recorded by both pipelines.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./transcript-engine.yaml or ~/.config/transcript-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("transcript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "transcript-engine"))
		}
	}

	viper.SetEnvPrefix("TRANSCRIPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string option: an explicitly set flag wins,
// then the config file, then the flag's declared default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// intSetting resolves an integer option with the same precedence as
// stringSetting.
func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

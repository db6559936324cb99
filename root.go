package main

import (
	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/server"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
)

var rootCmd = &cobra.Command{
	Use:   "yomi",
	Short: "Japanese furigana annotation engine and service",
	Long: `yomi annotates Japanese text with readings (furigana).

Text is split into words, every word is classified by script and kanji words
get a hiragana reading, rendered inline as 漢字(かんじ) or as HTML ruby.
Images can be read with Azure or Tesseract OCR first.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.yomi/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	registry := api.NewRegistry()
	for _, ep := range server.Endpoints(nil) {
		registry.Register(ep)
	}
	apiCmd := registry.BuildCommands(func() string { return serverURL })
	apiCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "yomi server URL")

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(versionCmd)
}

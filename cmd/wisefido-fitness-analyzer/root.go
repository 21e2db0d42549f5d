package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "wisefido-fitness-analyzer",
	Short: "Batch health monitoring and fitness plan assessment",
	Long: "wisefido-fitness-analyzer validates batches of user health records (CSV, JSON\n" +
		"or XLSX), computes per-user fitness assessments and renders Markdown reports,\n" +
		"JSON artifacts and Excel workbooks.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

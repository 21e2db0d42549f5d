package main

import (
	"fmt"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/parser"
	"wisefido-fitness-analyzer/internal/report"
	"wisefido-fitness-analyzer/internal/service"

	"github.com/spf13/cobra"
)

var validateFlags struct {
	input  string
	format string
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a batch file without computing assessments",
	Long: `Parse a batch of user health records and print the data validation
report. No assessments are computed.

The command exits with a non-zero status when the batch contains
validation errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFlags.input, "input", "i", "", "Input file path, or - for stdin")
	f.StringVarP(&validateFlags.format, "format", "f", "auto", "Input format: auto, csv, json or xlsx")
	f.StringVarP(&validateFlags.output, "output", "o", "", "Validation report path (default: stdout)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := validateFlags.input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("input file is required\n\nUsage: wisefido-fitness-analyzer validate <input-file>")
	}

	format, err := parser.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	data, err := readInput(input)
	if err != nil {
		return err
	}

	svc := service.NewAnalyzerService(cfg, calculator.DefaultPolicy(), log)
	validation, err := svc.ValidateBatch(cmd.Context(), data, format)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(calculator.DefaultPolicy())
	if err := writeOutput(validateFlags.output, []byte(renderer.RenderValidation(validation))); err != nil {
		return err
	}

	if validation.HasErrors() {
		return fmt.Errorf("batch failed validation with %d error(s)", len(validation.Errors))
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/export"
	"wisefido-fitness-analyzer/internal/models"
	"wisefido-fitness-analyzer/internal/parser"
	"wisefido-fitness-analyzer/internal/report"
	"wisefido-fitness-analyzer/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	input        string
	format       string
	output       string
	jsonOut      string
	xlsxOut      string
	policyPath   string
	workers      int
	allowPartial bool
	summary      bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-file]",
	Short: "Run the health assessment pipeline on a batch file",
	Long: `Validate a batch of user health records and compute a fitness assessment
for every record that passes validation.

Usage:
  wisefido-fitness-analyzer analyze batch.csv              # Input file as positional arg
  wisefido-fitness-analyzer analyze --input batch.json     # Input file as flag
  cat batch.csv | wisefido-fitness-analyzer analyze -i -   # Read from stdin

By default the batch is rejected as a whole when any record fails
validation, and only the validation report is printed. Pass
--allow-partial to assess the valid records anyway.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.input, "input", "i", "", "Input file path, or - for stdin")
	f.StringVarP(&analyzeFlags.format, "format", "f", "auto", "Input format: auto, csv, json or xlsx")
	f.StringVarP(&analyzeFlags.output, "output", "o", "", "Markdown report path (default: stdout)")
	f.StringVar(&analyzeFlags.jsonOut, "json-out", "", "Write the full batch result as JSON to this path")
	f.StringVar(&analyzeFlags.xlsxOut, "xlsx-out", "", "Write the batch result as an Excel workbook to this path")
	f.StringVar(&analyzeFlags.policyPath, "policy", "", "Scoring policy YAML path (default: $ANALYZER_POLICY_FILE or built-in)")
	f.IntVar(&analyzeFlags.workers, "workers", 0, "Concurrent assessment workers (default: $ANALYZER_WORKERS or 1)")
	f.BoolVar(&analyzeFlags.allowPartial, "allow-partial", false, "Assess valid records even when the batch has validation errors")
	f.BoolVar(&analyzeFlags.summary, "summary", false, "Append a per-user summary table to the report")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := analyzeFlags.input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("input file is required\n\nUsage: wisefido-fitness-analyzer analyze <input-file>\n       wisefido-fitness-analyzer analyze --input - < batch.csv")
	}

	format, err := parser.ParseFormat(analyzeFlags.format)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	if analyzeFlags.workers > 0 {
		cfg.Analyzer.Workers = analyzeFlags.workers
	}
	policyPath := analyzeFlags.policyPath
	if policyPath == "" {
		policyPath = cfg.Analyzer.PolicyFile
	}

	policy, err := calculator.LoadPolicy(policyPath)
	if err != nil {
		return err
	}

	data, err := readInput(input)
	if err != nil {
		return err
	}

	svc := service.NewAnalyzerService(cfg, policy, log)
	result, err := svc.ProcessBatch(cmd.Context(), data, format)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(policy)

	// 批次存在校验错误时默认整体拒绝，只输出校验报告
	if result.Validation.HasErrors() && !analyzeFlags.allowPartial {
		if err := writeOutput(analyzeFlags.output, []byte(renderer.RenderValidation(&result.Validation))); err != nil {
			return err
		}
		return fmt.Errorf("batch failed validation with %d error(s), rerun with --allow-partial to assess the valid records", len(result.Validation.Errors))
	}

	var out strings.Builder
	if result.Validation.HasErrors() {
		out.WriteString(renderer.RenderValidation(&result.Validation))
		out.WriteString("\n---\n\n")
	}
	out.WriteString(renderer.RenderAssessments(result))
	if analyzeFlags.summary {
		out.WriteString("\n---\n\n")
		out.WriteString(renderer.RenderSummary(result))
	}
	if err := writeOutput(analyzeFlags.output, []byte(out.String())); err != nil {
		return err
	}

	if analyzeFlags.jsonOut != "" {
		artifact, err := export.GenerateJSON(result)
		if err != nil {
			return err
		}
		if err := writeOutput(analyzeFlags.jsonOut, artifact); err != nil {
			return err
		}
	}

	if analyzeFlags.xlsxOut != "" {
		workbook, err := export.GenerateWorkbook(result)
		if err != nil {
			return err
		}
		if err := writeOutput(analyzeFlags.xlsxOut, workbook); err != nil {
			return err
		}
	}

	printBatchSummary(result)
	return nil
}

// printBatchSummary 在 stderr 输出批次概要，避免混入标准输出的报告内容
func printBatchSummary(result *models.BatchResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	status := green(fmt.Sprintf("%d accepted", result.Validation.AcceptedCount))
	if result.Validation.RejectedCount > 0 {
		status += ", " + red(fmt.Sprintf("%d rejected", result.Validation.RejectedCount))
	}
	fmt.Fprintf(os.Stderr, "Processed %d record(s): %s in %s\n",
		result.Validation.Total, status, result.Elapsed)
}

package main

import (
	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/parser"
	"wisefido-fitness-analyzer/internal/report"
	"wisefido-fitness-analyzer/internal/service"

	"github.com/spf13/cobra"
)

// demoBatch 内置演示批次
const demoBatch = `user_id,current_steps,heart_rate,ambient_temperature,environmental_index,activity_intensity_factor
U41,7100,75,20,80,1.1
U42,8200,80,21,85,1.2
U43,9000,90,19,70,1.0
U44,10000,95,18,90,1.3
U45,7500,65,22,75,1.1
U46,8000,70,20,60,1.2
U47,9500,85,23,80,1.0
U48,8700,78,21,88,1.2
U49,9100,92,24,77,1.1
U50,9800,88,19,82,1.0
`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the pipeline on a built-in sample batch",
	Long: `Run the full assessment pipeline on a built-in sample batch of ten
users and print the per-user reports followed by a summary table.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	policy := calculator.DefaultPolicy()
	svc := service.NewAnalyzerService(cfg, policy, log)

	result, err := svc.ProcessBatch(cmd.Context(), []byte(demoBatch), parser.FormatCSV)
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(policy)
	if err := writeOutput("", []byte(renderer.RenderAssessments(result))); err != nil {
		return err
	}
	if err := writeOutput("", []byte("\n---\n\n"+renderer.RenderSummary(result))); err != nil {
		return err
	}

	printBatchSummary(result)
	return nil
}

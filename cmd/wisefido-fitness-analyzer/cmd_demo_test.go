package main

import (
	"context"
	"fmt"
	"math"
	"testing"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/config"
	"wisefido-fitness-analyzer/internal/models"
	"wisefido-fitness-analyzer/internal/parser"
	"wisefido-fitness-analyzer/internal/service"

	"go.uber.org/zap"
)

func TestDemoBatch(t *testing.T) {
	cfg := &config.Config{}
	cfg.Analyzer.Workers = 1

	svc := service.NewAnalyzerService(cfg, calculator.DefaultPolicy(), zap.NewNop())

	result, err := svc.ProcessBatch(context.Background(), []byte(demoBatch), parser.FormatCSV)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Validation.HasErrors() {
		t.Fatalf("Expected clean demo batch, got errors: %v", result.Validation.Errors)
	}

	if len(result.Assessments) != 10 {
		t.Fatalf("Expected 10 assessments, got %d", len(result.Assessments))
	}

	for i, a := range result.Assessments {
		want := fmt.Sprintf("U%d", 41+i)
		if a.UserID != want {
			t.Errorf("Expected user %s at position %d, got %s", want, i, a.UserID)
		}
	}

	// 首条记录与已知结果核对
	u41 := result.Assessments[0]
	if math.Abs(u41.PredictedActivity-7810.00) > 1e-9 {
		t.Errorf("Expected U41 predicted activity 7810.00, got %v", u41.PredictedActivity)
	}
	if math.Abs(u41.CompositeScore-0.89) > 1e-9 {
		t.Errorf("Expected U41 composite score 0.89, got %v", u41.CompositeScore)
	}
	if u41.Recommendation != models.RecommendationContinue {
		t.Errorf("Expected U41 recommendation %q, got %q", models.RecommendationContinue, u41.Recommendation)
	}
	if u41.Status != models.StatusOptimal {
		t.Errorf("Expected U41 status %q, got %q", models.StatusOptimal, u41.Status)
	}
}

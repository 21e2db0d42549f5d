package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T, withErrors bool) *models.BatchResult {
	t.Helper()

	recs := []models.UserRecord{
		{UserID: "U41", CurrentSteps: 7100, HeartRate: 75, AmbientTemperature: 20, EnvironmentalIndex: 80, ActivityIntensityFactor: 1.1},
		{UserID: "U43", CurrentSteps: 9000, HeartRate: 90, AmbientTemperature: 19, EnvironmentalIndex: 70, ActivityIntensityFactor: 1.0},
	}

	calc := calculator.New(calculator.DefaultPolicy())
	result := &models.BatchResult{
		RunID:       "run-abc",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Validation: models.BatchValidation{
			Total:         len(recs),
			AcceptedCount: len(recs),
			FieldsCheck:   map[string]bool{"user_id": true},
		},
		Accepted: recs,
		Elapsed:  3 * time.Millisecond,
	}
	for _, rec := range recs {
		result.Assessments = append(result.Assessments, calc.Compute(rec))
	}

	if withErrors {
		result.Validation.Total++
		result.Validation.RejectedCount = 1
		result.Validation.Errors = []models.ValidationError{
			models.NewOutOfRangeError(3, "environmental_index"),
		}
	}
	return result
}

func TestGenerateWorkbook(t *testing.T) {
	result := sampleResult(t, false)

	data, err := GenerateWorkbook(result)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Assessments")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 data rows

	assert.Equal(t, AssessmentHeader, rows[0])
	assert.Equal(t, []string{
		"U41", "7100", "75", "20", "80", "1.1",
		"7810", "Optimal", "Good", "Ideal Temperature",
		"0.89", "Continue current fitness plan", "Optimal",
	}, rows[1])
	assert.Equal(t, "U43", rows[2][0])
	assert.Equal(t, "0.91", rows[2][10])

	// no error sheet when the batch is clean
	idx, err := f.GetSheetIndex("Validation Errors")
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestGenerateWorkbook_WithErrorSheet(t *testing.T) {
	result := sampleResult(t, true)

	data, err := GenerateWorkbook(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Validation Errors")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ErrorHeader, rows[0])
	assert.Equal(t, []string{"3", "environmental_index", "out_of_range", "environmental_index out of range"}, rows[1])
}

func TestGenerateWorkbook_EmptyBatch(t *testing.T) {
	result := &models.BatchResult{RunID: "run-empty"}

	data, err := GenerateWorkbook(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Assessments")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, AssessmentHeader, rows[0])
}

func TestGenerateJSON(t *testing.T) {
	result := sampleResult(t, true)

	data, err := GenerateJSON(result)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	var decoded models.BatchResult
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "run-abc", decoded.RunID)
	assert.Len(t, decoded.Assessments, 2)
	assert.Len(t, decoded.Accepted, 2)
	assert.InDelta(t, 0.89, decoded.Assessments[0].CompositeScore, 1e-9)
	assert.Equal(t, models.RecommendationContinue, decoded.Assessments[0].Recommendation)
	require.Len(t, decoded.Validation.Errors, 1)
	assert.Equal(t, "environmental_index out of range", decoded.Validation.Errors[0].Message)
}

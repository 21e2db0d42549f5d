// Package export 将批处理结果导出为 Excel 工作簿和 JSON 文件。
package export

import (
	"bytes"
	"fmt"

	"wisefido-fitness-analyzer/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	assessmentSheet = "Assessments"
	errorSheet      = "Validation Errors"
)

// AssessmentHeader 评估结果表头（输入字段在前，计算结果在后）
var AssessmentHeader = []string{
	"User ID",
	"Current Steps",
	"Heart Rate",
	"Ambient Temperature",
	"Environmental Index",
	"Activity Intensity Factor",
	"Predicted Activity",
	"Heart Rate Category",
	"Environmental Quality",
	"Temperature Impact",
	"Composite Score",
	"Recommendation",
	"Status",
}

// ErrorHeader 校验错误表头
var ErrorHeader = []string{
	"Row",
	"Field",
	"Kind",
	"Message",
}

// GenerateWorkbook 生成批处理结果 Excel 文件
//
// Assessments 工作表始终存在；批次包含校验错误时追加 Validation Errors 工作表。
func GenerateWorkbook(result *models.BatchResult) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	index, err := f.NewSheet(assessmentSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	assessmentWidths := []float64{
		12, // User ID
		14, // Current Steps
		12, // Heart Rate
		20, // Ambient Temperature
		18, // Environmental Index
		24, // Activity Intensity Factor
		18, // Predicted Activity
		18, // Heart Rate Category
		20, // Environmental Quality
		18, // Temperature Impact
		16, // Composite Score
		28, // Recommendation
		18, // Status
	}
	if err := writeHeader(f, assessmentSheet, AssessmentHeader, assessmentWidths, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, a := range result.Assessments {
		rec := result.Accepted[i]
		row := i + 2 // 从第2行开始（第1行是表头）
		values := []any{
			a.UserID,
			rec.CurrentSteps,
			rec.HeartRate,
			rec.AmbientTemperature,
			rec.EnvironmentalIndex,
			rec.ActivityIntensityFactor,
			a.PredictedActivity,
			string(a.HeartRateCategory),
			string(a.EnvironmentalCategory),
			string(a.TemperatureImpact),
			a.CompositeScore,
			string(a.Recommendation),
			string(a.Status),
		}
		if err := writeRow(f, assessmentSheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := freezeHeader(f, assessmentSheet); err != nil {
		f.Close()
		return nil, err
	}

	if result.Validation.HasErrors() {
		if err := writeErrorSheet(f, &result.Validation, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Write to bytes buffer
	// Note: File must remain open during Write operation
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

// writeErrorSheet 写入校验错误工作表
func writeErrorSheet(f *excelize.File, v *models.BatchValidation, headerStyle int) error {
	if _, err := f.NewSheet(errorSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	errorWidths := []float64{
		8,  // Row
		26, // Field
		16, // Kind
		40, // Message
	}
	if err := writeHeader(f, errorSheet, ErrorHeader, errorWidths, headerStyle); err != nil {
		return err
	}

	for i, e := range v.Errors {
		values := []any{e.Row, e.Field, string(e.Kind), e.Message}
		if err := writeRow(f, errorSheet, i+2, values); err != nil {
			return err
		}
	}

	return freezeHeader(f, errorSheet)
}

// newHeaderStyle 创建表头样式
func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// writeHeader 写入表头并设置列宽
func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(widths) && widths[i] > 0 {
			if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	return nil
}

// writeRow 按列顺序写入一行数据
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell value at %s: %w", cell, err)
		}
	}
	return nil
}

// freezeHeader 冻结表头行
func freezeHeader(f *excelize.File, sheet string) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

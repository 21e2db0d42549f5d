package parser

import (
	"bytes"
	"strings"

	"wisefido-fitness-analyzer/internal/models"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// parseXLSX 解析 XLSX 批次（取第一个工作表，首行为表头）
//
// excelize 的 GetRows 会裁掉行尾空单元格，缺失的单元格按
// 空字符串处理；完全为空的行跳过并记录警告。
func (p *Parser) parseXLSX(data []byte) ([]models.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedBatchError{Format: FormatXLSX, Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &MalformedBatchError{Format: FormatXLSX, Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &MalformedBatchError{Format: FormatXLSX, Reason: "failed to read rows", Err: err}
	}
	if len(rows) == 0 {
		return nil, &MalformedBatchError{Format: FormatXLSX, Reason: "missing header row"}
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		if len(row) == 0 {
			p.logger.Warn("skipping empty XLSX row", zap.Int("row", rowNum))
			continue
		}

		fields := make(map[string]any, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(row) {
				fields[name] = row[j]
			} else {
				fields[name] = ""
			}
		}
		records = append(records, models.RawRecord{Row: rowNum, Fields: fields})
	}

	return records, nil
}

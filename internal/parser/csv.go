package parser

import (
	"bytes"
	"encoding/csv"
	"strings"

	"wisefido-fitness-analyzer/internal/models"

	"go.uber.org/zap"
)

// parseCSV 解析 CSV 批次
//
// 首行为表头（标准表头：user_id,current_steps,heart_rate,
// ambient_temperature,environmental_index,activity_intensity_factor，
// 允许额外列，按列名匹配）。所有值以字符串形式进入 RawRecord，
// 数值转换由 validator 完成。
//
// 列数与表头不一致的数据行跳过并记录警告；被跳过的行仍占用
// 行号，保证错误行号与数据源行号一致。
func (p *Parser) parseCSV(data []byte) ([]models.RawRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedBatchError{Format: FormatCSV, Reason: "invalid CSV", Err: err}
	}
	if len(rows) == 0 {
		return nil, &MalformedBatchError{Format: FormatCSV, Reason: "missing header row"}
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		if len(row) != len(header) {
			p.logger.Warn("skipping CSV row with unexpected column count",
				zap.Int("row", rowNum),
				zap.Int("columns", len(row)),
				zap.Int("expected", len(header)))
			continue
		}

		fields := make(map[string]any, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			fields[name] = row[j]
		}
		records = append(records, models.RawRecord{Row: rowNum, Fields: fields})
	}

	return records, nil
}

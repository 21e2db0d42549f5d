// Package parser 提供批次数据解析功能
//
// 将 CSV / JSON / XLSX 三种来源的输入统一解析为原始记录序列，
// 并保留每条记录在数据源中的行号。解析只负责结构，不做字段级
// 校验和数值转换（由 validator 负责）。
package parser

import (
	"bytes"
	"fmt"

	"wisefido-fitness-analyzer/internal/models"

	"go.uber.org/zap"
)

// Format 输入数据格式
type Format string

const (
	FormatAuto Format = "auto" // 根据内容自动识别
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat 将命令行取值转换为 Format
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAuto, FormatCSV, FormatJSON, FormatXLSX:
		return Format(s), nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected auto, csv, json or xlsx)", s)
	}
}

// MalformedBatchError 批次整体无法解析时返回的致命错误
//
// 字段级问题（缺失、类型、越界）由校验阶段以 ValidationError
// 收集，不使用该错误。
type MalformedBatchError struct {
	Format Format // 解析时采用的格式
	Reason string
	Err    error
}

func (e *MalformedBatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed batch: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed batch: %s", e.Reason)
}

func (e *MalformedBatchError) Unwrap() error { return e.Err }

// Parser 批次数据解析器
type Parser struct {
	logger *zap.Logger
}

// New 创建批次数据解析器
func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse 解析一个批次
//
// format 为 FormatAuto 时根据内容识别格式；无法识别或结构
// 无法解析时返回 *MalformedBatchError。
func (p *Parser) Parse(data []byte, format Format) ([]models.RawRecord, error) {
	// 去除 UTF-8 BOM（Excel 导出的 CSV 常见）
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if format == FormatAuto || format == "" {
		detected, ok := detectFormat(data)
		if !ok {
			return nil, &MalformedBatchError{Format: FormatAuto, Reason: "unrecognized input format"}
		}
		format = detected
		p.logger.Debug("input format detected", zap.String("format", string(format)))
	}

	switch format {
	case FormatCSV:
		return p.parseCSV(data)
	case FormatJSON:
		return p.parseJSON(data)
	case FormatXLSX:
		return p.parseXLSX(data)
	default:
		return nil, &MalformedBatchError{Format: format, Reason: fmt.Sprintf("unsupported format %q", format)}
	}
}

// detectFormat 根据内容识别输入格式
//
// 识别顺序：XLSX（zip 魔数）> JSON（{ 或 [ 开头）> CSV（首行含逗号）
func detectFormat(data []byte) (Format, bool) {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return FormatXLSX, true
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", false
	}

	switch trimmed[0] {
	case '{', '[':
		return FormatJSON, true
	}

	firstLine := trimmed
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		firstLine = trimmed[:i]
	}
	if bytes.IndexByte(firstLine, ',') >= 0 {
		return FormatCSV, true
	}

	return "", false
}

// toRawRecords 为解析出的字段表分配 1 起始的行号
func toRawRecords(items []map[string]any) []models.RawRecord {
	records := make([]models.RawRecord, 0, len(items))
	for i, fields := range items {
		records = append(records, models.RawRecord{Row: i + 1, Fields: fields})
	}
	return records
}

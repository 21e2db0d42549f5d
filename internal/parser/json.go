package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"wisefido-fitness-analyzer/internal/models"
)

// parseJSON 解析 JSON 批次
//
// 支持三种形态：
// - {"users": [ {...}, ... ]} 信封格式
// - 单个记录对象
// - 顶层记录数组
func (p *Parser) parseJSON(data []byte) ([]models.RawRecord, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []map[string]any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &MalformedBatchError{Format: FormatJSON, Reason: "invalid JSON array", Err: err}
		}
		return toRawRecords(items), nil
	}

	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, &MalformedBatchError{Format: FormatJSON, Reason: "invalid JSON object", Err: err}
	}

	users, ok := obj["users"]
	if !ok {
		// 无 users 键时整个对象视为单条记录
		return toRawRecords([]map[string]any{obj}), nil
	}

	list, ok := users.([]any)
	if !ok {
		return nil, &MalformedBatchError{Format: FormatJSON, Reason: `"users" is not an array`}
	}

	items := make([]map[string]any, 0, len(list))
	for i, item := range list {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedBatchError{
				Format: FormatJSON,
				Reason: fmt.Sprintf(`"users"[%d] is not an object`, i),
			}
		}
		items = append(items, fields)
	}
	return toRawRecords(items), nil
}

package export

import (
	"encoding/json"
	"fmt"

	"wisefido-fitness-analyzer/internal/models"
)

// GenerateJSON 生成批处理结果 JSON 文件内容（缩进格式，末尾换行）
func GenerateJSON(result *models.BatchResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

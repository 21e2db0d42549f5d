package config

import (
	"os"
	"strconv"
)

// Config 健身数据分析服务配置
type Config struct {
	// 分析器特定配置
	Analyzer struct {
		// 计算阶段并发度。1 = 顺序处理（默认，常规批次规模足够）；
		// >1 时按原始行序重新合并结果
		Workers int

		// 评分策略文件路径（YAML），为空时使用内置默认策略
		PolicyFile string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（默认值）
	workersStr := getEnv("ANALYZER_WORKERS", "1")
	if v, err := strconv.Atoi(workersStr); err == nil && v > 0 {
		cfg.Analyzer.Workers = v
	} else {
		cfg.Analyzer.Workers = 1 // 默认顺序处理
	}

	cfg.Analyzer.PolicyFile = getEnv("ANALYZER_POLICY_FILE", "")

	// CLI 工具默认 console 格式；接入日志收集时设置 LOG_FORMAT=json
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "console")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

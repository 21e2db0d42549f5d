package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	// 清除环境变量
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 检查默认值
	if cfg.Analyzer.Workers != 1 {
		t.Errorf("Expected ANALYZER_WORKERS default 1, got %d", cfg.Analyzer.Workers)
	}

	if cfg.Analyzer.PolicyFile != "" {
		t.Errorf("Expected ANALYZER_POLICY_FILE default '', got '%s'", cfg.Analyzer.PolicyFile)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}

	if cfg.Log.Format != "console" {
		t.Errorf("Expected LOG_FORMAT default 'console', got '%s'", cfg.Log.Format)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// 设置环境变量
	os.Setenv("ANALYZER_WORKERS", "8")
	os.Setenv("ANALYZER_POLICY_FILE", "/etc/analyzer/policy.yaml")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")

	defer func() {
		os.Unsetenv("ANALYZER_WORKERS")
		os.Unsetenv("ANALYZER_POLICY_FILE")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 检查环境变量值
	if cfg.Analyzer.Workers != 8 {
		t.Errorf("Expected ANALYZER_WORKERS 8, got %d", cfg.Analyzer.Workers)
	}

	if cfg.Analyzer.PolicyFile != "/etc/analyzer/policy.yaml" {
		t.Errorf("Expected ANALYZER_POLICY_FILE '/etc/analyzer/policy.yaml', got '%s'", cfg.Analyzer.PolicyFile)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Expected LOG_FORMAT 'json', got '%s'", cfg.Log.Format)
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	// 非法并发度回退到默认值
	os.Setenv("ANALYZER_WORKERS", "not-a-number")
	defer os.Unsetenv("ANALYZER_WORKERS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Analyzer.Workers != 1 {
		t.Errorf("Expected fallback workers 1, got %d", cfg.Analyzer.Workers)
	}

	// 0 或负数同样回退
	os.Setenv("ANALYZER_WORKERS", "0")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Analyzer.Workers != 1 {
		t.Errorf("Expected fallback workers 1, got %d", cfg.Analyzer.Workers)
	}
}

func TestGetEnv(t *testing.T) {
	// 测试环境变量存在
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	value := getEnv("TEST_VAR", "default")
	if value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	// 测试环境变量不存在，使用默认值
	value = getEnv("NON_EXISTENT_VAR", "default-value")
	if value != "default-value" {
		t.Errorf("Expected 'default-value', got '%s'", value)
	}
}

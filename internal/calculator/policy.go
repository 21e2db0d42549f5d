package calculator

import (
	"fmt"
	"os"

	"wisefido-fitness-analyzer/internal/models"

	"gopkg.in/yaml.v3"
)

// ScoringPolicy 综合健身评分策略
//
// 分类阈值（心率 60/100、环境指数 50/75、温度 15/25）是固定契约，
// 不属于策略；策略只覆盖评分权重、归一化基准、分类系数和建议阈值。
type ScoringPolicy struct {
	ActivityWeight     float64 `yaml:"activity_weight"`     // 活动量分项权重
	HeartRateWeight    float64 `yaml:"heart_rate_weight"`   // 心率分项权重
	EnvironmentWeight  float64 `yaml:"environment_weight"`  // 环境分项权重
	ActivityNormalizer float64 `yaml:"activity_normalizer"` // 活动量归一化基准（步数）

	HeartRateFactors   map[models.HeartRateCategory]float64     `yaml:"heart_rate_factors"`
	EnvironmentFactors map[models.EnvironmentalCategory]float64 `yaml:"environment_factors"`

	// 综合评分达到该阈值（且心率 Optimal、温度 Ideal）时建议维持当前计划
	ContinueThreshold float64 `yaml:"continue_threshold"`
}

// DefaultPolicy 返回内置默认评分策略
func DefaultPolicy() ScoringPolicy {
	return ScoringPolicy{
		ActivityWeight:     0.5,
		HeartRateWeight:    0.3,
		EnvironmentWeight:  0.2,
		ActivityNormalizer: 10000,
		HeartRateFactors: map[models.HeartRateCategory]float64{
			models.HeartRateOptimal:      1.0,
			models.HeartRateBelowOptimal: 0.8,
			models.HeartRateAboveOptimal: 0.7,
		},
		EnvironmentFactors: map[models.EnvironmentalCategory]float64{
			models.EnvironmentGood:     1.0,
			models.EnvironmentModerate: 0.8,
			models.EnvironmentPoor:     0.6,
		},
		ContinueThreshold: 0.75,
	}
}

// LoadPolicy 加载评分策略
//
// path 为空时返回默认策略；否则读取 YAML 文件并在默认策略之上合并，
// 文件中未出现的键保持默认值。
func LoadPolicy(path string) (ScoringPolicy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ScoringPolicy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return ScoringPolicy{}, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return ScoringPolicy{}, fmt.Errorf("invalid scoring policy: %w", err)
	}

	return policy, nil
}

// Validate 检查策略取值是否可用
func (p ScoringPolicy) Validate() error {
	if p.ActivityNormalizer <= 0 {
		return fmt.Errorf("activity_normalizer must be positive, got %v", p.ActivityNormalizer)
	}
	if p.ActivityWeight < 0 || p.HeartRateWeight < 0 || p.EnvironmentWeight < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if p.ContinueThreshold < 0 {
		return fmt.Errorf("continue_threshold must not be negative, got %v", p.ContinueThreshold)
	}

	for _, cat := range []models.HeartRateCategory{
		models.HeartRateBelowOptimal,
		models.HeartRateOptimal,
		models.HeartRateAboveOptimal,
	} {
		if _, ok := p.HeartRateFactors[cat]; !ok {
			return fmt.Errorf("heart_rate_factors missing category %q", cat)
		}
	}

	for _, cat := range []models.EnvironmentalCategory{
		models.EnvironmentGood,
		models.EnvironmentModerate,
		models.EnvironmentPoor,
	} {
		if _, ok := p.EnvironmentFactors[cat]; !ok {
			return fmt.Errorf("environment_factors missing category %q", cat)
		}
	}

	return nil
}

package models

import "time"

// HeartRateCategory 心率分类
type HeartRateCategory string

const (
	HeartRateBelowOptimal HeartRateCategory = "Below Optimal" // 心率 < 60
	HeartRateOptimal      HeartRateCategory = "Optimal"       // 60 <= 心率 <= 100
	HeartRateAboveOptimal HeartRateCategory = "Above Optimal" // 心率 > 100
)

// EnvironmentalCategory 环境质量分类
type EnvironmentalCategory string

const (
	EnvironmentGood     EnvironmentalCategory = "Good"     // 环境指数 >= 75
	EnvironmentModerate EnvironmentalCategory = "Moderate" // 50 <= 环境指数 < 75
	EnvironmentPoor     EnvironmentalCategory = "Poor"     // 环境指数 < 50
)

// TemperatureImpact 环境温度影响分类
type TemperatureImpact string

const (
	TemperatureIdeal   TemperatureImpact = "Ideal Temperature" // 15 <= 温度 <= 25
	TemperatureTooCold TemperatureImpact = "Too Cold"          // 温度 < 15
	TemperatureTooHot  TemperatureImpact = "Too Hot"           // 温度 > 25
)

// Recommendation 健身计划建议
type Recommendation string

const (
	RecommendationContinue Recommendation = "Continue current fitness plan"
	RecommendationAdjust   Recommendation = "Adjust fitness plan"
)

// Status 总体状态
type Status string

const (
	StatusOptimal         Status = "Optimal"
	StatusNeedsAdjustment Status = "Needs Adjustment"
)

// HealthAssessment 单个用户的健康评估结果
//
// 由 Calculator 根据一条 UserRecord 生成，只读。
// 数值字段均已按约定舍入到 2 位小数（用于展示和导出）。
type HealthAssessment struct {
	UserID                string                `json:"user_id"`
	PredictedActivity     float64               `json:"predicted_activity"` // 步数 x 活动强度系数
	HeartRateCategory     HeartRateCategory     `json:"heart_rate_category"`
	EnvironmentalCategory EnvironmentalCategory `json:"environmental_category"`
	TemperatureImpact     TemperatureImpact     `json:"temperature_impact"`

	// 综合评分的分项（报告中展示计算过程用）
	NormalizedActivity     float64 `json:"normalized_activity"`     // 预测活动量 / 基准 x 活动权重
	HeartRateComponent     float64 `json:"heart_rate_component"`    // 心率系数 x 心率权重
	EnvironmentalComponent float64 `json:"environmental_component"` // 环境系数 x 环境权重

	CompositeScore float64        `json:"composite_score"` // 分项之和，无上限
	Recommendation Recommendation `json:"recommendation"`
	Status         Status         `json:"status"`
}

// BatchResult 一次批处理的完整结果
//
// Accepted 和 Assessments 等长且下标一一对应，均按原始行序排列。
type BatchResult struct {
	RunID       string             `json:"run_id"`       // 本次运行的唯一标识
	GeneratedAt time.Time          `json:"generated_at"` // 结果生成时间
	Validation  BatchValidation    `json:"validation"`   // 批次校验结果
	Accepted    []UserRecord       `json:"accepted"`     // 校验通过的记录
	Assessments []HealthAssessment `json:"assessments"`  // 逐条对应 Accepted 的评估结果
	Elapsed     time.Duration      `json:"elapsed_ns"`   // 处理耗时
}

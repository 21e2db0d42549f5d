// Package calculator 提供健康指标计算功能
//
// 将校验通过的用户记录转换为评估结果，包括：
// - 预测活动量（步数 x 活动强度系数）
// - 心率 / 环境质量 / 温度影响三项分类
// - 综合健身评分（加权求和，无上限）
// - 健身计划建议和总体状态
package calculator

import (
	"math"

	"wisefido-fitness-analyzer/internal/models"
)

// Calculator 健康指标计算器
//
// 持有不可变的评分策略；Compute 为纯函数，无共享状态，
// 可对多条记录并发调用。
type Calculator struct {
	policy ScoringPolicy
}

// New 创建健康指标计算器
func New(policy ScoringPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// Policy 返回计算器当前使用的评分策略
func (c *Calculator) Policy() ScoringPolicy {
	return c.policy
}

// Compute 计算单条记录的健康评估结果
//
// 计算流程：
// 1. 预测活动量 = current_steps x activity_intensity_factor
// 2. 心率分类（< 60 / 60~100 / > 100）
// 3. 环境质量分类（>= 75 / >= 50 / < 50）
// 4. 温度影响分类（15~25 / < 15 / > 25）
// 5. 综合评分 = 活动量/基准 x 活动权重 + 心率系数 x 心率权重 + 环境系数 x 环境权重
// 6. 评分达到阈值且心率 Optimal、温度 Ideal 时建议维持当前计划
//
// 展示用数值统一舍入到 2 位小数（四舍五入）；
// 综合评分由未舍入的分项求和后再舍入。
func (c *Calculator) Compute(rec models.UserRecord) models.HealthAssessment {
	// 预测活动量先四舍五入到两位小数，后续归一化使用舍入后的值
	predicted := round2(float64(rec.CurrentSteps) * rec.ActivityIntensityFactor)

	heartCategory := classifyHeartRate(rec.HeartRate)
	envCategory := classifyEnvironment(rec.EnvironmentalIndex)
	tempImpact := classifyTemperature(rec.AmbientTemperature)

	normalized := predicted / c.policy.ActivityNormalizer * c.policy.ActivityWeight
	heartComponent := c.policy.HeartRateFactors[heartCategory] * c.policy.HeartRateWeight
	envComponent := c.policy.EnvironmentFactors[envCategory] * c.policy.EnvironmentWeight
	score := round2(normalized + heartComponent + envComponent)

	assessment := models.HealthAssessment{
		UserID:                 rec.UserID,
		PredictedActivity:      predicted,
		HeartRateCategory:      heartCategory,
		EnvironmentalCategory:  envCategory,
		TemperatureImpact:      tempImpact,
		NormalizedActivity:     round2(normalized),
		HeartRateComponent:     round2(heartComponent),
		EnvironmentalComponent: round2(envComponent),
		CompositeScore:         score,
	}

	if score >= c.policy.ContinueThreshold &&
		heartCategory == models.HeartRateOptimal &&
		tempImpact == models.TemperatureIdeal {
		assessment.Recommendation = models.RecommendationContinue
		assessment.Status = models.StatusOptimal
	} else {
		assessment.Recommendation = models.RecommendationAdjust
		assessment.Status = models.StatusNeedsAdjustment
	}

	return assessment
}

// classifyHeartRate 心率分类（60 和 100 均属 Optimal）
func classifyHeartRate(heartRate int) models.HeartRateCategory {
	switch {
	case heartRate < 60:
		return models.HeartRateBelowOptimal
	case heartRate > 100:
		return models.HeartRateAboveOptimal
	default:
		return models.HeartRateOptimal
	}
}

// classifyEnvironment 环境质量分类
func classifyEnvironment(index float64) models.EnvironmentalCategory {
	switch {
	case index >= 75:
		return models.EnvironmentGood
	case index >= 50:
		return models.EnvironmentModerate
	default:
		return models.EnvironmentPoor
	}
}

// classifyTemperature 温度影响分类（15 和 25 均属 Ideal）
func classifyTemperature(temperature float64) models.TemperatureImpact {
	switch {
	case temperature < 15:
		return models.TemperatureTooCold
	case temperature > 25:
		return models.TemperatureTooHot
	default:
		return models.TemperatureIdeal
	}
}

// round2 四舍五入到 2 位小数
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

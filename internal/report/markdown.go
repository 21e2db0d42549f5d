// Package report 将批处理结果渲染为 Markdown 报告。
//
// 报告分三类：
// - 校验报告：批次结构检查、必填字段检查、逐行错误明细
// - 单用户评估报告：输入数据、逐步计算过程、最终建议
// - 批次汇总：按用户一行的结果总表
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/models"
)

// Renderer Markdown 报告渲染器
//
// 持有与 Calculator 相同的评分策略，报告中的系数和权重由策略提供。
type Renderer struct {
	policy calculator.ScoringPolicy
}

// NewRenderer 创建报告渲染器
func NewRenderer(policy calculator.ScoringPolicy) *Renderer {
	return &Renderer{policy: policy}
}

// RenderValidation 渲染批次校验报告
func (r *Renderer) RenderValidation(v *models.BatchValidation) string {
	var b strings.Builder

	b.WriteString("# Data Validation Report\n")
	b.WriteString("## Data Structure Check:\n")
	fmt.Fprintf(&b, "- Number of users: %d\n", v.Total)
	fmt.Fprintf(&b, "- Number of fields per record: %d\n\n", len(models.RequiredFields()))

	b.WriteString("## Required Fields Check:\n")
	for _, field := range models.RequiredFields() {
		status := "invalid"
		if v.FieldsCheck[field] {
			status = "valid"
		}
		fmt.Fprintf(&b, "- %s: %s\n", field, status)
	}

	b.WriteString("\n## Validation Summary:\n")
	if !v.HasErrors() {
		b.WriteString("Data validation is successful!\n")
		return b.String()
	}
	for _, e := range v.Errors {
		fmt.Fprintf(&b, "- Row %d: %s\n", e.Row, e.Message)
	}
	return b.String()
}

// RenderAssessment 渲染单个用户的评估报告
//
// rec 与 a 必须对应同一条记录（BatchResult 中按下标对齐）。
func (r *Renderer) RenderAssessment(rec models.UserRecord, a models.HealthAssessment) string {
	hrFactor := r.policy.HeartRateFactors[a.HeartRateCategory]
	envFactor := r.policy.EnvironmentFactors[a.EnvironmentalCategory]

	var b strings.Builder

	b.WriteString("# Health Monitoring Summary\n\n")
	fmt.Fprintf(&b, "**User ID:** %s\n\n", a.UserID)
	b.WriteString("---\n\n")

	b.WriteString("## Input Data:\n")
	fmt.Fprintf(&b, "- %s: %s\n", models.FieldUserID, rec.UserID)
	fmt.Fprintf(&b, "- %s: %d\n", models.FieldCurrentSteps, rec.CurrentSteps)
	fmt.Fprintf(&b, "- %s: %d\n", models.FieldHeartRate, rec.HeartRate)
	fmt.Fprintf(&b, "- %s: %s\n", models.FieldAmbientTemperature, fmtNum(rec.AmbientTemperature))
	fmt.Fprintf(&b, "- %s: %s\n", models.FieldEnvironmentalIndex, fmtNum(rec.EnvironmentalIndex))
	fmt.Fprintf(&b, "- %s: %s\n", models.FieldActivityIntensityFactor, fmtNum(rec.ActivityIntensityFactor))

	b.WriteString("\n---\n\n")
	b.WriteString("## Detailed Calculations:\n\n")

	b.WriteString("1. Predicted Activity Calculation:\n")
	b.WriteString(" - Formula: Predicted Activity = current_steps * activity_intensity_factor\n")
	fmt.Fprintf(&b, " - Calculation: %d * %s = %s\n",
		rec.CurrentSteps, fmtNum(rec.ActivityIntensityFactor), fmt2(a.PredictedActivity))
	fmt.Fprintf(&b, " - Calculated Value: **%s steps**\n\n", fmt2(a.PredictedActivity))

	b.WriteString("2. Heart Rate Category:\n")
	b.WriteString(" - IF heart_rate < 60, THEN \"Below Optimal\".\n")
	b.WriteString(" - ELSE IF heart_rate between 60 and 100, THEN \"Optimal\".\n")
	b.WriteString(" - ELSE, \"Above Optimal\".\n")
	fmt.Fprintf(&b, " - Given heart_rate = %d\n", rec.HeartRate)
	fmt.Fprintf(&b, " - Result: **%s**\n\n", a.HeartRateCategory)

	b.WriteString("3. Environmental Quality Category:\n")
	b.WriteString(" - IF environmental_index >= 75, THEN \"Good\".\n")
	b.WriteString(" - ELSE IF environmental_index >= 50, THEN \"Moderate\".\n")
	b.WriteString(" - ELSE, \"Poor\".\n")
	fmt.Fprintf(&b, " - Given environmental_index = %s\n", fmtNum(rec.EnvironmentalIndex))
	fmt.Fprintf(&b, " - Result: **%s**\n\n", a.EnvironmentalCategory)

	b.WriteString("4. Ambient Temperature Impact:\n")
	b.WriteString(" - IF ambient_temperature between 15 and 25, THEN \"Ideal Temperature\".\n")
	b.WriteString(" - ELSE IF ambient_temperature < 15, THEN \"Too Cold\".\n")
	b.WriteString(" - ELSE, \"Too Hot\".\n")
	fmt.Fprintf(&b, " - Given ambient_temperature = %s\n", fmtNum(rec.AmbientTemperature))
	fmt.Fprintf(&b, " - Result: **%s**\n\n", a.TemperatureImpact)

	b.WriteString("5. Composite Fitness Score Calculation:\n")
	fmt.Fprintf(&b, " - Formula: Composite Fitness Score = (Predicted Activity / %s * %s) + (Heart Rate Factor * %s) + (Environmental Factor * %s)\n",
		fmtNum(r.policy.ActivityNormalizer), fmtNum(r.policy.ActivityWeight),
		fmtNum(r.policy.HeartRateWeight), fmtNum(r.policy.EnvironmentWeight))
	b.WriteString(" - Steps:\n")
	fmt.Fprintf(&b, "   1. Normalized activity: %s / %s * %s = %s\n",
		fmt2(a.PredictedActivity), fmtNum(r.policy.ActivityNormalizer),
		fmtNum(r.policy.ActivityWeight), fmt2(a.NormalizedActivity))
	fmt.Fprintf(&b, "   2. Heart Rate Factor: Heart rate category is %q which gives a factor of %s\n",
		a.HeartRateCategory, fmtNum(hrFactor))
	fmt.Fprintf(&b, "      Heart component: %s * %s = %s\n",
		fmtNum(hrFactor), fmtNum(r.policy.HeartRateWeight), fmt2(a.HeartRateComponent))
	fmt.Fprintf(&b, "   3. Environmental Factor: Environmental quality is %q which gives a factor of %s\n",
		a.EnvironmentalCategory, fmtNum(envFactor))
	fmt.Fprintf(&b, "      Environmental component: %s * %s = %s\n",
		fmtNum(envFactor), fmtNum(r.policy.EnvironmentWeight), fmt2(a.EnvironmentalComponent))
	fmt.Fprintf(&b, "   4. Composite Fitness Score: %s + %s + %s = %s\n",
		fmt2(a.NormalizedActivity), fmt2(a.HeartRateComponent),
		fmt2(a.EnvironmentalComponent), fmt2(a.CompositeScore))
	fmt.Fprintf(&b, " - Calculated Value: **%s**\n\n", fmt2(a.CompositeScore))

	b.WriteString("---\n\n")
	b.WriteString("## Final Recommendation:\n\n")
	fmt.Fprintf(&b, "- Recommendation: **%s**\n", a.Recommendation)
	fmt.Fprintf(&b, "- Status: **%s**\n", a.Status)

	return b.String()
}

// RenderAssessments 渲染批次中全部用户的评估报告，报告之间以分隔线连接
func (r *Renderer) RenderAssessments(result *models.BatchResult) string {
	reports := make([]string, 0, len(result.Assessments))
	for i, a := range result.Assessments {
		reports = append(reports, strings.TrimRight(r.RenderAssessment(result.Accepted[i], a), "\n"))
	}
	return strings.Join(reports, "\n\n---\n\n") + "\n"
}

// RenderSummary 渲染批次汇总表
func (r *Renderer) RenderSummary(result *models.BatchResult) string {
	var b strings.Builder

	b.WriteString("# Batch Summary\n\n")
	fmt.Fprintf(&b, "- Run ID: %s\n", result.RunID)
	fmt.Fprintf(&b, "- Generated At: %s\n", result.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Records: %d total, %d accepted, %d rejected\n",
		result.Validation.Total, result.Validation.AcceptedCount, result.Validation.RejectedCount)
	fmt.Fprintf(&b, "- Elapsed: %s\n\n", result.Elapsed)

	b.WriteString("| User ID | Predicted Activity | Heart Rate | Environment | Temperature | Composite Score | Recommendation | Status |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, a := range result.Assessments {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			a.UserID, fmt2(a.PredictedActivity), a.HeartRateCategory, a.EnvironmentalCategory,
			a.TemperatureImpact, fmt2(a.CompositeScore), a.Recommendation, a.Status)
	}
	return b.String()
}

// fmtNum 以最短形式格式化数值（20 而不是 20.000000）
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fmt2 固定保留 2 位小数
func fmt2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

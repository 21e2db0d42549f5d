package models

// 必填字段名（与 CSV 表头、JSON 键一致）
const (
	FieldUserID                  = "user_id"
	FieldCurrentSteps            = "current_steps"
	FieldHeartRate               = "heart_rate"
	FieldAmbientTemperature      = "ambient_temperature"
	FieldEnvironmentalIndex      = "environmental_index"
	FieldActivityIntensityFactor = "activity_intensity_factor"
)

// requiredFields 必填字段的固定顺序（校验、报告、导出均按此顺序输出）
var requiredFields = []string{
	FieldUserID,
	FieldCurrentSteps,
	FieldHeartRate,
	FieldAmbientTemperature,
	FieldEnvironmentalIndex,
	FieldActivityIntensityFactor,
}

// RequiredFields 返回必填字段列表（副本，调用方可安全修改）
func RequiredFields() []string {
	out := make([]string, len(requiredFields))
	copy(out, requiredFields)
	return out
}

// RawRecord 解析后的原始记录（未经校验）
//
// Fields 的值类型取决于数据来源：
// - JSON: string / float64 / bool / nil
// - CSV / XLSX: string
type RawRecord struct {
	Row    int            `json:"row"`    // 在数据源中的行号（1 起始，按数据行计）
	Fields map[string]any `json:"fields"` // 字段名 -> 原始值
}

// UserRecord 校验通过的用户记录
//
// 仅由 Validator 构造；构造后不可变，每条记录只被 Calculator 消费一次。
type UserRecord struct {
	UserID                  string  `json:"user_id"`                   // 用户标识，非空
	CurrentSteps            int     `json:"current_steps"`             // 当日步数，> 0
	HeartRate               int     `json:"heart_rate"`                // 心率（bpm），> 0
	AmbientTemperature      float64 `json:"ambient_temperature"`       // 环境温度（℃），任意有限值
	EnvironmentalIndex      float64 `json:"environmental_index"`       // 环境指数，0 ~ 100（含两端）
	ActivityIntensityFactor float64 `json:"activity_intensity_factor"` // 活动强度系数，> 0
}

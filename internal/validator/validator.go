// Package validator 提供批次记录校验功能
//
// 对解析后的原始记录逐条执行三阶段检查：
// 1. 字段存在性检查（六个必填字段，null 视为缺失）
// 2. 字段类型检查（字符串 / 整数 / 有限数值）
// 3. 字段取值范围检查
//
// 任一阶段失败则该记录被拒绝并跳过后续阶段，但同一阶段内的
// 全部违规字段都会被记录；单条记录失败不影响批次内其他记录。
package validator

import (
	"math"
	"strconv"
	"strings"

	"wisefido-fitness-analyzer/internal/models"

	"go.uber.org/zap"
)

// Validator 批次校验器
//
// 无内部状态，可安全并发使用。
type Validator struct {
	logger *zap.Logger
}

// New 创建批次校验器
func New(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate 校验一个批次的原始记录
//
// 返回:
//   - accepted: 校验通过的记录，保持输入顺序
//   - errs: 全部校验错误，按行号顺序；行号取自 RawRecord.Row（1 起始）
//
// 单条记录的错误以收集方式返回，不会中断批次处理；
// 批次结构性问题（无法解析）由 parser 负责，不在此处理。
func (v *Validator) Validate(batch []models.RawRecord) ([]models.UserRecord, []models.ValidationError) {
	accepted := make([]models.UserRecord, 0, len(batch))
	var errs []models.ValidationError

	for _, raw := range batch {
		rec, recErrs := v.validateRecord(raw)
		if len(recErrs) > 0 {
			errs = append(errs, recErrs...)
			v.logger.Debug("record rejected",
				zap.Int("row", raw.Row),
				zap.Int("error_count", len(recErrs)))
			continue
		}
		accepted = append(accepted, rec)
	}

	return accepted, errs
}

// validateRecord 校验单条记录（三阶段，阶段级短路）
func (v *Validator) validateRecord(raw models.RawRecord) (models.UserRecord, []models.ValidationError) {
	var errs []models.ValidationError

	// 1. 存在性检查：字段缺失或值为 null 均视为缺失
	for _, field := range models.RequiredFields() {
		val, ok := raw.Fields[field]
		if !ok || val == nil {
			errs = append(errs, models.NewMissingFieldError(raw.Row, field))
		}
	}
	if len(errs) > 0 {
		return models.UserRecord{}, errs
	}

	// 2. 类型检查：全部字段独立检查，收集所有类型错误
	userID, ok := coerceString(raw.Fields[models.FieldUserID])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldUserID))
	}
	steps, ok := coerceInt(raw.Fields[models.FieldCurrentSteps])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldCurrentSteps))
	}
	heartRate, ok := coerceInt(raw.Fields[models.FieldHeartRate])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldHeartRate))
	}
	temperature, ok := coerceFloat(raw.Fields[models.FieldAmbientTemperature])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldAmbientTemperature))
	}
	envIndex, ok := coerceFloat(raw.Fields[models.FieldEnvironmentalIndex])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldEnvironmentalIndex))
	}
	intensity, ok := coerceFloat(raw.Fields[models.FieldActivityIntensityFactor])
	if !ok {
		errs = append(errs, models.NewInvalidTypeError(raw.Row, models.FieldActivityIntensityFactor))
	}
	if len(errs) > 0 {
		return models.UserRecord{}, errs
	}

	// 3. 范围检查：ambient_temperature 无范围约束
	if steps <= 0 {
		errs = append(errs, models.NewOutOfRangeError(raw.Row, models.FieldCurrentSteps))
	}
	if heartRate <= 0 {
		errs = append(errs, models.NewOutOfRangeError(raw.Row, models.FieldHeartRate))
	}
	if envIndex < 0 || envIndex > 100 {
		errs = append(errs, models.NewOutOfRangeError(raw.Row, models.FieldEnvironmentalIndex))
	}
	if intensity <= 0 {
		errs = append(errs, models.NewOutOfRangeError(raw.Row, models.FieldActivityIntensityFactor))
	}
	if len(errs) > 0 {
		return models.UserRecord{}, errs
	}

	return models.UserRecord{
		UserID:                  userID,
		CurrentSteps:            steps,
		HeartRate:               heartRate,
		AmbientTemperature:      temperature,
		EnvironmentalIndex:      envIndex,
		ActivityIntensityFactor: intensity,
	}, nil
}

// FieldPresence 统计每个必填字段是否在批次的所有记录中出现
// （仅按键存在性判断，供校验报告展示）
func FieldPresence(batch []models.RawRecord) map[string]bool {
	presence := make(map[string]bool, len(models.RequiredFields()))
	for _, field := range models.RequiredFields() {
		presence[field] = true
		for _, raw := range batch {
			if _, ok := raw.Fields[field]; !ok {
				presence[field] = false
				break
			}
		}
	}
	return presence
}

// coerceString 将输入值解析为非空字符串（CSV 来源允许两端空白）
func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// coerceInt 将输入值解析为整数
//
// JSON 数字统一解码为 float64，仅接受无小数部分的值；
// CSV/XLSX 的字符串值按十进制整数解析。
func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) {
			return 0, false
		}
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// coerceFloat 将输入值解析为有限浮点数（NaN/Inf 视为非法）
func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

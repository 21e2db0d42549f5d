package models

import "fmt"

// ErrorKind 校验错误类型
type ErrorKind string

const (
	ErrorMissingField ErrorKind = "missing_field" // 字段缺失或为 null
	ErrorInvalidType  ErrorKind = "invalid_type"  // 字段类型不符
	ErrorOutOfRange   ErrorKind = "out_of_range"  // 字段值超出允许范围
)

// ValidationError 单条记录、单个字段的校验错误
//
// 按批次收集，不作为 Go error 抛出；一条记录可产生多个错误。
type ValidationError struct {
	Row     int       `json:"row"`     // 原始批次中的行号（1 起始）
	Field   string    `json:"field"`   // 出错字段名
	Kind    ErrorKind `json:"kind"`    // 错误类型
	Message string    `json:"message"` // 固定格式的错误消息
}

// NewMissingFieldError 构造字段缺失错误
func NewMissingFieldError(row int, field string) ValidationError {
	return ValidationError{
		Row:     row,
		Field:   field,
		Kind:    ErrorMissingField,
		Message: fmt.Sprintf("missing field %s", field),
	}
}

// NewInvalidTypeError 构造字段类型错误
func NewInvalidTypeError(row int, field string) ValidationError {
	return ValidationError{
		Row:     row,
		Field:   field,
		Kind:    ErrorInvalidType,
		Message: fmt.Sprintf("invalid type for %s", field),
	}
}

// NewOutOfRangeError 构造字段越界错误
func NewOutOfRangeError(row int, field string) ValidationError {
	return ValidationError{
		Row:     row,
		Field:   field,
		Kind:    ErrorOutOfRange,
		Message: fmt.Sprintf("%s out of range", field),
	}
}

// BatchValidation 批次校验结果（供报告渲染和导出使用）
type BatchValidation struct {
	Total         int               `json:"total"`          // 原始记录总数
	AcceptedCount int               `json:"accepted_count"` // 校验通过数
	RejectedCount int               `json:"rejected_count"` // 校验拒绝数
	FieldsCheck   map[string]bool   `json:"fields_check"`   // 字段名 -> 是否在所有记录中出现
	Errors        []ValidationError `json:"errors"`         // 全部校验错误（按行号顺序）
}

// HasErrors 批次是否存在校验错误
func (v *BatchValidation) HasErrors() bool {
	return len(v.Errors) > 0
}

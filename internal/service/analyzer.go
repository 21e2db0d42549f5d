// Package service 提供健身数据分析服务
//
// 串联解析、校验、计算三个阶段：
// 原始批次 -> Parser -> Validator -> Calculator -> BatchResult
//
// 校验错误不会阻断计算：所有通过校验的记录都会被评估，
// 是否因错误而拒绝输出由调用方（CLI）决定。
package service

import (
	"context"
	"errors"
	"time"

	"wisefido-fitness-analyzer/internal/calculator"
	"wisefido-fitness-analyzer/internal/config"
	"wisefido-fitness-analyzer/internal/models"
	"wisefido-fitness-analyzer/internal/parser"
	"wisefido-fitness-analyzer/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRecords 批次解析成功但不包含任何记录
var ErrNoRecords = errors.New("no records in input batch")

// AnalyzerService 健身数据分析服务
type AnalyzerService struct {
	config     *config.Config
	logger     *zap.Logger
	parser     *parser.Parser
	validator  *validator.Validator
	calculator *calculator.Calculator
}

// NewAnalyzerService 创建健身数据分析服务
func NewAnalyzerService(cfg *config.Config, policy calculator.ScoringPolicy, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		config:     cfg,
		logger:     logger,
		parser:     parser.New(logger),
		validator:  validator.New(logger),
		calculator: calculator.New(policy),
	}
}

// ProcessBatch 执行完整分析流水线
//
// 流程：
// 1. 解析输入（结构不可解析时返回 *parser.MalformedBatchError）
// 2. 校验全部记录，收集校验错误
// 3. 对校验通过的记录逐条计算评估结果（按原始行序）
func (s *AnalyzerService) ProcessBatch(ctx context.Context, data []byte, format parser.Format) (*models.BatchResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	records, err := s.parser.Parse(data, format)
	if err != nil {
		s.logger.Error("failed to parse input batch",
			zap.String("run_id", runID),
			zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		s.logger.Error("input batch contains no records", zap.String("run_id", runID))
		return nil, ErrNoRecords
	}

	accepted, validation := s.validate(records)
	if validation.HasErrors() {
		s.logger.Warn("batch contains invalid records",
			zap.String("run_id", runID),
			zap.Int("rejected", validation.RejectedCount),
			zap.Int("error_count", len(validation.Errors)))
	}

	assessments, err := s.computeAll(ctx, accepted)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Validation:  validation,
		Accepted:    accepted,
		Assessments: assessments,
		Elapsed:     time.Since(start),
	}

	s.logger.Info("batch processed",
		zap.String("run_id", runID),
		zap.Int("total", validation.Total),
		zap.Int("accepted", validation.AcceptedCount),
		zap.Int("rejected", validation.RejectedCount),
		zap.Int("assessed", len(assessments)),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

// ValidateBatch 只执行解析和校验，不计算评估结果
func (s *AnalyzerService) ValidateBatch(ctx context.Context, data []byte, format parser.Format) (*models.BatchValidation, error) {
	records, err := s.parser.Parse(data, format)
	if err != nil {
		s.logger.Error("failed to parse input batch", zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	_, validation := s.validate(records)

	s.logger.Info("batch validated",
		zap.Int("total", validation.Total),
		zap.Int("accepted", validation.AcceptedCount),
		zap.Int("error_count", len(validation.Errors)))

	return &validation, nil
}

func (s *AnalyzerService) validate(records []models.RawRecord) ([]models.UserRecord, models.BatchValidation) {
	accepted, errs := s.validator.Validate(records)
	return accepted, models.BatchValidation{
		Total:         len(records),
		AcceptedCount: len(accepted),
		RejectedCount: len(records) - len(accepted),
		FieldsCheck:   validator.FieldPresence(records),
		Errors:        errs,
	}
}

// computeAll 计算全部评估结果
//
// workers <= 1 或批次过小时顺序处理；否则按固定并发度扇出，
// 结果按索引写回预分配切片，保证输出顺序与输入一致。
func (s *AnalyzerService) computeAll(ctx context.Context, records []models.UserRecord) ([]models.HealthAssessment, error) {
	workers := s.config.Analyzer.Workers

	if workers <= 1 || len(records) <= 1 {
		out := make([]models.HealthAssessment, 0, len(records))
		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, s.calculator.Compute(rec))
		}
		return out, nil
	}

	out := make([]models.HealthAssessment, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.calculator.Compute(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"
	"skill_quiz_backend/pkg/logger"
	"skill_quiz_backend/pkg/monitoring"
	"skill_quiz_backend/pkg/tracing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	reportSkillGap   = "skill-gap"
	reportTimeSeries = "time-series"
)

type ExportResult struct {
	URL    string `json:"url"`
	Object string `json:"object"`
}

type ReportService struct {
	ReportRepo *repository.ReportRepository
	UserRepo   *repository.UserRepository
	Storage    *StorageService
	Now        Clock

	cacheTTL atomic.Int64
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	cfg *config.ReportConfig,
) *ReportService {
	s := &ReportService{
		ReportRepo: reportRepo,
		UserRepo:   userRepo,
		Storage:    storage,
		Now:        utcNow,
	}
	s.SetCacheTTL(cfg.CacheTTL())
	return s
}

// SetCacheTTL 配置热更新时调用
func (s *ReportService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL.Store(int64(ttl))
}

func (s *ReportService) CacheTTL() time.Duration {
	return time.Duration(s.cacheTTL.Load())
}

// UserPerformance lists the user's attempts and the mean score of the finished ones.
func (s *ReportService) UserPerformance(ctx context.Context, caller *model.Identity, userID uint, quizID *uint) (*model.UserPerformanceReport, error) {
	if !caller.CanAccess(userID) {
		return nil, util.ErrPermissionDenied
	}
	return s.userPerformance(ctx, userID, quizID)
}

func (s *ReportService) userPerformance(ctx context.Context, userID uint, quizID *uint) (*model.UserPerformanceReport, error) {
	exists, err := s.UserRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, util.ErrUserNotFound
	}

	attempts, err := s.ReportRepo.UserAttempts(ctx, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}

	var sum, n int64
	for _, a := range attempts {
		if a.Finished() {
			sum += int64(a.TotalScore)
			n++
		}
	}

	return &model.UserPerformanceReport{
		UserID:   userID,
		QuizID:   quizID,
		Attempts: attempts,
		Avg:      roundedMean(sum, n),
	}, nil
}

// SkillGap 技能维度的平均得分，仅统计已完成的答题
func (s *ReportService) SkillGap(ctx context.Context, f model.SkillGapFilter) ([]model.SkillGapRow, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ReportService.SkillGap")
	defer span.End()

	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, util.InvalidInput("from must not be after to")
	}

	key := repository.CacheKey(reportSkillGap, skillGapCacheInput(f))
	var rows []model.SkillGapRow
	if s.lookup(ctx, reportSkillGap, key, &rows) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return rows, nil
	}

	rows, err := s.ReportRepo.SkillGap(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("skill gap query: %w", err)
	}
	if rows == nil {
		rows = []model.SkillGapRow{}
	}
	s.store(ctx, key, rows)
	return rows, nil
}

// TimeSeries buckets attempts started in the trailing window by UTC day.
func (s *ReportService) TimeSeries(ctx context.Context, days int, quizID *uint) ([]model.TimeSeriesPoint, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ReportService.TimeSeries")
	defer span.End()
	span.SetAttributes(attribute.Int("report.days", days))

	if days < 1 {
		return nil, util.InvalidInput("range must be at least 1d")
	}

	key := repository.CacheKey(reportTimeSeries, fmt.Sprintf("days=%d;quiz=%s", days, optionalID(quizID)))
	var points []model.TimeSeriesPoint
	if s.lookup(ctx, reportTimeSeries, key, &points) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return points, nil
	}

	cutoff := s.Now().Add(-time.Duration(days) * 24 * time.Hour)
	rows, err := s.ReportRepo.AttemptsSince(ctx, cutoff, quizID)
	if err != nil {
		return nil, fmt.Errorf("time series query: %w", err)
	}

	points = BucketByDay(rows)
	s.store(ctx, key, points)
	return points, nil
}

// BucketByDay 按 started_at 的 UTC 日期分组，日期升序
func BucketByDay(rows []model.AttemptScoreRow) []model.TimeSeriesPoint {
	type bucket struct {
		count int64
		sum   int64
	}
	buckets := make(map[string]*bucket)
	for _, r := range rows {
		day := r.StartedAt.UTC().Format(util.DateFormat)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.count++
		b.sum += int64(r.TotalScore)
	}

	points := make([]model.TimeSeriesPoint, 0, len(buckets))
	for day, b := range buckets {
		points = append(points, model.TimeSeriesPoint{
			Date:     day,
			Attempts: b.count,
			AvgScore: roundedMean(b.sum, b.count),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// ExportUserReport 渲染用户报表并写入配置的存储
func (s *ReportService) ExportUserReport(ctx context.Context, userID uint, quizID *uint, format string) (*ExportResult, error) {
	if format == "" {
		format = util.ExportCSV
	}
	if format != util.ExportCSV && format != util.ExportJSON {
		return nil, util.InvalidInput("format must be csv or json")
	}

	report, err := s.userPerformance(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case util.ExportJSON:
		body, err = json.MarshalIndent(report, "", "  ")
		contentType = "application/json"
	default:
		body, err = renderUserReportCSV(report)
		contentType = "text/csv"
	}
	if err != nil {
		return nil, err
	}

	object := fmt.Sprintf("reports/user-%d-%s.%s", userID, uuid.NewString(), format)
	url, err := s.Storage.Upload(ctx, object, bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	logger.Log.Info("User report exported", zap.Uint("user_id", userID), zap.String("object", object))
	return &ExportResult{URL: url, Object: object}, nil
}

func renderUserReportCSV(report *model.UserPerformanceReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"attempt_id", "quiz_id", "status", "started_at", "finished_at", "total_score"}); err != nil {
		return nil, err
	}
	for _, a := range report.Attempts {
		finished := ""
		if a.FinishedAt != nil {
			finished = a.FinishedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			strconv.FormatUint(uint64(a.ID), 10),
			optionalID(a.QuizID),
			string(a.Status()),
			a.StartedAt.UTC().Format(time.RFC3339),
			finished,
			strconv.Itoa(a.TotalScore),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"avg", "", "", "", "", decimal.NewFromFloat(report.Avg).StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (s *ReportService) lookup(ctx context.Context, report, key string, dst interface{}) bool {
	if s.ReportRepo.Redis == nil {
		return false
	}
	hit, err := s.ReportRepo.GetCached(ctx, key, dst)
	if err != nil {
		logger.Log.Warn("Report cache read failed", zap.String("report", report), zap.Error(err))
		return false
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	monitoring.ReportCacheHits.WithLabelValues(report, result).Inc()
	return hit
}

func (s *ReportService) store(ctx context.Context, key string, value interface{}) {
	if err := s.ReportRepo.SetCached(ctx, key, value, s.CacheTTL()); err != nil {
		logger.Log.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func skillGapCacheInput(f model.SkillGapFilter) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("user=%s;quiz=%s;from=%s;to=%s", optionalID(f.UserID), optionalID(f.QuizID), bound(f.From), bound(f.To))
}

func optionalID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// roundedMean 保留两位小数，n 为 0 时返回 0
func roundedMean(sum, n int64) float64 {
	if n == 0 {
		return 0
	}
	avg, _ := decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)).Round(2).Float64()
	return avg
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"skill_quiz_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reportCacheKeyPrefix = "quiz:report:"

// ReportRepository 报表只读查询；Redis 为空时不做缓存
type ReportRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewReportRepository(db *gorm.DB, rdb *redis.Client) *ReportRepository {
	return &ReportRepository{DB: db, Redis: rdb}
}

// UserAttempts returns the user's attempts, newest first.
func (r *ReportRepository) UserAttempts(ctx context.Context, userID uint, quizID *uint) ([]model.QuizAttempt, error) {
	query := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if quizID != nil {
		query = query.Where("quiz_id = ?", *quizID)
	}

	attempts := []model.QuizAttempt{}
	err := query.Order("started_at DESC, id DESC").Find(&attempts).Error
	return attempts, err
}

// SkillGap 按题目所属技能统计已完成答题的平均得分
func (r *ReportRepository) SkillGap(ctx context.Context, f model.SkillGapFilter) ([]model.SkillGapRow, error) {
	query := r.DB.WithContext(ctx).
		Table("quiz_answers").
		Select("questions.skill_id AS skill_id, skills.name AS skill, AVG(quiz_answers.score) AS avg_score").
		Joins("JOIN quiz_attempts ON quiz_attempts.id = quiz_answers.attempt_id").
		Joins("JOIN questions ON questions.id = quiz_answers.question_id").
		Joins("LEFT JOIN skills ON skills.id = questions.skill_id").
		Where("quiz_attempts.finished_at IS NOT NULL")

	if f.UserID != nil {
		query = query.Where("quiz_attempts.user_id = ?", *f.UserID)
	}
	if f.QuizID != nil {
		query = query.Where("quiz_attempts.quiz_id = ?", *f.QuizID)
	}
	if f.From != nil {
		query = query.Where("quiz_attempts.finished_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("quiz_attempts.finished_at <= ?", *f.To)
	}

	rows := []model.SkillGapRow{}
	err := query.
		Group("questions.skill_id, skills.name").
		Order("questions.skill_id ASC").
		Scan(&rows).Error
	return rows, err
}

// AttemptsSince returns (started_at, total_score) of attempts started at or after cutoff.
// Day bucketing happens in the caller so the query stays portable across drivers.
func (r *ReportRepository) AttemptsSince(ctx context.Context, cutoff time.Time, quizID *uint) ([]model.AttemptScoreRow, error) {
	query := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Select("started_at, total_score").
		Where("started_at >= ?", cutoff)
	if quizID != nil {
		query = query.Where("quiz_id = ?", *quizID)
	}

	var rows []model.AttemptScoreRow
	err := query.Order("started_at ASC").Scan(&rows).Error
	return rows, err
}

// CacheKey 将报表名和规范化后的过滤条件映射为固定长度的键
func CacheKey(report, normalized string) string {
	return reportCacheKeyPrefix + report + ":" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(normalized)).String()
}

// GetCached decodes a cached report into dst. It reports false on a miss or when caching is off.
func (r *ReportRepository) GetCached(ctx context.Context, key string, dst interface{}) (bool, error) {
	if r.Redis == nil {
		return false, nil
	}
	val, err := r.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReportRepository) SetCached(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.Redis == nil || ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, key, b, ttl).Err()
}

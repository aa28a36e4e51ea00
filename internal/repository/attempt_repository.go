package repository

import (
	"context"
	"time"

	"skill_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) WithTx(tx *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: tx}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Omit("Answers").Create(attempt).Error
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) FindWithAnswers(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) CreateAnswers(ctx context.Context, answers []model.QuizAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&answers).Error
}

func (r *AttemptRepository) CountAnswers(ctx context.Context, attemptID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAnswer{}).Where("attempt_id = ?", attemptID).Count(&n).Error
	return n, err
}

// Finish 仅当 finished_at 为空时写入结束时间和总分，返回受影响行数
func (r *AttemptRepository) Finish(ctx context.Context, id uint, at time.Time, totalScore int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ? AND finished_at IS NULL", id).
		Updates(map[string]interface{}{
			"finished_at": at,
			"total_score": totalScore,
		})
	return res.RowsAffected, res.Error
}

// MarkEnded closes an open attempt without touching total_score.
func (r *AttemptRepository) MarkEnded(ctx context.Context, id uint, at time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ? AND finished_at IS NULL", id).
		Update("finished_at", at)
	return res.RowsAffected, res.Error
}

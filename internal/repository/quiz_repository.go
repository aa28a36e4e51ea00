package repository

import (
	"context"

	"skill_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) AddQuestions(ctx context.Context, rows []model.QuizQuestion) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&rows).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) List(ctx context.Context, page, limit int) ([]model.Quiz, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []model.Quiz
	err := r.DB.WithContext(ctx).Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&quizzes).Error
	return quizzes, total, err
}

// Mappings 按 position 升序返回测验的题目映射
func (r *QuizRepository) Mappings(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	var rows []model.QuizQuestion
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("position ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// MemberQuestionIDs returns the ids among questionIDs that belong to quizID.
func (r *QuizRepository) MemberQuestionIDs(ctx context.Context, quizID uint, questionIDs []uint) ([]uint, error) {
	var ids []uint
	if len(questionIDs) == 0 {
		return ids, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.QuizQuestion{}).
		Where("quiz_id = ? AND question_id IN ?", quizID, questionIDs).
		Pluck("question_id", &ids).Error
	return ids, err
}

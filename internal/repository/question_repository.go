package repository

import (
	"context"

	"skill_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) WithTx(tx *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: tx}
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.DB.WithContext(ctx).Create(q).Error
}

func (r *QuestionRepository) List(ctx context.Context, skillID *uint, page, limit int) ([]model.Question, error) {
	query := r.DB.WithContext(ctx).Model(&model.Question{})
	if skillID != nil {
		query = query.Where("skill_id = ?", *skillID)
	}

	var questions []model.Question
	err := query.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// ExistingIDs returns the subset of ids that exist.
func (r *QuestionRepository) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

type correctIndexRow struct {
	ID           uint
	CorrectIndex int
}

// CorrectIndexes 返回题目 id -> 正确选项下标
func (r *QuestionRepository) CorrectIndexes(ctx context.Context, ids []uint) (map[uint]int, error) {
	out := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []correctIndexRow
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Select("id, correct_index").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.CorrectIndex
	}
	return out, nil
}

package repository

import (
	"context"
	"strings"

	"skill_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) List(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

// ExistsByName 不区分大小写
func (r *SkillRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error
	return count > 0, err
}

func (r *SkillRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

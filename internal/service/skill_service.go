package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"

	"gorm.io/gorm"
)

type SkillService struct {
	SkillRepo *repository.SkillRepository
}

func NewSkillService(skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{SkillRepo: skillRepo}
}

func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	return s.SkillRepo.List(ctx)
}

func (s *SkillService) Create(ctx context.Context, name, description string) (*model.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, util.InvalidInput("name is required")
	}

	exists, err := s.SkillRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check skill name: %w", err)
	}
	if exists {
		return nil, util.ErrSkillExists
	}

	skill := &model.Skill{Name: name, Description: description}
	if err := s.SkillRepo.Create(ctx, skill); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrSkillExists
		}
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return skill, nil
}

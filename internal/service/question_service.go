package service

import (
	"context"
	"fmt"
	"strings"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"
)

type CreateQuestionInput struct {
	SkillID      uint     `json:"skill_id" binding:"required"`
	Question     string   `json:"question" binding:"required"`
	Options      []string `json:"options" binding:"required"`
	CorrectIndex *int     `json:"correct_index" binding:"required"`
	Difficulty   *int     `json:"difficulty"`
}

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	SkillRepo    *repository.SkillRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, skillRepo *repository.SkillRepository) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		SkillRepo:    skillRepo,
	}
}

func (s *QuestionService) List(ctx context.Context, skillID *uint, page, limit int) ([]model.Question, error) {
	questions, err := s.QuestionRepo.List(ctx, skillID, page, limit)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*model.Question, error) {
	text := strings.TrimSpace(in.Question)
	if in.SkillID == 0 || text == "" || in.CorrectIndex == nil {
		return nil, util.InvalidInput("skill_id, question, options and correct_index are required")
	}

	options := model.OptionList(in.Options)
	if err := options.ValidateCorrectIndex(*in.CorrectIndex); err != nil {
		return nil, util.InvalidInput(err.Error())
	}

	difficulty := 1
	if in.Difficulty != nil {
		if *in.Difficulty < 1 {
			return nil, util.InvalidInput("difficulty must be positive")
		}
		difficulty = *in.Difficulty
	}

	exists, err := s.SkillRepo.Exists(ctx, in.SkillID)
	if err != nil {
		return nil, fmt.Errorf("check skill: %w", err)
	}
	if !exists {
		return nil, util.ErrSkillNotFound
	}

	q := &model.Question{
		SkillID:      in.SkillID,
		Question:     text,
		Options:      options,
		CorrectIndex: *in.CorrectIndex,
		Difficulty:   difficulty,
	}
	if err := s.QuestionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

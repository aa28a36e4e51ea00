package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type QuizQuestionInput struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Position   *int `json:"position"`
}

type CreateQuizInput struct {
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	TimeLimitMinutes *int                `json:"time_limit_minutes"`
	Questions        []QuizQuestionInput `json:"questions" binding:"dive"`
}

// QuestionView 测验详情中的题目，非管理员看不到正确答案
type QuestionView struct {
	ID           uint             `json:"id"`
	SkillID      uint             `json:"skill_id"`
	Question     string           `json:"question"`
	Options      model.OptionList `json:"options"`
	CorrectIndex *int             `json:"correct_index,omitempty" copier:"-"`
	Difficulty   int              `json:"difficulty"`
	Position     int              `json:"position" copier:"-"`
}

type QuizDetail struct {
	ID               uint           `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	CreatedBy        *uint          `json:"created_by"`
	TimeLimitMinutes *int           `json:"time_limit_minutes"`
	CreatedAt        time.Time      `json:"created_at"`
	Questions        []QuestionView `json:"questions" copier:"-"`
}

type QuizService struct {
	DB           *gorm.DB
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
}

func NewQuizService(db *gorm.DB, quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository) *QuizService {
	return &QuizService{
		DB:           db,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
	}
}

// Create 在一个事务内写入测验及题目映射
func (s *QuizService) Create(ctx context.Context, caller *model.Identity, in CreateQuizInput) (*model.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(in.Questions) == 0 {
		return nil, util.InvalidInput("Missing title or questions")
	}
	if in.TimeLimitMinutes != nil && *in.TimeLimitMinutes <= 0 {
		return nil, util.InvalidInput("time_limit_minutes must be positive")
	}

	ids := make([]uint, 0, len(in.Questions))
	for _, q := range in.Questions {
		if q.QuestionID == 0 {
			return nil, util.InvalidInput("Every question needs a question_id")
		}
		ids = append(ids, q.QuestionID)
	}
	unique := distinctIDs(ids)
	if len(unique) != len(ids) {
		return nil, util.InvalidInputWithDetails("Duplicate question IDs", map[string]interface{}{
			"duplicates": duplicateIDs(ids),
		})
	}

	quiz := &model.Quiz{
		Title:            title,
		Description:      in.Description,
		TimeLimitMinutes: in.TimeLimitMinutes,
	}
	if caller != nil {
		quiz.CreatedBy = &caller.UserID
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.QuestionRepo.WithTx(tx).ExistingIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("check questions: %w", err)
		}
		if missing := subtractIDs(ids, existing); len(missing) > 0 {
			return util.InvalidInputWithDetails("Some question IDs not found", map[string]interface{}{
				"missing": missing,
			})
		}

		quizzes := s.QuizRepo.WithTx(tx)
		if err := quizzes.Create(ctx, quiz); err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}

		rows := make([]model.QuizQuestion, 0, len(in.Questions))
		for i, q := range in.Questions {
			position := i
			if q.Position != nil {
				position = *q.Position
			}
			rows = append(rows, model.QuizQuestion{
				QuizID:     quiz.ID,
				QuestionID: q.QuestionID,
				Position:   position,
			})
		}
		if err := quizzes.AddQuestions(ctx, rows); err != nil {
			return fmt.Errorf("add quiz questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// Get returns the quiz with its questions in position order.
func (s *QuizService) Get(ctx context.Context, id uint, withAnswers bool) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	mappings, err := s.QuizRepo.Mappings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load quiz questions: %w", err)
	}
	ids := make([]uint, 0, len(mappings))
	for _, m := range mappings {
		ids = append(ids, m.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	detail := &QuizDetail{}
	if err := copier.Copy(detail, quiz); err != nil {
		return nil, err
	}
	detail.Questions = make([]QuestionView, 0, len(mappings))
	for _, m := range mappings {
		q, ok := byID[m.QuestionID]
		if !ok {
			continue
		}
		var view QuestionView
		if err := copier.Copy(&view, &q); err != nil {
			return nil, err
		}
		view.Position = m.Position
		view.CorrectIndex = nil
		if withAnswers {
			correct := q.CorrectIndex
			view.CorrectIndex = &correct
		}
		detail.Questions = append(detail.Questions, view)
	}
	return detail, nil
}

func (s *QuizService) List(ctx context.Context, page, limit int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(ctx, page, limit)
}

func duplicateIDs(ids []uint) []uint {
	seen := make(map[uint]int, len(ids))
	out := []uint{}
	for _, id := range ids {
		seen[id]++
		if seen[id] == 2 {
			out = append(out, id)
		}
	}
	return out
}

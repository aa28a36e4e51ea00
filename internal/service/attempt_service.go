package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"
	"skill_quiz_backend/pkg/logger"
	"skill_quiz_backend/pkg/monitoring"
	"skill_quiz_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StartAttemptResult struct {
	AttemptID uint `json:"attempt_id"`
	QuizID    uint `json:"quiz_id"`
}

type SubmitAttemptResult struct {
	AttemptID  uint `json:"attempt_id"`
	TotalScore int  `json:"total_score"`
}

type EndAttemptResult struct {
	AttemptID uint   `json:"attempt_id"`
	Message   string `json:"message"`
}

type AttemptService struct {
	DB           *gorm.DB
	AttemptRepo  *repository.AttemptRepository
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	Now          Clock
}

func NewAttemptService(
	db *gorm.DB,
	attemptRepo *repository.AttemptRepository,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
) *AttemptService {
	return &AttemptService{
		DB:           db,
		AttemptRepo:  attemptRepo,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		Now:          utcNow,
	}
}

func (s *AttemptService) Start(ctx context.Context, caller *model.Identity, quizID uint, meta map[string]interface{}) (*StartAttemptResult, error) {
	if quizID == 0 {
		return nil, util.InvalidInput("Missing quiz_id")
	}

	exists, err := s.QuizRepo.Exists(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("check quiz: %w", err)
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	attempt := &model.QuizAttempt{
		UserID:    caller.UserID,
		QuizID:    &quizID,
		StartedAt: s.Now(),
	}
	if len(meta) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, util.InvalidInput("meta must be a JSON object")
		}
		attempt.Meta = datatypes.JSON(raw)
	}

	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	monitoring.AttemptsStarted.Inc()
	logger.Log.Info("Attempt started",
		zap.Uint("attempt_id", attempt.ID),
		zap.Uint("quiz_id", quizID),
		zap.Uint("user_id", caller.UserID),
	)
	return &StartAttemptResult{AttemptID: attempt.ID, QuizID: quizID}, nil
}

// Submit 在单个事务内校验、判分、写入答案并关闭答题记录，任一步失败整体回滚
func (s *AttemptService) Submit(ctx context.Context, caller *model.Identity, attemptID uint, answers []AnswerInput) (*SubmitAttemptResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AttemptService.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("attempt.id", int64(attemptID)),
		attribute.Int("attempt.answers", len(answers)),
	)

	result, err := s.submit(ctx, caller, attemptID, answers)
	if err != nil {
		monitoring.SubmissionsRejected.WithLabelValues(string(util.KindOf(err))).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	monitoring.AttemptsSubmitted.Inc()
	monitoring.AttemptScore.Observe(float64(result.TotalScore))
	logger.Log.Info("Attempt submitted",
		zap.Uint("attempt_id", result.AttemptID),
		zap.Uint("user_id", caller.UserID),
		zap.Int("total_score", result.TotalScore),
	)
	return result, nil
}

func (s *AttemptService) submit(ctx context.Context, caller *model.Identity, attemptID uint, answers []AnswerInput) (*SubmitAttemptResult, error) {
	if attemptID == 0 || len(answers) == 0 {
		return nil, util.InvalidInput("Missing data")
	}
	for _, a := range answers {
		if a.QuestionID == 0 {
			return nil, util.InvalidInput("Every answer needs a question_id")
		}
	}

	var result *SubmitAttemptResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.AttemptRepo.WithTx(tx)

		attempt, err := s.loadOwned(ctx, attempts, caller, attemptID)
		if err != nil {
			return err
		}
		if attempt.QuizID == nil {
			return util.ErrAttemptMissingQuiz
		}
		if attempt.Finished() {
			return util.ErrAttemptFinished
		}

		questionIDs := make([]uint, 0, len(answers))
		for _, a := range answers {
			questionIDs = append(questionIDs, a.QuestionID)
		}
		questionIDs = distinctIDs(questionIDs)

		members, err := s.QuizRepo.WithTx(tx).MemberQuestionIDs(ctx, *attempt.QuizID, questionIDs)
		if err != nil {
			return fmt.Errorf("load quiz membership: %w", err)
		}
		if invalid := subtractIDs(questionIDs, members); len(invalid) > 0 {
			logger.Log.Info("Submission rejected",
				zap.Uint("attempt_id", attemptID),
				zap.Uints("invalid", invalid),
			)
			return util.InvalidInputWithDetails("Some questions are not part of this quiz", map[string]interface{}{
				"invalid": invalid,
			})
		}

		correct, err := s.QuestionRepo.WithTx(tx).CorrectIndexes(ctx, questionIDs)
		if err != nil {
			return fmt.Errorf("load correct answers: %w", err)
		}

		scored, total := ScoreAnswers(answers, correct)
		now := s.Now()
		rows := make([]model.QuizAnswer, 0, len(scored))
		for _, sa := range scored {
			rows = append(rows, model.QuizAnswer{
				AttemptID:     attemptID,
				QuestionID:    sa.QuestionID,
				SelectedIndex: sa.SelectedIndex,
				Score:         sa.Score,
				AnsweredAt:    now,
			})
		}
		if err := attempts.CreateAnswers(ctx, rows); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}

		// 条件更新：并发提交时只有一个事务能命中 finished_at IS NULL
		affected, err := attempts.Finish(ctx, attemptID, now, total)
		if err != nil {
			return fmt.Errorf("finish attempt: %w", err)
		}
		if affected != 1 {
			return util.ErrAttemptFinished
		}

		result = &SubmitAttemptResult{AttemptID: attemptID, TotalScore: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// End closes an attempt without scoring it. total_score is left as is.
func (s *AttemptService) End(ctx context.Context, caller *model.Identity, attemptID uint) (*EndAttemptResult, error) {
	if attemptID == 0 {
		return nil, util.InvalidInput("Missing attempt_id")
	}

	attempt, err := s.loadOwned(ctx, s.AttemptRepo, caller, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Finished() {
		return nil, util.ErrAttemptFinished
	}

	affected, err := s.AttemptRepo.MarkEnded(ctx, attemptID, s.Now())
	if err != nil {
		return nil, fmt.Errorf("end attempt: %w", err)
	}
	if affected != 1 {
		return nil, util.ErrAttemptFinished
	}

	monitoring.AttemptsEnded.Inc()
	logger.Log.Info("Attempt ended", zap.Uint("attempt_id", attemptID), zap.Uint("user_id", caller.UserID))
	return &EndAttemptResult{AttemptID: attemptID, Message: "Attempt ended"}, nil
}

// Get returns the attempt with its answers.
func (s *AttemptService) Get(ctx context.Context, caller *model.Identity, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindWithAnswers(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if !caller.CanAccess(attempt.UserID) {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

func (s *AttemptService) loadOwned(ctx context.Context, repo *repository.AttemptRepository, caller *model.Identity, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := repo.FindByID(ctx, attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if !caller.CanAccess(attempt.UserID) {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

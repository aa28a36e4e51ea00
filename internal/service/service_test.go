package service

import (
	"context"
	"testing"
	"time"

	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/pkg/database"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type env struct {
	db        *gorm.DB
	cfg       *config.Config
	auth      *AuthService
	users     *UserService
	skills    *SkillService
	questions *QuestionService
	quizzes   *QuizService
	attempts  *AttemptService
	reports   *ReportService

	admin *model.Identity
	ann   *model.Identity
	bob   *model.Identity
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := database.NewTestDB(t)
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Report:  config.ReportConfig{CacheTTLSeconds: 60, DefaultRangeDays: 7, MaxRangeDays: 365},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}

	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	reportRepo := repository.NewReportRepository(db, nil)

	e := &env{
		db:        db,
		cfg:       cfg,
		auth:      NewAuthService(userRepo, cfg),
		users:     NewUserService(userRepo),
		skills:    NewSkillService(skillRepo),
		questions: NewQuestionService(questionRepo, skillRepo),
		quizzes:   NewQuizService(db, quizRepo, questionRepo),
		attempts:  NewAttemptService(db, attemptRepo, quizRepo, questionRepo),
		reports:   NewReportService(reportRepo, userRepo, NewStorageService(&cfg.Storage), &cfg.Report),
	}
	e.attempts.Now = func() time.Time { return fixedNow }
	e.reports.Now = func() time.Time { return fixedNow }

	e.admin = e.register(t, "Admin", "admin@example.com", model.RoleAdmin)
	e.ann = e.register(t, "Ann", "ann@example.com", model.RoleUser)
	e.bob = e.register(t, "Bob", "bob@example.com", model.RoleUser)
	return e
}

func (e *env) register(t *testing.T, name, email string, role model.UserRole) *model.Identity {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret123", Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return &model.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// twoQuestionQuiz builds a quiz whose questions have correct indexes 0 and 1.
func (e *env) twoQuestionQuiz(t *testing.T) (quizID, q1, q2 uint) {
	t.Helper()
	ctx := context.Background()
	skill, err := e.skills.Create(ctx, "Algorithms", "")
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	first, err := e.questions.Create(ctx, CreateQuestionInput{SkillID: skill.ID, Question: "q1", Options: []string{"A", "B"}, CorrectIndex: intPtr(0)})
	if err != nil {
		t.Fatalf("create q1: %v", err)
	}
	second, err := e.questions.Create(ctx, CreateQuestionInput{SkillID: skill.ID, Question: "q2", Options: []string{"A", "B"}, CorrectIndex: intPtr(1)})
	if err != nil {
		t.Fatalf("create q2: %v", err)
	}
	quiz, err := e.quizzes.Create(ctx, e.admin, CreateQuizInput{
		Title:     "Two",
		Questions: []QuizQuestionInput{{QuestionID: first.ID}, {QuestionID: second.ID}},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz.ID, first.ID, second.ID
}

func (e *env) start(t *testing.T, caller *model.Identity, quizID uint) uint {
	t.Helper()
	res, err := e.attempts.Start(context.Background(), caller, quizID, nil)
	if err != nil {
		t.Fatalf("start attempt: %v", err)
	}
	return res.AttemptID
}

func (e *env) loadAttempt(t *testing.T, id uint) *model.QuizAttempt {
	t.Helper()
	var a model.QuizAttempt
	if err := e.db.First(&a, id).Error; err != nil {
		t.Fatalf("load attempt %d: %v", id, err)
	}
	return &a
}

func (e *env) answerCount(t *testing.T, attemptID uint) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&model.QuizAnswer{}).Where("attempt_id = ?", attemptID).Count(&n).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	return n
}

func intPtr(v int) *int { return &v }

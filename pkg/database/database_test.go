package database

import (
	"testing"

	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := NewTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Seed(db, "admin@example.com", "Admin@123"); err != nil {
			t.Fatalf("Seed #%d failed: %v", i, err)
		}
	}

	var skills, admins int64
	db.Model(&model.Skill{}).Count(&skills)
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&admins)
	if skills != 2 || admins != 1 {
		t.Fatalf("skills=%d admins=%d, want 2 and 1", skills, admins)
	}
}

func TestQuestionsCascadeWithSkill(t *testing.T) {
	db := NewTestDB(t)

	skill := &model.Skill{Name: "Go"}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("create skill: %v", err)
	}
	q := &model.Question{SkillID: skill.ID, Question: "nil map write?", Options: model.OptionList{"panic", "ok"}, CorrectIndex: 0}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	if err := db.Delete(&model.Skill{}, skill.ID).Error; err != nil {
		t.Fatalf("delete skill: %v", err)
	}

	var n int64
	db.Model(&model.Question{}).Count(&n)
	if n != 0 {
		t.Fatalf("questions left after skill delete = %d, want 0", n)
	}
}

func TestAttemptOutlivesQuiz(t *testing.T) {
	db := NewTestDB(t)

	user := &model.User{Name: "U", Email: "u@example.com", Password: "x", Role: model.RoleUser}
	db.Create(user)
	quiz := &model.Quiz{Title: "Q"}
	db.Create(quiz)
	attempt := &model.QuizAttempt{UserID: user.ID, QuizID: &quiz.ID}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	if err := db.Delete(&model.Quiz{}, quiz.ID).Error; err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	var reloaded model.QuizAttempt
	if err := db.First(&reloaded, attempt.ID).Error; err != nil {
		t.Fatalf("attempt gone after quiz delete: %v", err)
	}
	if reloaded.QuizID != nil {
		t.Fatalf("quiz_id = %v, want nil", *reloaded.QuizID)
	}
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	if _, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

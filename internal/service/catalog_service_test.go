package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"skill_quiz_backend/internal/util"
)

func TestSkillNamesUniqueIgnoringCase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.skills.Create(ctx, "Go", "lang"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := e.skills.Create(ctx, "  go ", ""); !errors.Is(err, util.ErrSkillExists) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := e.skills.Create(ctx, " ", ""); util.KindOf(err) != util.KindInvalidInput {
		t.Fatalf("blank err = %v", err)
	}
}

func TestQuestionValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	skill, _ := e.skills.Create(ctx, "Go", "")

	cases := []struct {
		name string
		in   CreateQuestionInput
		kind util.ErrorKind
	}{
		{"empty options", CreateQuestionInput{SkillID: skill.ID, Question: "q", Options: []string{}, CorrectIndex: intPtr(0)}, util.KindInvalidInput},
		{"index out of range", CreateQuestionInput{SkillID: skill.ID, Question: "q", Options: []string{"a"}, CorrectIndex: intPtr(1)}, util.KindInvalidInput},
		{"negative index", CreateQuestionInput{SkillID: skill.ID, Question: "q", Options: []string{"a"}, CorrectIndex: intPtr(-1)}, util.KindInvalidInput},
		{"missing index", CreateQuestionInput{SkillID: skill.ID, Question: "q", Options: []string{"a"}}, util.KindInvalidInput},
		{"unknown skill", CreateQuestionInput{SkillID: 999, Question: "q", Options: []string{"a"}, CorrectIndex: intPtr(0)}, util.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.questions.Create(ctx, tc.in); util.KindOf(err) != tc.kind {
				t.Fatalf("err = %v, want %s", err, tc.kind)
			}
		})
	}
}

func TestQuestionOptionsPreserved(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	skill, _ := e.skills.Create(ctx, "Go", "")
	opts := []string{"goroutine", "channel", "select {}", "\"quoted\""}

	q, err := e.questions.Create(ctx, CreateQuestionInput{SkillID: skill.ID, Question: "pick", Options: opts, CorrectIndex: intPtr(3)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.Difficulty != 1 {
		t.Fatalf("difficulty = %d, want 1", q.Difficulty)
	}

	list, err := e.questions.List(ctx, &skill.ID, 1, 20)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = (%v, %v)", list, err)
	}
	if !reflect.DeepEqual([]string(list[0].Options), opts) {
		t.Fatalf("options = %v, want %v", list[0].Options, opts)
	}
}

func TestCreateQuizRules(t *testing.T) {
	e := newEnv(t)
	_, q1, q2 := e.twoQuestionQuiz(t)
	ctx := context.Background()

	_, err := e.quizzes.Create(ctx, e.admin, CreateQuizInput{Title: "x", Questions: []QuizQuestionInput{{QuestionID: q1}, {QuestionID: 777}}})
	var appErr *util.AppError
	if !errors.As(err, &appErr) || appErr.Kind != util.KindInvalidInput {
		t.Fatalf("missing err = %v", err)
	}
	if missing := appErr.Details.(map[string]interface{})["missing"].([]uint); len(missing) != 1 || missing[0] != 777 {
		t.Fatalf("missing = %v", missing)
	}

	_, err = e.quizzes.Create(ctx, e.admin, CreateQuizInput{Title: "x", Questions: []QuizQuestionInput{{QuestionID: q1}, {QuestionID: q1}}})
	if util.KindOf(err) != util.KindInvalidInput {
		t.Fatalf("duplicate err = %v", err)
	}

	if _, err := e.quizzes.Create(ctx, e.admin, CreateQuizInput{Title: "", Questions: []QuizQuestionInput{{QuestionID: q1}}}); util.KindOf(err) != util.KindInvalidInput {
		t.Fatalf("no title err = %v", err)
	}

	var count int64
	e.db.Table("quizzes").Count(&count)
	if count != 1 {
		t.Fatalf("quizzes = %d, want only the fixture quiz", count)
	}

	quiz, err := e.quizzes.Create(ctx, e.admin, CreateQuizInput{
		Title:     "ordered",
		Questions: []QuizQuestionInput{{QuestionID: q2, Position: intPtr(5)}, {QuestionID: q1, Position: intPtr(2)}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if quiz.CreatedBy == nil || *quiz.CreatedBy != e.admin.UserID {
		t.Fatalf("created_by = %v", quiz.CreatedBy)
	}

	detail, err := e.quizzes.Get(ctx, quiz.ID, false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.ID != quiz.ID || detail.Title != "ordered" || len(detail.Questions) != 2 {
		t.Fatalf("detail = %+v", detail)
	}
	if detail.Questions[0].ID != q1 || detail.Questions[0].Position != 2 || detail.Questions[1].ID != q2 {
		t.Fatalf("question order = %+v", detail.Questions)
	}
	if detail.Questions[0].CorrectIndex != nil {
		t.Fatalf("correct index leaked to learner view")
	}
	if len(detail.Questions[0].Options) != 2 {
		t.Fatalf("options = %v", detail.Questions[0].Options)
	}

	adminView, err := e.quizzes.Get(ctx, quiz.ID, true)
	if err != nil || adminView.Questions[1].CorrectIndex == nil || *adminView.Questions[1].CorrectIndex != 1 {
		t.Fatalf("admin view = (%+v, %v)", adminView, err)
	}

	if _, err := e.quizzes.Get(ctx, 4040, false); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("missing quiz err = %v", err)
	}
}

func TestCreateQuizDefaultPositions(t *testing.T) {
	e := newEnv(t)
	quizID, q1, q2 := e.twoQuestionQuiz(t)

	detail, err := e.quizzes.Get(context.Background(), quizID, true)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Questions[0].ID != q1 || detail.Questions[0].Position != 0 || detail.Questions[1].ID != q2 || detail.Questions[1].Position != 1 {
		t.Fatalf("questions = %+v", detail.Questions)
	}
}

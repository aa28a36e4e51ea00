package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"skill_quiz_backend/internal/util"

	"gorm.io/gorm"
)

// 答案写入之后、结束更新之前答题被关闭：整个提交必须回滚
func TestSubmitRollsBackWhenAttemptClosedMidway(t *testing.T) {
	e := newEnv(t)
	quizID, q1, q2 := e.twoQuestionQuiz(t)
	ctx := context.Background()
	id := e.start(t, e.ann, quizID)

	err := e.db.Callback().Create().After("gorm:create").Register("test:close_attempt", func(db *gorm.DB) {
		if db.Error != nil || db.Statement.Table != "quiz_answers" {
			return
		}
		// 同一事务内执行，结束更新会看到 finished_at 已被设置
		db.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE quiz_attempts SET finished_at = ? WHERE id = ?", fixedNow, id)
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = e.attempts.Submit(ctx, e.ann, id, []AnswerInput{{q1, intPtr(0)}, {q2, intPtr(1)}})
	if !errors.Is(err, util.ErrAttemptFinished) {
		t.Fatalf("err = %v, want attempt finished", err)
	}

	if n := e.answerCount(t, id); n != 0 {
		t.Fatalf("answers = %d, want 0 after rollback", n)
	}
	a := e.loadAttempt(t, id)
	if a.FinishedAt != nil || a.TotalScore != 0 {
		t.Fatalf("attempt = finished %v total %d, want untouched", a.FinishedAt, a.TotalScore)
	}
}

func TestConcurrentSubmitFinishesOnce(t *testing.T) {
	e := newEnv(t)
	quizID, q1, q2 := e.twoQuestionQuiz(t)
	id := e.start(t, e.ann, quizID)

	const workers = 8
	answers := []AnswerInput{{q1, intPtr(0)}, {q2, intPtr(1)}}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.attempts.Submit(context.Background(), e.ann, id, answers)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want 1 (failures: %v)", successes, failures)
	}
	for _, err := range failures {
		if !errors.Is(err, util.ErrAttemptFinished) {
			t.Logf("losing submit: %v", err)
		}
	}
	if n := e.answerCount(t, id); n != 2 {
		t.Fatalf("answers = %d, want 2", n)
	}
	if a := e.loadAttempt(t, id); a.TotalScore != 2 || a.FinishedAt == nil {
		t.Fatalf("attempt = finished %v total %d, want finished with 2", a.FinishedAt, a.TotalScore)
	}
}

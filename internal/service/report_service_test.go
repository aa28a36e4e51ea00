package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/util"
)

func TestUserPerformance(t *testing.T) {
	e := newEnv(t)
	quizID, q1, q2 := e.twoQuestionQuiz(t)
	ctx := context.Background()

	full := e.start(t, e.ann, quizID)
	if _, err := e.attempts.Submit(ctx, e.ann, full, []AnswerInput{{q1, intPtr(0)}, {q2, intPtr(1)}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	e.attempts.Now = func() time.Time { return fixedNow.Add(time.Hour) }
	half := e.start(t, e.ann, quizID)
	if _, err := e.attempts.Submit(ctx, e.ann, half, []AnswerInput{{q1, intPtr(1)}, {q2, intPtr(1)}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	e.attempts.Now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	open := e.start(t, e.ann, quizID)

	report, err := e.reports.UserPerformance(ctx, e.ann, e.ann.UserID, nil)
	if err != nil {
		t.Fatalf("UserPerformance: %v", err)
	}
	if len(report.Attempts) != 3 || report.Attempts[0].ID != open || report.Attempts[2].ID != full {
		t.Fatalf("attempts = %+v", report.Attempts)
	}
	if report.Avg != 1.5 {
		t.Fatalf("avg = %v, want 1.5", report.Avg)
	}

	if _, err := e.reports.UserPerformance(ctx, e.bob, e.ann.UserID, nil); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("bob err = %v", err)
	}
	if _, err := e.reports.UserPerformance(ctx, e.admin, 9999, nil); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("missing user err = %v", err)
	}

	empty, err := e.reports.UserPerformance(ctx, e.bob, e.bob.UserID, nil)
	if err != nil || empty.Avg != 0 || empty.Attempts == nil || len(empty.Attempts) != 0 {
		t.Fatalf("empty report = (%+v, %v)", empty, err)
	}
}

func TestSkillGapMean(t *testing.T) {
	e := newEnv(t)
	quizID, q1, q2 := e.twoQuestionQuiz(t)
	ctx := context.Background()

	rows, err := e.reports.SkillGap(ctx, model.SkillGapFilter{})
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("empty SkillGap = (%#v, %v)", rows, err)
	}

	a := e.start(t, e.ann, quizID)
	if _, err := e.attempts.Submit(ctx, e.ann, a, []AnswerInput{{q1, intPtr(0)}, {q2, intPtr(0)}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	b := e.start(t, e.bob, quizID)
	if _, err := e.attempts.Submit(ctx, e.bob, b, []AnswerInput{{q1, intPtr(0)}, {q2, intPtr(1)}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rows, err = e.reports.SkillGap(ctx, model.SkillGapFilter{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("SkillGap = (%+v, %v)", rows, err)
	}
	if rows[0].AvgScore != 0.75 || rows[0].Skill == nil || *rows[0].Skill != "Algorithms" {
		t.Fatalf("row = %+v, want avg 0.75", rows[0])
	}

	rows, err = e.reports.SkillGap(ctx, model.SkillGapFilter{UserID: &e.ann.UserID})
	if err != nil || len(rows) != 1 || rows[0].AvgScore != 0.5 {
		t.Fatalf("ann SkillGap = (%+v, %v)", rows, err)
	}

	before := fixedNow.Add(-time.Hour)
	rows, err = e.reports.SkillGap(ctx, model.SkillGapFilter{To: &before})
	if err != nil || len(rows) != 0 {
		t.Fatalf("bounded SkillGap = (%+v, %v)", rows, err)
	}

	to := fixedNow
	from := fixedNow.Add(time.Minute)
	if _, err := e.reports.SkillGap(ctx, model.SkillGapFilter{From: &from, To: &to}); util.KindOf(err) != util.KindInvalidInput {
		t.Fatalf("inverted range err = %v", err)
	}
}

func TestTimeSeries(t *testing.T) {
	e := newEnv(t)
	quizID, q1, _ := e.twoQuestionQuiz(t)
	ctx := context.Background()

	starts := []time.Time{
		fixedNow.Add(-10 * 24 * time.Hour),
		fixedNow.Add(-24 * time.Hour),
		fixedNow.Add(-23 * time.Hour),
		fixedNow.Add(-time.Hour),
	}
	for i, at := range starts {
		at := at
		e.attempts.Now = func() time.Time { return at }
		id := e.start(t, e.ann, quizID)
		selected := 1
		if i%2 == 1 {
			selected = 0
		}
		if _, err := e.attempts.Submit(ctx, e.ann, id, []AnswerInput{{q1, intPtr(selected)}}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	points, err := e.reports.TimeSeries(ctx, 7, nil)
	if err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
	want := []model.TimeSeriesPoint{
		{Date: "2026-10-14", Attempts: 2, AvgScore: 0.5},
		{Date: "2026-10-15", Attempts: 1, AvgScore: 1},
	}
	if len(points) != len(want) {
		t.Fatalf("points = %+v, want %+v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, points[i], want[i])
		}
	}

	other := quizID + 1
	points, err = e.reports.TimeSeries(ctx, 30, &other)
	if err != nil || points == nil || len(points) != 0 {
		t.Fatalf("other quiz = (%#v, %v)", points, err)
	}
}

func TestBucketByDayRounds(t *testing.T) {
	day := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	points := BucketByDay([]model.AttemptScoreRow{
		{StartedAt: day, TotalScore: 1},
		{StartedAt: day.Add(time.Hour), TotalScore: 0},
		{StartedAt: day.Add(2 * time.Hour), TotalScore: 0},
	})
	if len(points) != 1 || points[0].AvgScore != 0.33 || points[0].Attempts != 3 {
		t.Fatalf("points = %+v", points)
	}
}

func TestExportUserReport(t *testing.T) {
	e := newEnv(t)
	quizID, q1, _ := e.twoQuestionQuiz(t)
	ctx := context.Background()
	id := e.start(t, e.ann, quizID)
	if _, err := e.attempts.Submit(ctx, e.ann, id, []AnswerInput{{q1, intPtr(0)}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	res, err := e.reports.ExportUserReport(ctx, e.ann.UserID, nil, "csv")
	if err != nil {
		t.Fatalf("ExportUserReport: %v", err)
	}
	if !strings.HasPrefix(res.URL, "/exports/reports/") || !strings.HasSuffix(res.Object, ".csv") {
		t.Fatalf("result = %+v", res)
	}

	body, err := os.ReadFile(filepath.Join(e.cfg.Storage.LocalPath, filepath.FromSlash(res.Object)))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "attempt_id,") || !strings.HasSuffix(lines[2], "1.00") {
		t.Fatalf("csv = %q", body)
	}

	if _, err := e.reports.ExportUserReport(ctx, e.ann.UserID, nil, "xml"); util.KindOf(err) != util.KindInvalidInput {
		t.Fatalf("xml err = %v", err)
	}
	if _, err := e.reports.ExportUserReport(ctx, 9999, nil, "json"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}

func TestCacheTTLUpdate(t *testing.T) {
	e := newEnv(t)
	if e.reports.CacheTTL() != time.Minute {
		t.Fatalf("ttl = %v", e.reports.CacheTTL())
	}
	e.reports.SetCacheTTL(5 * time.Second)
	if e.reports.CacheTTL() != 5*time.Second {
		t.Fatalf("ttl = %v after update", e.reports.CacheTTL())
	}
}

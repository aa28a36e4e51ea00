package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// 绑定失败时不会调用服务层，所以这里不需要注入 service
func postJSON(handler gin.HandlerFunc, body string) int {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", handler)

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSubmitRejectsAnswerWithoutQuestionID(t *testing.T) {
	c := NewAttemptController(nil)
	body := `{"attempt_id": 1, "answers": [{"question_id": 3, "selected_index": 0}, {"selected_index": 1}]}`
	if got := postJSON(c.Submit, body); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}

func TestCreateQuizRejectsQuestionWithoutID(t *testing.T) {
	c := NewQuizController(nil)
	body := `{"title": "t", "questions": [{"position": 0}]}`
	if got := postJSON(c.Create, body); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", got)
	}
}

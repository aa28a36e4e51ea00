package service

// AnswerInput is one submitted response. A nil SelectedIndex means unanswered.
type AnswerInput struct {
	QuestionID    uint `json:"question_id" binding:"required"`
	SelectedIndex *int `json:"selected_index"`
}

type ScoredAnswer struct {
	QuestionID    uint
	SelectedIndex *int
	Score         int
}

// ScoreAnswers 按提交顺序逐题判分：选中下标等于正确下标得 1 分，否则 0 分。
// correct 中找不到的题目记 0 分。
func ScoreAnswers(answers []AnswerInput, correct map[uint]int) ([]ScoredAnswer, int) {
	scored := make([]ScoredAnswer, 0, len(answers))
	total := 0
	for _, a := range answers {
		score := 0
		if idx, ok := correct[a.QuestionID]; ok && a.SelectedIndex != nil && *a.SelectedIndex == idx {
			score = 1
		}
		total += score
		scored = append(scored, ScoredAnswer{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
			Score:         score,
		})
	}
	return scored, total
}

package service

import (
	"context"
	"fmt"
	"strings"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/util"
	"skill_quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// QuestionBank 题库文件格式，见 configs/question_bank.example.yaml
type QuestionBank struct {
	Skills  []BankSkill `yaml:"skills"`
	Quizzes []BankQuiz  `yaml:"quizzes"`
}

type BankSkill struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Questions   []BankQuestion `yaml:"questions"`
}

type BankQuestion struct {
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Difficulty   int      `yaml:"difficulty"`
}

// BankQuiz 由所列技能下本次导入的全部题目组成
type BankQuiz struct {
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	TimeLimitMinutes *int     `yaml:"time_limit_minutes"`
	Skills           []string `yaml:"skills"`
}

type ImportSummary struct {
	Skills    int
	Questions int
	Quizzes   int
}

func ParseQuestionBank(data []byte) (*QuestionBank, error) {
	var bank QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, util.InvalidInput(fmt.Sprintf("invalid question bank: %v", err))
	}
	return &bank, nil
}

type BankImporter struct {
	Skills    *SkillService
	Questions *QuestionService
	Quizzes   *QuizService
}

func NewBankImporter(skills *SkillService, questions *QuestionService, quizzes *QuizService) *BankImporter {
	return &BankImporter{Skills: skills, Questions: questions, Quizzes: quizzes}
}

// Import 已存在的技能按名称(忽略大小写)复用，题目总是新建
func (b *BankImporter) Import(ctx context.Context, caller *model.Identity, bank *QuestionBank) (*ImportSummary, error) {
	existing, err := b.Skills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	skillIDs := make(map[string]uint, len(existing))
	for _, s := range existing {
		skillIDs[strings.ToLower(s.Name)] = s.ID
	}

	summary := &ImportSummary{}
	imported := make(map[string][]uint)

	for _, bs := range bank.Skills {
		key := strings.ToLower(strings.TrimSpace(bs.Name))
		skillID, ok := skillIDs[key]
		if !ok {
			skill, err := b.Skills.Create(ctx, bs.Name, bs.Description)
			if err != nil {
				return summary, fmt.Errorf("skill %q: %w", bs.Name, err)
			}
			skillID = skill.ID
			skillIDs[key] = skillID
			summary.Skills++
		}

		for i, bq := range bs.Questions {
			in := CreateQuestionInput{
				SkillID:      skillID,
				Question:     bq.Question,
				Options:      bq.Options,
				CorrectIndex: &bq.CorrectIndex,
			}
			if bq.Difficulty != 0 {
				in.Difficulty = &bq.Difficulty
			}
			q, err := b.Questions.Create(ctx, in)
			if err != nil {
				return summary, fmt.Errorf("skill %q question %d: %w", bs.Name, i+1, err)
			}
			imported[key] = append(imported[key], q.ID)
			summary.Questions++
		}
	}

	for _, bq := range bank.Quizzes {
		var questions []QuizQuestionInput
		for _, name := range bq.Skills {
			for _, id := range imported[strings.ToLower(strings.TrimSpace(name))] {
				questions = append(questions, QuizQuestionInput{QuestionID: id})
			}
		}
		quiz, err := b.Quizzes.Create(ctx, caller, CreateQuizInput{
			Title:            bq.Title,
			Description:      bq.Description,
			TimeLimitMinutes: bq.TimeLimitMinutes,
			Questions:        questions,
		})
		if err != nil {
			return summary, fmt.Errorf("quiz %q: %w", bq.Title, err)
		}
		logger.Log.Info("Imported quiz", zap.Uint("quizId", quiz.ID), zap.Int("questions", len(questions)))
		summary.Quizzes++
	}

	return summary, nil
}

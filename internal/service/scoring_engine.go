package service

import (
	"fmt"
	"math"

	"learnsphere_backend/internal/model"
)

// DefaultPassingScore 测验未配置及格线时的默认值
const DefaultPassingScore = 70

// OptionSnapshot 下发给作答端的选项视图，不含正确性标记
type OptionSnapshot struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// QuestionSnapshot 作答期间题目的不可变视图
type QuestionSnapshot struct {
	ID      uint               `json:"id"`
	Text    string             `json:"text"`
	Type    model.QuestionType `json:"type"`
	Points  float64            `json:"points"`
	Order   int                `json:"order"`
	Options []OptionSnapshot   `json:"options"`

	correct map[uint]bool
}

// QuestionSet 一次作答的题目快照，开始作答时构建，之后不再读库
type QuestionSet struct {
	QuizID       uint               `json:"quizId"`
	PassingScore int                `json:"passingScore"`
	Questions    []QuestionSnapshot `json:"questions"`
}

// NewQuestionSet 从预加载的 Quiz 构建快照，保持题目与选项的 order 顺序
func NewQuestionSet(quiz *model.Quiz) QuestionSet {
	passing := quiz.PassingScore
	if passing <= 0 {
		passing = DefaultPassingScore
	}

	set := QuestionSet{
		QuizID:       quiz.ID,
		PassingScore: passing,
		Questions:    make([]QuestionSnapshot, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		snap := QuestionSnapshot{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Points:  q.Points,
			Order:   q.Order,
			Options: make([]OptionSnapshot, 0, len(q.Options)),
			correct: make(map[uint]bool),
		}
		for _, o := range q.Options {
			snap.Options = append(snap.Options, OptionSnapshot{ID: o.ID, Text: o.Text, Order: o.Order})
			if o.IsCorrect {
				snap.correct[o.ID] = true
			}
		}
		set.Questions = append(set.Questions, snap)
	}
	return set
}

func (s *QuestionSet) findQuestion(questionID uint) *QuestionSnapshot {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return &s.Questions[i]
		}
	}
	return nil
}

func (q *QuestionSnapshot) hasOption(optionID uint) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// QuestionScore 单题评分结果
type QuestionScore struct {
	QuestionID   uint    `json:"questionId"`
	SelectedIDs  []uint  `json:"selectedIds"`
	IsCorrect    bool    `json:"isCorrect"`
	PointsEarned float64 `json:"pointsEarned"`
}

// AttemptScore 一次作答的完整评分结果
type AttemptScore struct {
	PerQuestion   []QuestionScore `json:"perQuestion"`
	TotalEarned   float64         `json:"totalEarned"`
	TotalPossible float64         `json:"totalPossible"`
	Percentage    int             `json:"percentage"`
	Passed        bool            `json:"passed"`
}

// ScoreAttempt 纯函数评分：同样的快照和答案永远得到同样的结果，不触发任何持久化。
// 未作答的题目按空选集计为 0 分。
func ScoreAttempt(set QuestionSet, answers map[uint][]uint) (*AttemptScore, error) {
	result := &AttemptScore{
		PerQuestion: make([]QuestionScore, 0, len(set.Questions)),
	}

	for i := range set.Questions {
		q := &set.Questions[i]
		qs, err := scoreQuestion(q, answers[q.ID])
		if err != nil {
			return nil, err
		}
		result.PerQuestion = append(result.PerQuestion, qs)
		result.TotalEarned += qs.PointsEarned
		result.TotalPossible += q.Points
	}

	result.TotalEarned = round2(result.TotalEarned)
	if result.TotalPossible > 0 {
		result.Percentage = int(math.Round(100 * result.TotalEarned / result.TotalPossible))
	}
	result.Passed = result.Percentage >= set.PassingScore
	return result, nil
}

func scoreQuestion(q *QuestionSnapshot, selected []uint) (QuestionScore, error) {
	qs := QuestionScore{
		QuestionID:  q.ID,
		SelectedIDs: selected,
	}

	switch q.Type {
	case model.SingleChoice, model.TrueFalse:
		// 二元判定：恰好选中唯一正确项得满分，多选、漏选或选错均为 0 分
		if len(selected) == 1 && q.correct[selected[0]] {
			qs.IsCorrect = true
			qs.PointsEarned = q.Points
		}

	case model.MultipleAnswer:
		// 部分得分：每个正确选项价值 points/C，选错一个抵消一个正确项，下限 0
		c := len(q.correct)
		correctSelected := 0
		incorrectSelected := 0
		for _, id := range selected {
			if q.correct[id] {
				correctSelected++
			} else {
				incorrectSelected++
			}
		}
		unit := q.Points / float64(c)
		raw := float64(correctSelected)*unit - float64(incorrectSelected)*unit
		qs.PointsEarned = round2(math.Max(0, raw))
		qs.IsCorrect = correctSelected == c && incorrectSelected == 0

	default:
		return qs, fmt.Errorf("unknown question type %q for question %d", q.Type, q.ID)
	}

	return qs, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

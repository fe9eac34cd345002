package service

import "quiz_app_backend/internal/model"

// AnswerSubmission 考生提交的一条 (题目, 选项) 对
type AnswerSubmission struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}

// CorrectAnswerSets 从题目集合里提取 questionID -> 正确选项ID集合。
// 只有选择类题目有标准答案，其余题型不参与自动判分。
func CorrectAnswerSets(questions []model.Question) map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(questions))
	for _, q := range questions {
		if !q.QuestionType.IsChoice() {
			continue
		}
		set := make(map[string]bool)
		for _, a := range q.Answers {
			if a.IsCorrect {
				set[a.ID] = true
			}
		}
		sets[q.ID] = set
	}
	return sets
}

// GradeSubmission 逐条判分，判分范围限定在所提交的题目内：
// 选项必须是该题的正确选项才得分，属于别的题的正确选项不算。
// 多选题按选项独立计分，不做整题部分得分。
func GradeSubmission(submissions []AnswerSubmission, correctByQuestion map[string]map[string]bool) []bool {
	marks := make([]bool, len(submissions))
	for i, sub := range submissions {
		set, ok := correctByQuestion[sub.QuestionID]
		if !ok {
			continue
		}
		marks[i] = set[sub.AnswerID]
	}
	return marks
}

// ComputeScore 计算得分率，浮点除法，返回 [0,1] 区间的小数
func ComputeScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

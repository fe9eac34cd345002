package service

import (
	"testing"

	"quiz_app_backend/internal/model"
)

func choiceQuestion(id string, correct ...string) model.Question {
	q := model.Question{
		UUIDBase:     model.UUIDBase{ID: id},
		QuestionType: model.SingleChoice,
	}
	correctSet := make(map[string]bool, len(correct))
	for _, c := range correct {
		correctSet[c] = true
	}
	for _, aid := range append(correct, id+"-wrong") {
		q.Answers = append(q.Answers, model.Answer{
			UUIDBase:  model.UUIDBase{ID: aid},
			IsCorrect: correctSet[aid],
		})
	}
	return q
}

func TestCorrectAnswerSetsSkipsNonChoiceTypes(t *testing.T) {
	questions := []model.Question{
		choiceQuestion("q1", "q1-right"),
		{
			UUIDBase:     model.UUIDBase{ID: "q2"},
			QuestionType: model.ShortAnswer,
			Answers:      []model.Answer{{UUIDBase: model.UUIDBase{ID: "a1"}, IsCorrect: true}},
		},
	}

	sets := CorrectAnswerSets(questions)
	if _, ok := sets["q1"]; !ok {
		t.Fatal("choice question missing from answer sets")
	}
	if _, ok := sets["q2"]; ok {
		t.Fatal("short answer questions must not be auto-graded")
	}
}

func TestGradeSubmissionScopedToQuestion(t *testing.T) {
	sets := CorrectAnswerSets([]model.Question{
		choiceQuestion("q1", "a1"),
		choiceQuestion("q2", "a2"),
	})

	marks := GradeSubmission([]AnswerSubmission{
		{QuestionID: "q1", AnswerID: "a1"}, // correct for q1
		{QuestionID: "q1", AnswerID: "a2"}, // correct option, wrong question
		{QuestionID: "q2", AnswerID: "a2"}, // correct for q2
		{QuestionID: "q9", AnswerID: "a1"}, // unknown question
	}, sets)

	want := []bool{true, false, true, false}
	if len(marks) != len(want) {
		t.Fatalf("expected %d marks, got %d", len(want), len(marks))
	}
	for i := range want {
		if marks[i] != want[i] {
			t.Fatalf("mark %d: got %v, want %v", i, marks[i], want[i])
		}
	}
}

func TestGradeSubmissionEmpty(t *testing.T) {
	marks := GradeSubmission(nil, map[string]map[string]bool{})
	if len(marks) != 0 {
		t.Fatalf("expected no marks, got %d", len(marks))
	}
}

func TestComputeScore(t *testing.T) {
	cases := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"all correct", 4, 4, 1},
		{"none correct", 0, 4, 0},
		{"fractional", 1, 3, 1.0 / 3.0},
		{"half", 1, 2, 0.5},
		{"zero total", 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeScore(tc.correct, tc.total)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

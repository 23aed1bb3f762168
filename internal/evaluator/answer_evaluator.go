// Package evaluator decides whether a user's answer matches the expected one.
package evaluator

import (
	"strings"

	"lecture-quiz/internal/domain"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds s.
// Internal whitespace is left as is.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// IsExactMatchType reports whether answers to questionType are graded by
// exact comparison.
func IsExactMatchType(questionType string) bool {
	switch strings.ToLower(strings.TrimSpace(questionType)) {
	case domain.TagMCQ, string(domain.MultipleChoice), string(domain.TrueFalse):
		return true
	default:
		return false
	}
}

// Evaluate compares userAnswer with correctAnswer.
//
// Multiple-choice and true/false answers are correct only when both strings
// are equal after Normalize. Every other question type, short_answer
// included, yields domain.VerdictNotImplemented.
func Evaluate(userAnswer, correctAnswer, questionType string) domain.Verdict {
	if !IsExactMatchType(questionType) {
		return domain.VerdictNotImplemented
	}
	if Normalize(userAnswer) == Normalize(correctAnswer) {
		return domain.VerdictCorrect
	}
	return domain.VerdictIncorrect
}

// EvaluateQuestion is Evaluate applied to a parsed question.
func EvaluateQuestion(q *domain.Question, userAnswer string) domain.Verdict {
	return Evaluate(userAnswer, q.CorrectAnswer, string(q.Type))
}

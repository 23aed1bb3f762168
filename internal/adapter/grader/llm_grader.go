package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/parser"

	"go.uber.org/zap"
)

const gradePrompt = `You are a quiz answer evaluator. Evaluate the answer and respond with ONLY a JSON object in the following format:
{
    "score": 0.0,
    "explanation": "brief explanation here"
}

Question: %s
Model Answer: %s
User's Answer: %s

Rules:
1. score must be between 0 and 1 (1 means the user's answer says the same thing as the model answer)
2. Judge meaning, not wording; synonyms and rephrasing are fine
3. Explanation must be under 50 words`

// LLMGrader grades short answers by asking a language model for a score.
type LLMGrader struct {
	llm       domain.TextGenerator
	threshold float64
}

// NewLLMGrader creates a grader; answers scoring at least threshold are correct.
func NewLLMGrader(llm domain.TextGenerator, threshold float64) *LLMGrader {
	return &LLMGrader{llm: llm, threshold: threshold}
}

type llmGrade struct {
	Score       *float64 `json:"score"`
	Explanation string   `json:"explanation"`
}

// Grade implements domain.ShortAnswerGrader
func (g *LLMGrader) Grade(ctx context.Context, question *domain.Question, userAnswer string) (*domain.Grade, error) {
	l := logger.Get()
	prompt := fmt.Sprintf(gradePrompt, question.Text, question.CorrectAnswer, userAnswer)

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	extracted, ok := extractJSONObject(raw)
	if !ok {
		l.Error("No JSON object found in LLM grading response", zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(fmt.Errorf("no JSON object found in LLM response"))
	}

	var resp llmGrade
	if err := json.Unmarshal([]byte(extracted), &resp); err != nil {
		l.Error("Failed to unmarshal LLM grading response", zap.Error(err), zap.String("json", extracted))
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to unmarshal JSON from LLM: %w", err))
	}
	if resp.Score == nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM grading response has no score"))
	}

	score := clamp(*resp.Score)
	return &domain.Grade{
		Verdict:     verdictFor(score, g.threshold),
		Score:       score,
		Explanation: resp.Explanation,
	}, nil
}

// extractJSONObject drops <think> blocks and fences, then returns the text
// between the first '{' and the last '}'.
func extractJSONObject(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if start := strings.Index(s, "<think>"); start != -1 {
		if end := strings.Index(s, "</think>"); end > start {
			s = s[:start] + s[end+len("</think>"):]
		}
	}
	s = parser.StripFences(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func verdictFor(score, threshold float64) domain.Verdict {
	if score >= threshold {
		return domain.VerdictCorrect
	}
	return domain.VerdictIncorrect
}

var _ domain.ShortAnswerGrader = (*LLMGrader)(nil)

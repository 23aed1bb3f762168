package quizgen

import (
	"context"
	"fmt"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

const promptTemplate = `Based on the following lecture notes, generate %d %s questions.

LECTURE NOTES:
%s

Return ONLY valid JSON in this exact format:
{
    "questions": [
        {
            "question_text": "Your question here",
            "correct_answer": "The correct answer text",
            "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
            "explanation": "Why this is correct"
        }
    ]
}

IMPORTANT RULES:
- For multiple_choice: options must be 4 meaningful choices related to the question, not "A", "B", "C", "D". The correct_answer must match one of the options exactly.
- For true_false: options should be ["True", "False"]. correct_answer should be "True" or "False".
- For short_answer: options should be an empty list [].
`

// BuildPrompt renders the generation prompt for the given lecture notes.
func BuildPrompt(content string, numQuestions int, questionType domain.QuestionType) string {
	return fmt.Sprintf(promptTemplate, numQuestions, questionType, content)
}

// Generator implements domain.QuestionGenerator by prompting a text generator.
type Generator struct {
	llm domain.TextGenerator
}

// NewGenerator creates a new Generator.
func NewGenerator(llm domain.TextGenerator) (*Generator, error) {
	if llm == nil {
		return nil, fmt.Errorf("text generator cannot be nil")
	}
	return &Generator{llm: llm}, nil
}

// GenerateRaw asks the model for questions and returns its unparsed reply.
func (g *Generator) GenerateRaw(ctx context.Context, content string, numQuestions int, questionType domain.QuestionType) (string, error) {
	l := logger.Get()
	prompt := BuildPrompt(content, numQuestions, questionType)

	l.Info("Requesting quiz questions from LLM",
		zap.Int("num_questions", numQuestions),
		zap.String("question_type", string(questionType)),
		zap.Int("content_chars", len(content)))
	l.Debug("Quiz generation prompt", zap.String("prompt", prompt))

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return "", domain.NewLLMServiceError(err)
	}

	l.Debug("Raw LLM quiz response", zap.String("raw_response", raw))
	return raw, nil
}

// Static assertion to ensure Generator implements QuestionGenerator
var _ domain.QuestionGenerator = (*Generator)(nil)

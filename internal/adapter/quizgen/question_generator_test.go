package quizgen_test

import (
	"context"
	"errors"
	"testing"

	"lecture-quiz/internal/adapter/quizgen"
	"lecture-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestBuildPrompt(t *testing.T) {
	content := "Machine learning is a subset of AI."
	prompt := quizgen.BuildPrompt(content, 2, domain.TrueFalse)

	assert.Contains(t, prompt, "generate 2 true_false questions")
	assert.Contains(t, prompt, "LECTURE NOTES:\n"+content)
	assert.Contains(t, prompt, `"questions"`)
	assert.Contains(t, prompt, `"question_text"`)
	assert.Contains(t, prompt, `"correct_answer"`)
	assert.Contains(t, prompt, `"options"`)
	assert.Contains(t, prompt, `"explanation"`)
	assert.Contains(t, prompt, `options should be ["True", "False"]`)
}

func TestNewGenerator(t *testing.T) {
	_, err := quizgen.NewGenerator(nil)
	assert.Error(t, err)
}

func TestGenerator_GenerateRaw(t *testing.T) {
	ctx := context.Background()
	content := "Supervised learning uses labeled data."

	t.Run("success", func(t *testing.T) {
		llm := new(MockTextGenerator)
		expectedPrompt := quizgen.BuildPrompt(content, 3, domain.MultipleChoice)
		llm.On("Generate", ctx, expectedPrompt).Return("```json\n{\"questions\":[]}\n```", nil).Once()

		gen, err := quizgen.NewGenerator(llm)
		require.NoError(t, err)

		raw, err := gen.GenerateRaw(ctx, content, 3, domain.MultipleChoice)
		require.NoError(t, err)
		assert.Equal(t, "```json\n{\"questions\":[]}\n```", raw)
		llm.AssertExpectations(t)
	})

	t.Run("llm failure", func(t *testing.T) {
		llm := new(MockTextGenerator)
		llmErr := errors.New("connection refused")
		llm.On("Generate", ctx, mock.Anything).Return("", llmErr).Once()

		gen, err := quizgen.NewGenerator(llm)
		require.NoError(t, err)

		_, err = gen.GenerateRaw(ctx, content, 1, domain.ShortAnswer)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))
		assert.ErrorIs(t, err, llmErr)
	})
}

package parser

import (
	"encoding/json"
	"fmt"
	"testing"

	"lecture-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithmeticPayload = `{"questions":[{"question_text":"2+2?","correct_answer":"4","options":["3","4","5","6"],"explanation":"basic arithmetic"}]}`

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json {\"a\":1} ```\n ", `{"a":1}`},
		{"leading fence only", "```json\n{\"a\":1}", `{"a":1}`},
		{"trailing fence only", "{\"a\":1}\n```", `{"a":1}`},
		{"empty", "", ""},
		{"only fences", "```json```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.input))
		})
	}
}

func TestStripFences_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		arithmeticPayload,
		"```json\n" + arithmeticPayload + "\n```",
		"```json\n```json x```",
		"``````",
		"```json\n\n```\n{}\n```\n```",
		"prose before ```json {} ```",
		"\t```JSON\n{}\n```",
	}
	for _, in := range inputs {
		once := StripFences(in)
		assert.Equal(t, once, StripFences(once), "input %q", in)
	}
}

func TestParse_FencedScenario(t *testing.T) {
	raw := "```json\n" + arithmeticPayload + "\n```"

	questions, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "2+2?", q.Text)
	assert.Equal(t, "4", q.CorrectAnswer)
	assert.Equal(t, []string{"3", "4", "5", "6"}, q.Options)
	assert.Equal(t, "basic arithmetic", q.Explanation)
	assert.Equal(t, domain.MultipleChoice, q.Type)
}

func TestParse_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 3, 10} {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			type item struct {
				QuestionText  string   `json:"question_text"`
				CorrectAnswer string   `json:"correct_answer"`
				Options       []string `json:"options"`
				Explanation   string   `json:"explanation"`
			}
			items := make([]item, n)
			for i := range items {
				items[i] = item{
					QuestionText:  fmt.Sprintf("Question %d?", i),
					CorrectAnswer: fmt.Sprintf("answer-%d", i),
					Options:       []string{fmt.Sprintf("answer-%d", i), "other"},
					Explanation:   fmt.Sprintf("because %d", i),
				}
			}
			raw, err := json.Marshal(map[string]interface{}{"questions": items})
			require.NoError(t, err)

			questions, err := Parse(string(raw))
			require.NoError(t, err)
			require.NotNil(t, questions)
			require.Len(t, questions, n)
			for i, q := range questions {
				assert.Equal(t, items[i].QuestionText, q.Text)
				assert.Equal(t, items[i].CorrectAnswer, q.CorrectAnswer)
				assert.Equal(t, items[i].Options, q.Options)
				assert.Equal(t, items[i].Explanation, q.Explanation)
			}
		})
	}
}

func TestParse_OptionalFieldDefaults(t *testing.T) {
	raw := `{"questions":[{"question_text":"Define entropy","correct_answer":"A measure of disorder"}]}`

	questions, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.NotNil(t, questions[0].Options)
	assert.Empty(t, questions[0].Options)
	assert.Equal(t, "", questions[0].Explanation)
}

func TestParse_PreservesDuplicates(t *testing.T) {
	raw := `{"questions":[
		{"question_text":"same","correct_answer":"a","options":["a","b"]},
		{"question_text":"same","correct_answer":"a","options":["a","b"]}
	]}`
	questions, err := Parse(raw)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code domain.ErrorCode
	}{
		{"not json", "Sure! Here are your questions:", domain.CodeMalformedPayload},
		{"empty", "", domain.CodeMalformedPayload},
		{"array at top level", `[{"question_text":"q","correct_answer":"a"}]`, domain.CodeMalformedPayload},
		{"missing questions key", `{"items":[]}`, domain.CodeMalformedPayload},
		{"null questions", `{"questions":null}`, domain.CodeMalformedPayload},
		{"options wrong type", `{"questions":[{"question_text":"q","correct_answer":"a","options":[1,2]}]}`, domain.CodeMalformedPayload},
		{"missing question_text", `{"questions":[{"correct_answer":"a"}]}`, domain.CodeMissingField},
		{"missing correct_answer", `{"questions":[{"question_text":"q","options":["a"]}]}`, domain.CodeMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Nil(t, questions)
			assert.True(t, domain.IsCode(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestParse_MissingFieldFailsWholeBatch(t *testing.T) {
	raw := `{"questions":[
		{"question_text":"ok","correct_answer":"a"},
		{"question_text":"bad"}
	]}`
	questions, err := Parse(raw)
	require.Error(t, err)
	assert.Nil(t, questions)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "correct_answer", domainErr.Context["field"])
	assert.Equal(t, 1, domainErr.Context["index"])
}

func TestParse_TypeAssignment(t *testing.T) {
	raw := `{"questions":[
		{"question_text":"Sky is blue","correct_answer":"True","options":["True","False"]},
		{"question_text":"Define AI","correct_answer":"Artificial intelligence","options":[]},
		{"question_text":"2+2?","correct_answer":"4","options":["3","4","5","6"]}
	]}`

	t.Run("default tags multiple choice", func(t *testing.T) {
		questions, err := Parse(raw)
		require.NoError(t, err)
		for _, q := range questions {
			assert.Equal(t, domain.MultipleChoice, q.Type)
		}
	})

	t.Run("requested type is threaded through", func(t *testing.T) {
		questions, err := Parse(raw, WithRequestedType(domain.TrueFalse))
		require.NoError(t, err)
		for _, q := range questions {
			assert.Equal(t, domain.TrueFalse, q.Type)
		}
	})

	t.Run("shape inference", func(t *testing.T) {
		questions, err := Parse(raw, WithShapeInference())
		require.NoError(t, err)
		require.Len(t, questions, 3)
		assert.Equal(t, domain.TrueFalse, questions[0].Type)
		assert.Equal(t, domain.ShortAnswer, questions[1].Type)
		assert.Equal(t, domain.MultipleChoice, questions[2].Type)
	})

	t.Run("invalid requested type", func(t *testing.T) {
		_, err := Parse(raw, WithRequestedType(domain.QuestionType("essay")))
		assert.True(t, domain.IsCode(err, domain.CodeInvalidQuestionType))
	})
}

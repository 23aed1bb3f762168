package validation

import (
	"strings"
	"unicode/utf8"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/util"
)

const maxAnswerLength = 2000

// Limits bounds generation requests.
type Limits struct {
	MaxQuestions    int
	MaxContentChars int
}

// Validator provides request validation functionality
type Validator struct {
	limits Limits
}

// NewValidator creates a new validator instance
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// ValidateGenerateRequest validates a quiz generation request. questionType
// may be empty, in which case the configured default applies.
func (v *Validator) ValidateGenerateRequest(content string, numQuestions int, questionType string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(content) == "" {
		errs = append(errs, domain.NewRequiredFieldError("content"))
	} else if n := utf8.RuneCountInString(content); v.limits.MaxContentChars > 0 && n > v.limits.MaxContentChars {
		errs = append(errs, domain.NewOutOfRangeError("content", n, 1, v.limits.MaxContentChars))
	}

	errs = append(errs, v.validateCountAndType(numQuestions, questionType)...)
	return errs
}

// ValidateUploadRequest validates the form fields that come with a document upload.
func (v *Validator) ValidateUploadRequest(fileName string, numQuestions int, questionType string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(fileName) == "" {
		errs = append(errs, domain.NewRequiredFieldError("file"))
	}
	errs = append(errs, v.validateCountAndType(numQuestions, questionType)...)
	return errs
}

// ValidateCheckAnswerRequest validates the check answer request
func (v *Validator) ValidateCheckAnswerRequest(quizID string, questionIndex int, userAnswer string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errs = append(errs, domain.NewRequiredFieldError("quiz_id"))
	} else if !util.IsULID(quizID) {
		errs = append(errs, domain.NewInvalidFormatError("quiz_id", quizID))
	}
	if questionIndex < 0 {
		errs = append(errs, domain.NewInvalidFormatError("question_index", questionIndex))
	}
	if len(userAnswer) > maxAnswerLength {
		errs = append(errs, domain.NewOutOfRangeError("answer", len(userAnswer), 0, maxAnswerLength))
	}

	return errs
}

// ValidateEvaluateRequest validates a stateless evaluation request. Empty
// answers are allowed; two empty answers to an exact-match type are correct.
func (v *Validator) ValidateEvaluateRequest(userAnswer, correctAnswer, questionType string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(correctAnswer) > maxAnswerLength {
		errs = append(errs, domain.NewOutOfRangeError("correct_answer", len(correctAnswer), 0, maxAnswerLength))
	}
	if strings.TrimSpace(questionType) == "" {
		errs = append(errs, domain.NewRequiredFieldError("question_type"))
	}
	if len(userAnswer) > maxAnswerLength {
		errs = append(errs, domain.NewOutOfRangeError("user_answer", len(userAnswer), 0, maxAnswerLength))
	}
	return errs
}

func (v *Validator) validateCountAndType(numQuestions int, questionType string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if numQuestions < 1 || (v.limits.MaxQuestions > 0 && numQuestions > v.limits.MaxQuestions) {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", numQuestions, 1, v.limits.MaxQuestions))
	}
	if questionType != "" {
		if _, err := domain.ParseQuestionType(questionType); err != nil {
			errs = append(errs, domain.NewInvalidFormatError("question_type", questionType))
		}
	}
	return errs
}

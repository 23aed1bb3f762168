package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Generation payload errors
	CodeMalformedPayload    ErrorCode = "MALFORMED_PAYLOAD"
	CodeMissingField        ErrorCode = "MISSING_FIELD"
	CodeInvalidQuestionType ErrorCode = "INVALID_QUESTION_TYPE"

	// Document errors
	CodeFileNotFound      ErrorCode = "FILE_NOT_FOUND"
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Quiz specific errors
	CodeQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair to the error and returns it.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err (or anything it wraps) is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewMalformedPayloadError(message string, cause error) *DomainError {
	return NewError(CodeMalformedPayload, message, cause)
}

// NewMissingFieldError reports a required field absent from a question entry.
// index is the position of the entry in the payload, or -1 when not applicable.
func NewMissingFieldError(field string, index int) *DomainError {
	err := NewError(CodeMissingField, fmt.Sprintf("missing required field: %s", field), nil).
		WithContext("field", field)
	if index >= 0 {
		err.Message = fmt.Sprintf("question %d: missing required field: %s", index, field)
		err.WithContext("index", index)
	}
	return err
}

func NewInvalidQuestionTypeError(value string) *DomainError {
	return NewError(CodeInvalidQuestionType, fmt.Sprintf("invalid question type: %q", value), nil).
		WithContext("value", value)
}

func NewFileNotFoundError(path string, cause error) *DomainError {
	return NewError(CodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause).
		WithContext("path", path)
}

func NewUnsupportedFormatError(ext string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", ext), nil).
		WithContext("extension", ext)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("quiz not found with ID: %s", quizID), nil).
		WithContext("quiz_id", quizID)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "failed to process with LLM service", cause)
}

// User-facing messages for failures a quiz taker may see.
const (
	MsgRetryGeneration = "could not understand the generated quiz, please retry"
	MsgCannotAutoGrade = "this question type cannot be auto-graded yet"
	MsgLLMUnavailable  = "the question generator is unavailable, please try again later"
	MsgInternal        = "something went wrong"
)

// UserMessage maps an error to the message shown to a quiz taker.
func UserMessage(err error) string {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return MsgInternal
	}
	switch domainErr.Code {
	case CodeMalformedPayload, CodeMissingField:
		return MsgRetryGeneration
	case CodeLLMServiceError:
		return MsgLLMUnavailable
	case CodeInternal:
		return MsgInternal
	default:
		return domainErr.Message
	}
}

// FieldError describes one failed request field.
type FieldError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors collects request validation failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return v[0].Message
	}
	return fmt.Sprintf("%s (and %d more)", v[0].Message, len(v)-1)
}

func NewRequiredFieldError(field string) FieldError {
	return FieldError{Field: field, Code: CodeMissingField, Message: fmt.Sprintf("%s is required", field)}
}

func NewInvalidFormatError(field string, value interface{}) FieldError {
	return FieldError{Field: field, Code: CodeInvalidInput, Message: fmt.Sprintf("%s has an invalid format", field), Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) FieldError {
	return FieldError{
		Field:   field,
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}

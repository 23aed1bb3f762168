package middleware

import (
	"strconv"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"
	"lecture-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalGenerateRequest = "validated_generate_request"
	LocalCheckAnswer     = "validated_check_answer"
	LocalEvaluate        = "validated_evaluate"
	LocalUploadFields    = "validated_upload_fields"
)

// UploadFields are the validated form fields of a document upload.
type UploadFields struct {
	NumQuestions int
	QuestionType string
	Title        string
}

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

func invalidBody(err error) error {
	return domain.NewError(domain.CodeInvalidInput, "invalid request body", err)
}

// ValidateGenerateQuiz parses and validates the generation request body.
func (vm *ValidationMiddleware) ValidateGenerateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(err)
		}
		if errs := vm.validator.ValidateGenerateRequest(req.Content, req.NumQuestions, req.QuestionType); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalGenerateRequest, &req)
		return c.Next()
	}
}

// ValidateUpload validates the multipart form fields of a document upload.
// The file itself is only checked for presence.
func (vm *ValidationMiddleware) ValidateUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fileName string
		if fh, err := c.FormFile("file"); err == nil {
			fileName = fh.Filename
		}

		fields := UploadFields{
			NumQuestions: 5,
			QuestionType: c.FormValue("question_type"),
			Title:        c.FormValue("title"),
		}
		if raw := strings.TrimSpace(c.FormValue("num_questions")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("num_questions", raw)}
			}
			fields.NumQuestions = n
		}

		if errs := vm.validator.ValidateUploadRequest(fileName, fields.NumQuestions, fields.QuestionType); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalUploadFields, fields)
		return c.Next()
	}
}

// ValidateCheckAnswer validates the quiz ID path parameter and the answer body.
func (vm *ValidationMiddleware) ValidateCheckAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CheckAnswerRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(err)
		}
		if errs := vm.validator.ValidateCheckAnswerRequest(c.Params("id"), req.QuestionIndex, req.Answer); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalCheckAnswer, &req)
		return c.Next()
	}
}

// ValidateEvaluate validates a stateless evaluation request.
func (vm *ValidationMiddleware) ValidateEvaluate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.EvaluateRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(err)
		}
		if errs := vm.validator.ValidateEvaluateRequest(req.UserAnswer, req.CorrectAnswer, req.QuestionType); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalEvaluate, &req)
		return c.Next()
	}
}

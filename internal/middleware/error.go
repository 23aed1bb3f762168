package middleware

import (
	"errors"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists the request fields that failed validation.
type ValidationErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Errors  []domain.FieldError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:            fiber.StatusNotFound,
	domain.CodeQuizNotFound:        fiber.StatusNotFound,
	domain.CodeInvalidInput:        fiber.StatusBadRequest,
	domain.CodeValidation:          fiber.StatusBadRequest,
	domain.CodeInvalidQuestionType: fiber.StatusBadRequest,
	domain.CodeFileNotFound:        fiber.StatusBadRequest,
	domain.CodeUnsupportedFormat:   fiber.StatusUnsupportedMediaType,
	domain.CodeMalformedPayload:    fiber.StatusBadGateway,
	domain.CodeMissingField:        fiber.StatusBadGateway,
	domain.CodeLLMServiceError:     fiber.StatusServiceUnavailable,
}

// StatusFor returns the HTTP status used for a domain error code.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the app-wide fiber error handler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return writeValidationErrors(c, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return writeDomainError(c, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Get().Warn("Request rejected",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.String("reason", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		logger.Get().Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: domain.MsgInternal,
			Status:  fiber.StatusInternalServerError,
		})
	}
}

func writeValidationErrors(c *fiber.Ctx, errs domain.ValidationErrors) error {
	logger.Get().Warn("Request failed validation",
		zap.String("path", c.Path()),
		zap.Int("fields", len(errs)))
	return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "Request validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  errs,
	})
}

func writeDomainError(c *fiber.Ctx, e *domain.DomainError) error {
	status := StatusFor(e.Code)

	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("code", string(e.Code)),
		zap.Int("status", status),
		zap.String("detail", e.Message),
	}
	if e.Cause != nil {
		fields = append(fields, zap.Error(e.Cause))
	}
	if status >= fiber.StatusInternalServerError {
		logger.Get().Error("Request failed", fields...)
	} else {
		logger.Get().Warn("Request failed", fields...)
	}

	resp := ErrorResponse{
		Code:    string(e.Code),
		Message: domain.UserMessage(e),
		Status:  status,
	}
	if len(e.Context) > 0 {
		resp.Details = e.Context
	}
	return c.Status(status).JSON(resp)
}

package handler

import (
	"io"

	"lecture-quiz/internal/document"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/middleware"
	"lecture-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// CreateQuiz handles POST /api/quizzes
// @Summary Generate a quiz from text
// @Description Generates questions from lecture text and stores the quiz. Answers are not returned.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Source text and question settings"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalGenerateRequest).(*dto.GenerateQuizRequest)
	if !ok {
		return domain.NewInternalError("generate request was not validated", nil)
	}

	qType, err := parseOptionalType(req.QuestionType)
	if err != nil {
		return err
	}

	quiz, err := h.service.CreateQuiz(c.UserContext(), service.GenerateRequest{
		Content:      req.Content,
		NumQuestions: req.NumQuestions,
		QuestionType: qType,
		Title:        req.Title,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// UploadQuiz handles POST /api/quizzes/upload
// @Summary Generate a quiz from a document
// @Description Extracts text from a txt, md, pdf or docx upload and generates a quiz from it.
// @Tags quizzes
// @Accept mpfd
// @Produce json
// @Param file formData file true "Lecture document"
// @Param num_questions formData int false "Number of questions" default(5)
// @Param question_type formData string false "multiple_choice, short_answer, true_false or mcq"
// @Param title formData string false "Quiz title"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /api/quizzes/upload [post]
func (h *QuizHandler) UploadQuiz(c *fiber.Ctx) error {
	fields, ok := c.Locals(middleware.LocalUploadFields).(middleware.UploadFields)
	if !ok {
		return domain.NewInternalError("upload fields were not validated", nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewRequiredFieldError("file")}
	}

	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	doc, err := document.ExtractBytes(fh.Filename, data)
	if err != nil {
		return err
	}
	if !doc.Supported {
		return domain.NewUnsupportedFormatError(string(doc.Format))
	}
	if doc.Text == "" {
		return domain.NewInvalidInputError("no readable text found in the uploaded document")
	}

	qType, err := parseOptionalType(fields.QuestionType)
	if err != nil {
		return err
	}

	logger.Get().Info("Generating quiz from upload",
		zap.String("file", fh.Filename),
		zap.Int64("size", fh.Size),
		zap.String("format", string(doc.Format)))

	quiz, err := h.service.CreateQuiz(c.UserContext(), service.GenerateRequest{
		Content:      doc.Text,
		NumQuestions: fields.NumQuestions,
		QuestionType: qType,
		Title:        fields.Title,
		Source:       fh.Filename,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// GetQuiz handles GET /api/quizzes/:id
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// CheckAnswer handles POST /api/quizzes/:id/answers
// @Summary Check an answer
// @Description Grades the answer to one question of a stored quiz and reveals the correct answer.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Param request body dto.CheckAnswerRequest true "Question index and answer"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id}/answers [post]
func (h *QuizHandler) CheckAnswer(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalCheckAnswer).(*dto.CheckAnswerRequest)
	if !ok {
		return domain.NewInternalError("check answer request was not validated", nil)
	}

	res, err := h.service.CheckAnswer(c.UserContext(), c.Params("id"), req.QuestionIndex, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckAnswerResponse{
		QuizID:        res.QuizID,
		QuestionIndex: res.QuestionIndex,
		Verdict:       string(res.Verdict),
		Graded:        res.Verdict.IsGraded(),
		Score:         res.Score,
		Message:       res.Message,
		CorrectAnswer: res.CorrectAnswer,
		Explanation:   res.Explanation,
	})
}

// Evaluate handles POST /api/evaluate. It grades a single answer without a
// stored quiz.
// @Summary Evaluate an answer
// @Tags evaluation
// @Accept json
// @Produce json
// @Param request body dto.EvaluateRequest true "Answer, expected answer and question type"
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/evaluate [post]
func (h *QuizHandler) Evaluate(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalEvaluate).(*dto.EvaluateRequest)
	if !ok {
		return domain.NewInternalError("evaluate request was not validated", nil)
	}

	question := domain.NewQuestion(domain.QuestionType(req.QuestionType), "", req.CorrectAnswer, nil, "")
	res := h.service.GradeQuestion(c.UserContext(), question, req.UserAnswer)
	return c.JSON(dto.EvaluateResponse{
		Verdict: string(res.Verdict),
		Graded:  res.Verdict.IsGraded(),
		Score:   res.Score,
		Message: res.Message,
	})
}

func parseOptionalType(s string) (domain.QuestionType, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseQuestionType(s)
}

package handler

import (
	"lecture-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes wires every API route onto app.
func RegisterRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler, vm *middleware.ValidationMiddleware) {
	app.Get("/health", health.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Post("/quizzes", vm.ValidateGenerateQuiz(), quiz.CreateQuiz)
	api.Post("/quizzes/upload", vm.ValidateUpload(), quiz.UploadQuiz)
	api.Get("/quizzes/:id", quiz.GetQuiz)
	api.Post("/quizzes/:id/answers", vm.ValidateCheckAnswer(), quiz.CheckAnswer)
	api.Post("/evaluate", vm.ValidateEvaluate(), quiz.Evaluate)
}

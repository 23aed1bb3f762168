package handler

import (
	"context"
	"time"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports liveness and the state of the quiz store backend.
type HealthHandler struct {
	cache domain.Cache
}

func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Cache: "ok"}
	if err := h.cache.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Cache = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rule/resume-analyzer/internal/services"
)

type ResultHandler struct {
	resultStore services.ResultStore
}

func NewResultHandler(resultStore services.ResultStore) *ResultHandler {
	return &ResultHandler{
		resultStore: resultStore,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	if _, err := uuid.Parse(idParam); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	assessment, err := h.resultStore.Get(idParam)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis result not found",
		})
	}

	return c.JSON(assessment)
}

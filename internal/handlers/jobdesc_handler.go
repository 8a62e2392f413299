package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rule/resume-analyzer/internal/models"
	"rule/resume-analyzer/internal/services"
)

type JobDescriptionHandler struct {
	store services.JobDescriptionStore
}

func NewJobDescriptionHandler(store services.JobDescriptionStore) *JobDescriptionHandler {
	return &JobDescriptionHandler{
		store: store,
	}
}

func (h *JobDescriptionHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"job_description": h.store.Load(),
	})
}

func (h *JobDescriptionHandler) HandleSave(c *fiber.Ctx) error {
	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if err := h.store.Save(req.JobDescription); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save job description",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Job description saved successfully",
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rule/resume-analyzer/internal/services"
)

type AnalyticsHandler struct {
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
	}
}

func (h *AnalyticsHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.analytics.Summary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute analytics summary",
		})
	}

	return c.JSON(summary)
}

func (h *AnalyticsHandler) HandleExport(c *fiber.Ctx) error {
	format := c.Query("format", "csv")

	switch format {
	case "csv":
		data, err := h.analytics.ExportCSV()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to export candidates",
			})
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.csv"`)
		return c.Send(data)

	case "xlsx":
		data, err := h.analytics.ExportXLSX()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to export candidates",
			})
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="candidates.xlsx"`)
		return c.Send(data)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported export format. Use 'csv' or 'xlsx'.",
		})
	}
}

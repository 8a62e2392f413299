package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rule/resume-analyzer/internal/models"
	"rule/resume-analyzer/internal/providers"
)

type ConfigHandler struct {
	configStore *providers.ConfigStore
}

func NewConfigHandler(configStore *providers.ConfigStore) *ConfigHandler {
	return &ConfigHandler{
		configStore: configStore,
	}
}

func (h *ConfigHandler) HandleGetConfig(c *fiber.Ctx) error {
	cfg := h.configStore.Current()

	// The key never leaves the server; only its presence is reported.
	return c.JSON(fiber.Map{
		"provider":    cfg.Provider,
		"model":       cfg.Model,
		"base_url":    cfg.BaseURL,
		"api_key_set": cfg.APIKey != "",
	})
}

func (h *ConfigHandler) HandleUpdateConfig(c *fiber.Ctx) error {
	var req models.ProviderConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cfg := providers.Config{
		Provider: req.Provider,
		Model:    req.Model,
		APIKey:   req.APIKey,
		BaseURL:  req.BaseURL,
	}

	// An omitted key keeps the stored one, so updates can switch models
	// without re-sending credentials.
	if cfg.APIKey == "" {
		current := h.configStore.Current()
		if current.Provider == cfg.Provider {
			cfg.APIKey = current.APIKey
		}
	}

	if err := h.configStore.Update(cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "LLM configuration updated successfully",
	})
}

func (h *ConfigHandler) HandleListProviders(c *fiber.Ctx) error {
	cfg := h.configStore.Current()

	response := fiber.Map{
		"providers": providers.Names(),
		"active":    cfg.Provider,
	}

	// Model listing is best effort; the endpoint still answers when the
	// active provider is unreachable.
	if provider, err := providers.New(cfg); err == nil {
		if lister, ok := provider.(providers.ModelLister); ok {
			if modelList, err := lister.ListModels(c.UserContext()); err == nil {
				response["models"] = modelList
			}
		}
	}

	return c.JSON(response)
}

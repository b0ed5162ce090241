package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/domain"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/repository"
	"github.com/hoai-tn/pre-loved--services/internal/inventory/service"
	"github.com/hoai-tn/pre-loved--services/pkg/utils"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	service   service.InventoryService
	logger    *zap.Logger
	validator *validator.Validate
}

func NewInventoryHandler(service service.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
	}
}

type stockCheckRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

func (h *InventoryHandler) CheckStock(c *fiber.Ctx) error {
	var req stockCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": utils.FormatValidationError(err),
		})
	}

	result, err := h.service.CheckStock(c.UserContext(), req.ProductID, req.Quantity)
	if err != nil {
		h.logger.Error(
			"stock check failed",
			zap.String("method", "CheckStock"),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "stock check failed",
		})
	}

	return c.JSON(result)
}

type createInventoryRequest struct {
	ProductID      int64  `json:"product_id" validate:"required,gt=0"`
	SKU            string `json:"sku" validate:"required"`
	AvailableStock int64  `json:"available_stock" validate:"gte=0"`
	MinimumStock   int64  `json:"minimum_stock" validate:"gte=0"`
}

func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var req createInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": utils.FormatValidationError(err),
		})
	}

	inv := &domain.Inventory{
		ProductID:      req.ProductID,
		SKU:            req.SKU,
		AvailableStock: req.AvailableStock,
		MinimumStock:   req.MinimumStock,
		IsActive:       true,
	}

	if err := h.service.CreateInventory(c.UserContext(), inv); err != nil {
		if errors.Is(err, repository.ErrInventoryExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "inventory for product already exists",
			})
		}

		h.logger.Error(
			"create inventory failed",
			zap.String("method", "CreateInventory"),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "create inventory failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(inv)
}

func SetupRoutes(app *fiber.App, handler *InventoryHandler) {
	app.Post("/internal/stock/check", handler.CheckStock)
	app.Post("/inventory", handler.CreateInventory)
}

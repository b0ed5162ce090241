package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hoai-tn/pre-loved--services/internal/product/domain"
	"github.com/hoai-tn/pre-loved--services/internal/product/repository"
	"github.com/hoai-tn/pre-loved--services/internal/product/service"
	"github.com/hoai-tn/pre-loved--services/pkg/utils"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service   service.ProductService
	logger    *zap.Logger
	validator *validator.Validate
}

func NewProductHandler(service service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
	}
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Category    string `json:"category"`
	ImageUrl    string `json:"image_url"`
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
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

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageUrl:    req.ImageUrl,
	}

	id, err := h.service.Create(c.UserContext(), product)
	if err != nil {
		h.logger.Error(
			"create product failed",
			zap.String("method", "CreateProduct"),
			zap.String("name", req.Name),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "create product failed",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}

	product, err := h.service.FindByID(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "product not found",
			})
		}

		h.logger.Error(
			"get product failed",
			zap.String("method", "GetProduct"),
			zap.Int("product_id", id),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "get product failed",
		})
	}

	return c.JSON(product)
}

func (h *ProductHandler) GetPrice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid product id",
		})
	}

	price, err := h.service.GetPrice(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "product not found",
			})
		}

		h.logger.Error(
			"get price failed",
			zap.String("method", "GetPrice"),
			zap.Int("product_id", id),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "get price failed",
		})
	}

	return c.JSON(price)
}

func SetupRoutes(app *fiber.App, handler *ProductHandler) {
	app.Post("/products", handler.CreateProduct)
	app.Get("/products/:id", handler.GetProduct)
	app.Get("/internal/products/:id/price", handler.GetPrice)
}

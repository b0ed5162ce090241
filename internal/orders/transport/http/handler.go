package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hoai-tn/pre-loved--services/internal/orders/domain"
	"github.com/hoai-tn/pre-loved--services/internal/orders/service"
	"github.com/hoai-tn/pre-loved--services/pkg/utils"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service   service.OrderService
	logger    *zap.Logger
	validator *validator.Validate
}

func NewOrderHandler(service service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:   service,
		logger:    logger,
		validator: validator.New(),
	}
}

type placeOrderRequest struct {
	UserID int64                     `json:"user_id" validate:"required,gt=0"`
	Items  []domain.OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type placeOrderResponse struct {
	Order      *domain.Order      `json:"order"`
	OrderItems []domain.OrderItem `json:"order_items"`
}

func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
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

	order, err := h.service.PlaceOrder(c.UserContext(), req.UserID, req.Items)
	if err != nil {
		status := mapErrorStatus(err)

		h.logger.Error(
			"place order failed",
			zap.String("method", "PlaceOrder"),
			zap.Int64("user_id", req.UserID),
			zap.Int("status_code", status),
			zap.Error(err),
		)

		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(placeOrderResponse{
		Order:      order,
		OrderItems: order.Items,
	})
}

func (h *OrderHandler) GetOrdersByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	orders, err := h.service.GetOrdersByUser(c.UserContext(), int64(userID))
	if err != nil {
		status := mapErrorStatus(err)

		h.logger.Error(
			"get orders failed",
			zap.String("method", "GetOrdersByUser"),
			zap.Int("user_id", userID),
			zap.Int("status_code", status),
			zap.Error(err),
		)

		return c.Status(status).JSON(fiber.Map{
			"error": "failed to load orders",
		})
	}

	type orderWithItems struct {
		domain.Order
		Items []domain.OrderItem `json:"items"`
	}

	out := make([]orderWithItems, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderWithItems{Order: o, Items: o.Items})
	}

	return c.JSON(fiber.Map{"orders": out})
}

func mapErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrStockUnavailable):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrPriceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

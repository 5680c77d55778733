package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/storewise/storefront-backend/internal/customer"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
	app.Post("/api/v1/orders/:id<[0-9]+>/complete", h.completeOrder)
}

type createOrderRequest struct {
	BasketID int `json:"basketId"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.BasketID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "basketId is required"})
	}

	created, err := h.service.CreateOrder(c.Context(), payload.BasketID, customerID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListOrders(c.Context(), customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	o, err := h.service.GetOrder(c.Context(), id, customerID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	o, err := h.service.CancelOrder(c.Context(), id, customerID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) completeOrder(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	o, err := h.service.CompleteOrder(c.Context(), id, customerID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return c.JSON(o)
}

// mapOrderError turns workflow errors into status codes: not-found 404,
// concurrency conflict 409, business-rule violations 400, the rest 500.
func mapOrderError(c *fiber.Ctx, err error) error {
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBasketNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":   stockErr.Error(),
			"shortages": stockErr.Shortages,
		})
	case errors.Is(err, ErrEmptyBasket),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrCancelCompleted),
		errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrCompleteCancelled):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

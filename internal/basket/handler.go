package basket

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/storewise/storefront-backend/internal/customer"
)

type Handler struct {
	log     *slog.Logger
	service *Service
}

func NewHandler(log *slog.Logger, s *Service) *Handler {
	return &Handler{log: log, service: s}
}

// Basket routes are public so anonymous visitors can shop before signing in;
// claiming a basket requires a JWT.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/baskets", h.createBasket)
	app.Get("/api/v1/baskets/:id<[0-9]+>", h.getBasket)
	app.Post("/api/v1/baskets/:id<[0-9]+>/items", h.addItem)
	app.Put("/api/v1/baskets/:id<[0-9]+>/items/:itemId<[0-9]+>", h.updateItem)
	app.Post("/api/v1/baskets/:id<[0-9]+>/items/:itemId<[0-9]+>/decrement", h.decrementItem)
	app.Delete("/api/v1/baskets/:id<[0-9]+>/items/:itemId<[0-9]+>", h.removeItem)
	app.Delete("/api/v1/baskets/:id<[0-9]+>", h.deleteBasket)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/baskets/:id<[0-9]+>/claim", h.claimBasket)
}

func (h *Handler) createBasket(c *fiber.Ctx) error {
	var customerID *int
	if id, err := customer.GetCustomerIDFromCtx(c); err == nil {
		customerID = &id
	}
	b, err := h.service.Create(customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *Handler) getBasket(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	b, err := h.service.Get(id)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

type addItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	b, err := h.service.AddItem(id, payload.ProductID, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	itemID, _ := strconv.Atoi(c.Params("itemId"))
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	b, err := h.service.UpdateItem(id, itemID, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) decrementItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	itemID, _ := strconv.Atoi(c.Params("itemId"))
	b, err := h.service.DecrementItem(id, itemID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	itemID, _ := strconv.Atoi(c.Params("itemId"))
	b, err := h.service.RemoveItem(id, itemID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) deleteBasket(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.service.Delete(id); err != nil {
		return h.mapError(c, err)
	}
	return c.SendString("basket deleted")
}

func (h *Handler) claimBasket(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	id, _ := strconv.Atoi(c.Params("id"))
	b, err := h.service.Claim(id, customerID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(b)
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		h.log.Warn("basket not found", "path", c.Path())
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "basket not found"})
	case errors.Is(err, ErrItemNotFound):
		h.log.Warn("basket item not found", "path", c.Path())
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "basket item not found"})
	case errors.Is(err, errInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

package address

import (
	"errors"

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
	app.Get("/api/v1/addresses", h.getAddresses)
	app.Post("/api/v1/addresses", h.addAddress)
	app.Patch("/api/v1/addresses", h.updateAddress)
	app.Delete("/api/v1/addresses", h.deleteAddress)
}

type addressCreateRequest struct {
	Name   string `json:"addressName"`
	Detail string `json:"addressDetail"`
	Phone  string `json:"phone"`
}

type addressUpdateRequest struct {
	AddressID int    `json:"addressId"`
	Name      string `json:"addressName"`
	Detail    string `json:"addressDetail"`
	Phone     string `json:"phone"`
}

type addressDeleteRequest struct {
	AddressID int `json:"addressId"`
}

func (h *Handler) getAddresses(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addrs, err := h.service.List(customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(addrs)
}

func (h *Handler) addAddress(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	addr, err := h.service.Add(customerID, payload.Name, payload.Detail, payload.Phone)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.AddressID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid addressId"})
	}

	addr, err := h.service.Update(customerID, payload.AddressID, payload.Name, payload.Detail, payload.Phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(addr)
}

func (h *Handler) deleteAddress(c *fiber.Ctx) error {
	customerID, err := customer.GetCustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressDeleteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Delete(customerID, payload.AddressID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendString("address deleted")
}

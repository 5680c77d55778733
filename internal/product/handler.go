package product

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ImageStore is the slice of the object-storage client the handler needs.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

type Handler struct {
	log     *slog.Logger
	service ServiceInterface
	images  ImageStore // nil when object storage is not configured
}

func NewHandler(log *slog.Logger, service ServiceInterface, images ImageStore) *Handler {
	return &Handler{log: log, service: service, images: images}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
	app.Get("/api/v1/products/:id<[0-9]+>/image", h.getImage)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/products", h.createProduct)
	app.Put("/api/v1/products/:id<[0-9]+>", h.updateProduct)
	app.Delete("/api/v1/products/:id<[0-9]+>", h.deleteProduct)
	app.Post("/api/v1/products/:id<[0-9]+>/image", h.uploadImage)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

type productRequest struct {
	Name          string `json:"productName"`
	Description   string `json:"productDesc"`
	PriceCents    int64  `json:"priceCents"`
	StockQuantity int    `json:"stockQuantity"`
	CategoryID    *int   `json:"categoryId"`
	Version       int    `json:"version"`
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Product{
		Name:          payload.Name,
		Description:   payload.Description,
		PriceCents:    payload.PriceCents,
		StockQuantity: payload.StockQuantity,
		CategoryID:    payload.CategoryID,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	payload := new(productRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Product{
		Name:          payload.Name,
		Description:   payload.Description,
		PriceCents:    payload.PriceCents,
		StockQuantity: payload.StockQuantity,
		CategoryID:    payload.CategoryID,
		Version:       payload.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product was modified concurrently, reload and retry"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendString("product deleted")
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	if h.images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "object storage not configured"})
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	key := strconv.Itoa(id) + "/" + uuid.NewString() + filepath.Ext(file.Filename)
	if err := h.images.Put(c.Context(), key, data, http.DetectContentType(data)); err != nil {
		h.log.Error("image upload failed", "product_id", id, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "upload failed"})
	}

	updated, err := h.service.SetImageKey(id, key)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product was modified concurrently, reload and retry"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) getImage(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if p.ImageKey == nil || h.images == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not available"})
	}

	data, err := h.images.Get(c.Context(), *p.ImageKey)
	if err != nil {
		h.log.Error("image fetch failed", "product_id", id, "err", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "image not available"})
	}
	c.Set("Content-Type", http.DetectContentType(data))
	return c.Send(data)
}

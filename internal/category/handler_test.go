package category

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupApp(seed []Category) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetCategories(t *testing.T) {
	app := setupApp([]Category{
		{ID: 1, Name: "Dogs", Ord: 2},
		{ID: 2, Name: "Cats", Ord: 1},
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got []Category
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("categories = %d, want 2", len(got))
	}
}

func TestGetCategoriesLimit(t *testing.T) {
	app := setupApp([]Category{{ID: 1, Name: "Dogs"}, {ID: 2, Name: "Cats"}, {ID: 3, Name: "Birds"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=2", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var got []Category
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("categories = %d, want 2", len(got))
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	app := setupApp(nil)

	body, _ := json.Marshal(fiber.Map{"ord": 1})
	req := httptest.NewRequest("POST", "/api/v1/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateMissingCategory(t *testing.T) {
	app := setupApp(nil)

	body, _ := json.Marshal(fiber.Map{"categoryName": "Fish"})
	req := httptest.NewRequest("PUT", "/api/v1/categories/9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

package customer

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func setupApp() (*fiber.App, *Service) {
	service := NewService(NewInMemoryRepository(nil))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(log, service, testSecret)

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app, service
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, body
}

func TestSignUpAndSignIn(t *testing.T) {
	app, _ := setupApp()

	status, body := postJSON(t, app, "/api/v1/sign-up", fiber.Map{
		"email":     "jo@example.com",
		"password":  "hunter2",
		"firstName": "Jo",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("sign-up status = %d, body = %v", status, body)
	}
	if _, ok := body["password"]; ok {
		t.Error("sign-up response leaks the password field")
	}

	status, body = postJSON(t, app, "/api/v1/sign-in", fiber.Map{
		"email":    "jo@example.com",
		"password": "hunter2",
	})
	if status != fiber.StatusOK {
		t.Fatalf("sign-in status = %d, body = %v", status, body)
	}

	raw, ok := body["token"].(string)
	if !ok || raw == "" {
		t.Fatalf("no access token in %v", body)
	}
	if rt, ok := body["refreshToken"].(string); !ok || rt == "" {
		t.Fatalf("no refresh token in %v", body)
	}

	// the access token must verify under the configured secret and carry
	// the customer id claim the protected routes read
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if _, ok := claims["customer_id"]; !ok {
		t.Errorf("claims = %v, missing customer_id", claims)
	}
}

func TestSignUpValidation(t *testing.T) {
	app, _ := setupApp()

	status, _ := postJSON(t, app, "/api/v1/sign-up", fiber.Map{"email": "jo@example.com"})
	if status != fiber.StatusBadRequest {
		t.Errorf("missing fields status = %d, want 400", status)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app, _ := setupApp()

	payload := fiber.Map{"email": "jo@example.com", "password": "pw", "firstName": "Jo"}
	if status, _ := postJSON(t, app, "/api/v1/sign-up", payload); status != fiber.StatusCreated {
		t.Fatalf("first sign-up status = %d", status)
	}

	status, _ := postJSON(t, app, "/api/v1/sign-up", payload)
	if status != fiber.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", status)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	app, _ := setupApp()
	postJSON(t, app, "/api/v1/sign-up", fiber.Map{"email": "jo@example.com", "password": "pw", "firstName": "Jo"})

	status, _ := postJSON(t, app, "/api/v1/sign-in", fiber.Map{"email": "jo@example.com", "password": "nope"})
	if status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
}

func TestRefreshRotation(t *testing.T) {
	app, _ := setupApp()
	postJSON(t, app, "/api/v1/sign-up", fiber.Map{"email": "jo@example.com", "password": "pw", "firstName": "Jo"})
	_, body := postJSON(t, app, "/api/v1/sign-in", fiber.Map{"email": "jo@example.com", "password": "pw"})
	first := body["refreshToken"].(string)

	status, body := postJSON(t, app, "/api/v1/refresh", fiber.Map{"refreshToken": first})
	if status != fiber.StatusOK {
		t.Fatalf("refresh status = %d, body = %v", status, body)
	}
	second, _ := body["refreshToken"].(string)
	if second == "" || second == first {
		t.Fatalf("rotation returned %q", second)
	}

	// the used token is revoked
	status, _ = postJSON(t, app, "/api/v1/refresh", fiber.Map{"refreshToken": first})
	if status != fiber.StatusUnauthorized {
		t.Errorf("replay status = %d, want 401", status)
	}
}

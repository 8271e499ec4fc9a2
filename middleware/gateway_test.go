package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGatewayAuthMiddleware(t *testing.T) {
	t.Setenv("ENGINE_SERVICE_TOKEN", "svc-secret")

	app := fiber.New()
	app.Use(GatewayAuthMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"bearer token accepted", "Bearer svc-secret", fiber.StatusOK},
		{"missing header rejected", "", fiber.StatusUnauthorized},
		{"raw token without scheme rejected", "svc-secret", fiber.StatusUnauthorized},
		{"wrong token rejected", "Bearer not-the-token", fiber.StatusUnauthorized},
		{"wrong scheme rejected", "Basic svc-secret", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

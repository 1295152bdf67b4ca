package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10, "/upload"))
	handler := func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
	app.Post("/data", handler)
	app.Post("/doc/upload", handler)

	send := func(path, body string) int {
		req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run(`маленькое тело проходит`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send("/data", "12345"))
	})
	t.Run(`большое тело отклоняется`, func(t *testing.T) {
		require.Equal(t, fiber.StatusRequestEntityTooLarge, send("/data", strings.Repeat("x", 11)))
	})
	t.Run(`загрузка файла не ограничивается`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, send("/doc/upload", strings.Repeat("x", 100)))
	})
}

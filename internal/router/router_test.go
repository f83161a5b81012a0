package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-api/internal/config"
)

func TestRegisterMountsHealthAndMetrics(t *testing.T) {
	app := fiber.New()
	Register(app, config.Config{AppName: "Tutor API"}, Dependencies{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Tutor API", resp.Header.Get("X-Application"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegisterSkipsMissingHandlers(t *testing.T) {
	app := fiber.New()
	Register(app, config.Config{}, Dependencies{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/lessons", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

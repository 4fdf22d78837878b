package pkg

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	appErrors "github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, models.WebResponse[json.RawMessage]) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope models.WebResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(body, &envelope))

	return resp.StatusCode, envelope
}

func TestSuccessResponse(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SuccessResponse(c, fiber.Map{"id": 7})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)
	assert.JSONEq(t, `{"id":7}`, string(envelope.Data))
}

func TestSuccessMessageResponse(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return SuccessMessageResponse(c, "done")
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)
	assert.Equal(t, "done", envelope.Message)
}

func TestErrorResponseAppError(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, appErrors.NewNotFoundError("Car not found"))
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Car not found", envelope.Message)
}

func TestErrorResponseUnknownError(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return ErrorResponse(c, errors.New("driver hiccup"))
	})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Internal Server Error", envelope.Message)
}

package server

import (
	"net/http/httptest"
	"testing"

	"vitrin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContactBody() fiber.Map {
	return fiber.Map{
		"name":    "Jamie Doe",
		"email":   "jamie@example.com",
		"phone":   "+994 50 123 45 67",
		"subject": "Custom order",
		"message": "Do you produce wayfinding plates to order?",
	}
}

func TestCreateContactSubmission(t *testing.T) {
	srv, app := newTestServer(t)

	// No authentication needed; the form is public.
	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/contact", validContactBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.ContactSubmission
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "jamie@example.com", created.Email)

	var count int64
	require.NoError(t, srv.db.Model(&models.ContactSubmission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateContactSubmissionOptionalFields(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/contact", fiber.Map{
		"name":    "Jamie Doe",
		"email":   "jamie@example.com",
		"message": "Hello",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCreateContactSubmissionValidation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name    string
		mutate  func(fiber.Map)
		message string
	}{
		{
			name: "missing required fields",
			mutate: func(m fiber.Map) {
				m["name"] = ""
				m["message"] = ""
			},
			message: "Missing required fields: name, message",
		},
		{
			name:    "invalid email",
			mutate:  func(m fiber.Map) { m["email"] = "not-an-email" },
			message: "invalid email format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validContactBody()
			tt.mutate(body)

			resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/contact", body))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var errBody struct {
				Message string `json:"message"`
			}
			decodeJSON(t, resp, &errBody)
			assert.Equal(t, tt.message, errBody.Message)
		})
	}
}

func TestGetContactSubmissions(t *testing.T) {
	srv, app := newTestServer(t)
	cookie := login(t, app)

	require.NoError(t, srv.db.Create(&models.ContactSubmission{
		Name:    "A",
		Email:   "a@example.com",
		Message: "first",
	}).Error)
	require.NoError(t, srv.db.Create(&models.ContactSubmission{
		Name:    "B",
		Email:   "b@example.com",
		Message: "second",
	}).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/contact", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submissions []models.ContactSubmission
	decodeJSON(t, resp, &submissions)
	assert.Len(t, submissions, 2)
}

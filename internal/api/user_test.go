package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
	"github.com/kilo-recipes/recipe-api/backend/internal/testhelpers"
)

func TestCreateUser(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodPost, "/user/", "", map[string]string{
		"email":    "test@EXAMPLE.com",
		"password": "testpass123",
		"name":     "Test Name",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeObject(t, w)
	assert.Equal(t, "test@example.com", body["email"])
	assert.Equal(t, "Test Name", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.True(t, service.CheckPassword(&user, "testpass123"))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := setupTestRouter(t)
	testhelpers.CreateTestUser(t, env.db.DB, "test@example.com")

	w := env.do(t, http.MethodPost, "/user/", "", map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeObject(t, w), "email")
}

func TestCreateUserPasswordTooShort(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodPost, "/user/", "", map[string]string{
		"email":    "test@example.com",
		"password": "pw",
		"name":     "Test name",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeObject(t, w), "password")

	var count int64
	env.db.Model(&models.User{}).Where("email = ?", "test@example.com").Count(&count)
	assert.Zero(t, count)
}

func TestCreateUserInvalidPayload(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodPost, "/user/", "", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeObject(t, w)
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "password")
}

func TestCreateToken(t *testing.T) {
	env := setupTestRouter(t)
	testhelpers.CreateTestUser(t, env.db.DB, "test@example.com")

	w := env.do(t, http.MethodPost, "/user/token/", "", map[string]string{
		"email":    "test@example.com",
		"password": testhelpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := decodeObject(t, w)["token"].(string)
	require.True(t, ok)

	// The issued token authenticates /user/me/
	w = env.do(t, http.MethodGet, "/user/me/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTokenFailures(t *testing.T) {
	env := setupTestRouter(t)
	testhelpers.CreateTestUser(t, env.db.DB, "test@example.com")

	tests := []struct {
		name    string
		payload map[string]string
		field   string
	}{
		{"bad password", map[string]string{"email": "test@example.com", "password": "badpass"}, "non_field_errors"},
		{"unknown email", map[string]string{"email": "nobody@example.com", "password": "testpass123"}, "non_field_errors"},
		{"blank password", map[string]string{"email": "test@example.com", "password": ""}, "password"},
		{"blank email", map[string]string{"email": "", "password": "testpass123"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/user/token/", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeObject(t, w)
			assert.NotContains(t, body, "token")
			assert.Contains(t, body, tt.field)
		})
	}
}

func TestMeRequiresAuthentication(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodGet, "/user/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/user/me/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	env := setupTestRouter(t)
	user, token := env.createUserAndToken(t, "test@example.com")

	w := env.do(t, http.MethodGet, "/user/me/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeObject(t, w)
	assert.Equal(t, map[string]interface{}{"email": user.Email, "name": user.Name}, body)
}

func TestPostMeNotAllowed(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "test@example.com")

	w := env.do(t, http.MethodPost, "/user/me/", token, map[string]string{})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestPatchMe(t *testing.T) {
	env := setupTestRouter(t)
	user, token := env.createUserAndToken(t, "test@example.com")

	w := env.do(t, http.MethodPatch, "/user/me/", token, map[string]string{
		"name":     "Updated name",
		"password": "newpassword123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Updated name", decodeObject(t, w)["name"])

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "Updated name", reloaded.Name)
	assert.True(t, service.CheckPassword(&reloaded, "newpassword123"))
}

func TestPutMeRequiresEmailAndPassword(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.createUserAndToken(t, "test@example.com")

	w := env.do(t, http.MethodPut, "/user/me/", token, map[string]string{"name": "Only name"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeObject(t, w)
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "password")
}

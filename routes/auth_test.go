package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAccount(t *testing.T, email, role string) (int, map[string]interface{}) {
	t.Helper()
	c, w := testContext(t, http.MethodPost, "/auth/register", map[string]interface{}{
		"full_name": "Ada Tester",
		"email":     email,
		"password":  "correct-horse-battery",
		"role":      role,
	})
	register(c)
	return w.Code, decodeBody(t, w)
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)

	code, body := registerAccount(t, "ada@example.com", "guide")
	require.Equal(t, http.StatusCreated, code)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "guide", user["role"])
	// The password hash must never leak through the API
	assert.NotContains(t, user, "password_hash")

	c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "correct-horse-battery",
	})
	login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	code, _ := registerAccount(t, "ada@example.com", "traveler")
	require.Equal(t, http.StatusCreated, code)

	code, body := registerAccount(t, "ada@example.com", "guide")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	setupTestDB(t)

	code, body := registerAccount(t, "root@example.com", "admin")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)

	code, _ := registerAccount(t, "ada@example.com", "traveler")
	require.Equal(t, http.StatusCreated, code)

	c, w := testContext(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

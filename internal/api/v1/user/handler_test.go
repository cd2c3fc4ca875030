package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nicketronix/promptpilot-backend/internal/api/v1/user"
	"github.com/nicketronix/promptpilot-backend/internal/services"
	"github.com/nicketronix/promptpilot-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := user.NewHandler(services.NewUserService(storage.NewMemStorage()))
	user.RegisterRoutes(r.Group("/api"), h)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	r := setupRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"success", `{"username":"alice","password":"s3cret!"}`, http.StatusCreated},
		{"duplicate", `{"username":"alice","password":"another1"}`, http.StatusConflict},
		{"missing password", `{"username":"bob"}`, http.StatusBadRequest},
		{"short username", `{"username":"al","password":"s3cret!"}`, http.StatusBadRequest},
		{"malformed", `{"username":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRegisterMultibytePasswordTooLong(t *testing.T) {
	r := setupRouter()

	body := `{"username":"alice","password":"` + strings.Repeat("é", 40) + `"}`
	w := doJSON(r, http.MethodPost, "/api/users", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "72 bytes")

	w = doJSON(r, http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterDoesNotLeakPassword(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, http.MethodPost, "/api/users", `{"username":"alice","password":"s3cret!"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "s3cret!")

	var resp user.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
}

func TestGetUser(t *testing.T) {
	r := setupRouter()
	doJSON(r, http.MethodPost, "/api/users", `{"username":"alice","password":"s3cret!"}`)

	w := doJSON(r, http.MethodGet, "/api/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp user.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/api/users/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/api/users/abc", "").Code)
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"email":"amine@example.com"}`))
	rec := httptest.NewRecorder()
	tokenHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(defaultSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "amine@example.com", claims["sub"], "token subject is the posted email")
}

func TestTokenHandlerMissingEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	tokenHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenHandlerRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/token", nil)
	rec := httptest.NewRecorder()
	tokenHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/checkout"
	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &checkout.ValidationError{Fields: map[string]string{"phone": "required"}}, http.StatusUnprocessableEntity},
		{"unavailable", &checkout.UnavailableError{}, http.StatusConflict},
		{"not found wrapped", fmt.Errorf("get product: %w", repository.ErrNotFound), http.StatusNotFound},
		{"duplicate", repository.ErrDuplicate, http.StatusConflict},
		{"email taken", auth.ErrEmailTaken, http.StatusConflict},
		{"invalid input", repository.ErrInvalidInput, http.StatusBadRequest},
		{"bad transition", fmt.Errorf("order 3: %w", models.ErrInvalidTransition), http.StatusBadRequest},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"role mismatch", auth.ErrRoleMismatch, http.StatusForbidden},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, nil, tc.err, "Something failed")
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(c, nil, errors.New("pq: password authentication failed"), "Failed to fetch orders")
	assert.JSONEq(t, `{"error":"Failed to fetch orders"}`, w.Body.String())
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := ParseID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := ParseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

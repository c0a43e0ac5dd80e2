package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenTable map[string]*auth.Session

func (t tokenTable) Session(_ context.Context, token string) (*auth.Session, error) {
	if token == "broken" {
		return nil, errors.New("profiles unreachable")
	}
	sess, ok := t[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return sess, nil
}

func (tokenTable) Subscribe() (<-chan auth.Event, func()) {
	return make(chan auth.Event), func() {}
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := auth.NewGate(tokenTable{
		"admin-token":    {UserID: "a1", Role: models.RoleAdmin},
		"customer-token": {UserID: "c1", Role: models.RoleCustomer},
	})

	r := gin.New()
	r.GET("/admin/ping", RequireRole(gate, models.RoleAdmin, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": SessionFrom(c).UserID})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter()

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"admin bearer", "Bearer admin-token", "", http.StatusOK},
		{"admin query token", "", "?token=admin-token", http.StatusOK},
		{"customer", "Bearer customer-token", "", http.StatusUnauthorized},
		{"no token", "", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", "", http.StatusUnauthorized},
		{"lookup failure", "Bearer broken", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireRole_RedirectBody(t *testing.T) {
	r := protectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","state":"redirecting","redirect":"/auth"}`, w.Body.String())
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?token=q", nil)
	assert.Equal(t, "q", BearerToken(c))

	c.Request.Header.Set("Authorization", "Bearer  h ")
	assert.Equal(t, "h", BearerToken(c))
}

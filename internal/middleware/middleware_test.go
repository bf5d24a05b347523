package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthWithRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetSecret("test-secret")

	var ran bool
	r := gin.New()
	r.GET("/admin", RequireAuthWithRole("admin"), func(c *gin.Context) {
		ran = true
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})

	admin, err := GenerateToken(5, "admin")
	require.NoError(t, err)
	driver, err := GenerateToken(6, "driver")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		want    int
		handled bool
	}{
		{"missing", "", http.StatusUnauthorized, false},
		{"garbage", "Bearer nope", http.StatusUnauthorized, false},
		{"wrong role", "Bearer " + driver, http.StatusForbidden, false},
		{"admin", "Bearer " + admin, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran = false
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
			assert.Equal(t, tt.handled, ran)
			if !tt.handled {
				assert.NotContains(t, rr.Body.String(), "user_id")
			}
		})
	}
}

func TestEnableCORS(t *testing.T) {
	h := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), "https://admin.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://admin.example.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

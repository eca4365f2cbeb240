package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveWithAdminUser(t *testing.T, header string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(AdminUser())
	router.GET("/test", func(c *gin.Context) {
		seen = GetAdminUser(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(AdminUserHeader, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	return seen
}

func TestAdminUser_WhenHeaderPresent_ThenStoresTrimmedIdentity(t *testing.T) {
	assert.Equal(t, "ops@exchange.example", serveWithAdminUser(t, "  ops@exchange.example "))
}

func TestAdminUser_WhenHeaderMissingOrBlank_ThenIdentityEmpty(t *testing.T) {
	assert.Empty(t, serveWithAdminUser(t, ""))
	assert.Empty(t, serveWithAdminUser(t, "   "))
}

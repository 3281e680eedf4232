package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vehiql/vehiql-golang/internal/models"
)

// runAdminMiddleware exercises AdminMiddleware for a context carrying the
// given role and reports the resulting status (200 when it passes through).
func runAdminMiddleware(role string) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		c.Set("userRole", role)
	}

	AdminMiddleware()(c)
	if c.IsAborted() {
		return w.Code
	}
	return http.StatusOK
}

func TestAdminMiddleware(t *testing.T) {
	assert.Equal(t, http.StatusOK, runAdminMiddleware(models.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, runAdminMiddleware(models.RoleUser))
	assert.Equal(t, http.StatusForbidden, runAdminMiddleware(""))
}

package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vehiql/vehiql-golang/internal/auth"
	"github.com/vehiql/vehiql-golang/internal/models"
)

// AuthMiddleware validates the bearer token, loads the caller's role and
// stores userID/userRole in the request context. Handlers read both once
// and pass them on explicitly.
func AuthMiddleware(db *sql.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, secret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or missing token"})
			c.Abort()
			return
		}

		var role string
		err := db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Database error checking user"})
			}
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present but
// never rejects the request. Listing endpoints use it for the
// wishlisted annotation.
func OptionalAuth(db *sql.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, secret); ok {
			var role string
			if err := db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role); err == nil {
				c.Set("userID", userID)
				c.Set("userRole", role)
			}
		}
		c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and rejects non-admin roles.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied: Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerUserID(c *gin.Context, secret []byte) (int64, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	userID, err := auth.ValidateToken(parts[1], secret)
	if err != nil {
		return 0, false
	}
	return userID, true
}

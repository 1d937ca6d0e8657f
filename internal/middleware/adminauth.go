package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finalfeedback/finalfeedback/internal/config"
)

// RequireAdmin guards the admin surface with HTTP Basic auth. The username
// is ignored; only the password is checked against the configured secret.
func RequireAdmin(admin config.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checkBasicAuth(c.GetHeader("Authorization"), admin) {
			c.Header("WWW-Authenticate", `Basic realm="Admin Panel"`)
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}

func checkBasicAuth(header string, admin config.AdminConfig) bool {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}

	// Format: username:password
	_, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return false
	}

	return admin.Verify(password)
}

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/server/respond"
)

const (
	companyIDKey    = "companyId"
	companyEmailKey = "companyEmail"
	companyNameKey  = "companyName"
)

// CompanyAuth validates a bearer JWT issued by the auth collaborator and
// stores the company identity in context. The core trusts the company id
// once the token verifies; no further authorization logic lives here.
func CompanyAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(companyIDKey, claims.Sub)
		if claims.Email != "" {
			c.Set(companyEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(companyNameKey, claims.Name)
		}
		c.Next()
	}
}

// EvaluatorAuth gates evaluator callback routes behind a static token.
func EvaluatorAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			respond.Error(c, http.StatusServiceUnavailable, "evaluator_disabled", "evaluator token not configured", nil)
			return
		}
		supplied := strings.TrimSpace(c.GetHeader("X-Evaluator-Token"))
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid evaluator token", nil)
			return
		}
		c.Next()
	}
}

// CompanyIDFromContext fetches the company ID stored by CompanyAuth.
func CompanyIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(companyIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

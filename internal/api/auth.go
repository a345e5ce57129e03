package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/models"
)

const principalKey = "principal"

// authRequired validates the Bearer token and stores the principal on the
// context. Requests without a usable principal get 401.
func authRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		principal, err := parsePrincipal(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// parsePrincipal verifies the HMAC signature and extracts sub + role claims.
func parsePrincipal(tokenStr, secret string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, models.ErrInvalidUUID
	}

	role, _ := claims["role"].(string)

	return &models.Principal{UserID: userID, Role: role}, nil
}

// principalFrom returns the principal stored by authRequired, or nil.
func principalFrom(c *gin.Context) *models.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := v.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
	"github.com/harshulchawla1408/Astrousers-sub000/src/utils"
)

// IdentityKey is the gin context key holding the verified caller identity.
const IdentityKey = "identity_id"

// ParseIdentity verifies a bearer token issued by the external identity
// provider and returns the identity id it asserts. The consult service never
// issues tokens itself.
func ParseIdentity(token, secret string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token carries no subject")
	}
	return subject, nil
}

// AuthRequired extracts the caller identity from the Authorization header or,
// for websocket upgrades where browsers cannot set headers, from the token
// query parameter.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.SendError(c, schemas.NewUnauthenticatedError("Invalid authorization header format", c.FullPath()))
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
		}

		if token == "" {
			utils.SendError(c, schemas.NewUnauthenticatedError("Authorization header missing", c.FullPath()))
			c.Abort()
			return
		}

		identityID, err := ParseIdentity(token, secret)
		if err != nil {
			utils.SendError(c, schemas.NewUnauthenticatedError(err.Error(), c.FullPath()))
			c.Abort()
			return
		}

		c.Set(IdentityKey, identityID)
		c.Next()
	}
}

// GatewayAuthRequired guards the wallet credit landing point: only the
// payment gateway, holding the shared key, may land top-ups.
func GatewayAuthRequired(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Gateway-Key") != key {
			utils.SendError(c, schemas.NewUnauthenticatedError("Invalid gateway key", c.FullPath()))
			c.Abort()
			return
		}
		c.Next()
	}
}

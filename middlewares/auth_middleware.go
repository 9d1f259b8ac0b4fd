package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Iamjava/nutritionist/models"
	"github.com/Iamjava/nutritionist/services"
)

// SessionCookie carries the signed identity token between requests.
const SessionCookie = "nut_session"

const identityKey = "identity"

// IdentityMiddleware validates the session token and puts the claimed
// identity on the context. Authentication itself happens outside the app;
// this layer only consumes the resulting claims. Requests without a valid
// token are redirected to the login page.
func IdentityMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		username, _ := claims["sub"].(string)
		if username == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		name, _ := claims["name"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		c.Set(identityKey, services.Identity{
			Username: username,
			Name:     name,
			Email:    email,
			Role:     models.RoleKind(role),
		})
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// CurrentIdentity returns the identity set by IdentityMiddleware.
func CurrentIdentity(c *gin.Context) services.Identity {
	id, _ := c.MustGet(identityKey).(services.Identity)
	return id
}

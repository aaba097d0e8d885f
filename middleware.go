// middleware.go

package main

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"blinkfast-backend/internal/store"
)

type JWTClaims struct {
	SessionID string `json:"sessionId"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

const (
	sessionKey   = "session"
	sessionIDKey = "sessionId"
)

// AuthMiddleware resolves the bearer token to a live session and stores
// it on the request context.
func (s *Server) AuthMiddleware(c *gin.Context) {
	tokenStr := c.GetHeader("Authorization")
	if tokenStr == "" || len(tokenStr) < 8 {
		c.AbortWithStatusJSON(401, gin.H{"error": "missing token"})
		return
	}
	tokenStr = tokenStr[7:] // strip "Bearer "
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token", "detail": err.Error()})
		return
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
		return
	}
	sess, err := s.store.Session(claims.SessionID)
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "session expired"})
		return
	}
	c.Set(sessionKey, sess)
	c.Set(sessionIDKey, claims.SessionID)
	c.Next()
}

// RequireAdmin is the central authorization check for admin routes.
// Hiding admin controls in the client is not enough; the role is
// re-checked here against the live session, not just the token claim.
func (s *Server) RequireAdmin(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil || sess.User().Role != store.RoleAdmin {
		c.AbortWithStatusJSON(403, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

func currentSession(c *gin.Context) *store.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*store.Session)
	return sess
}

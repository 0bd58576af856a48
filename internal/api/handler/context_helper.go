package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/pkg/response"
)

// Context keys written by middleware.JWTAuth.
const (
	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxTokenJTI = "token_jti"
	ctxTokenExp = "token_exp"
)

// MustGetUserID extracts user_id from the gin context.
// On failure it writes a 401 and returns false; the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, ctxUserID)
}

// MustGetIdentity builds the acting identity from the JWT claims in context.
func MustGetIdentity(c *gin.Context) (production.Identity, bool) {
	userID, ok := mustGetString(c, ctxUserID)
	if !ok {
		return production.Identity{}, false
	}
	role, ok := mustGetString(c, ctxRole)
	if !ok {
		return production.Identity{}, false
	}
	return production.Identity{UserID: userID, Role: role}, true
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// tokenMeta jti and expiry of the access token; zero values when absent.
func tokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ctxTokenJTI)
	var exp time.Time
	if v, ok := c.Get(ctxTokenExp); ok {
		exp, _ = v.(time.Time)
	}
	return jti, exp
}

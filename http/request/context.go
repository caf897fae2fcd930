package request

import (
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRoleContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// FindClientIP returns the client IP, honoring proxy headers.
func FindClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// GetUserID returns the authenticated user ID stored in the context.
func GetUserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

// GetUserName returns the authenticated username stored in the context.
func GetUserName(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

// GetUserRole returns the authenticated user role stored in the context.
func GetUserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRoleContextKey); v != nil {
		if value, valid := v.(model.Role); valid {
			return value
		}
	}
	return ""
}

package v1

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/api/auth"
	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/util"
	"github.com/pkg/errors"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{store: store, secret: secret}
}

func (m *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isUnauthorizeAllowed(r) {
			next.ServeHTTP(w, r)
			return
		}
		clientIP := request.FindClientIP(r)
		accessToken := getAccessToken(r)

		user, err := m.authenticate(accessToken)
		if err != nil {
			log.Debug("Failed to authenticate user",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", r.UserAgent()),
				zap.Error(err),
			)
			response.Unauthorized(w, r)
			return
		}
		if user.RowStatus == model.Archived {
			log.Debug("User is archived",
				zap.String("client_ip", clientIP),
				zap.String("username", user.Username),
			)
			response.Unauthorized(w, r)
			return
		}
		if isOnlyForAdminAllowedPath(r.URL.Path) && !user.Role.IsAdmin() {
			response.Forbidden(w, r)
			return
		}

		if err := m.store.SetLastLogin(user.ID); err != nil {
			log.Warn("Failed to set last login", zap.Error(err))
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, request.UserNameContextKey, user.Username)
		ctx = context.WithValue(ctx, request.UserRoleContextKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthInterceptor) authenticate(accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, errors.New("no access token provided")
	}
	claims, err := auth.ParseAccessToken(accessToken, []byte(m.secret))
	if err != nil {
		return nil, err
	}

	userID, err := util.ConvertStringToInt32(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "malformed ID in the token")
	}
	user, err := m.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.Errorf("user not found with ID: %d", userID)
	}

	return user, nil
}

func getAccessToken(r *http.Request) string {
	// Check the HTTP Authorization header first
	authorizationHeaders := r.Header.Get("Authorization")
	// Check bearer token
	if authorizationHeaders != "" {
		splitToken := strings.Split(authorizationHeaders, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}

	// Check the cookie header
	var accessToken string
	for _, cookie := range r.Cookies() {
		if cookie.Name == auth.AccessTokenCookieName {
			accessToken = cookie.Value
		}
	}
	return accessToken
}

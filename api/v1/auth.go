package v1

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/deepeshsaheb-tal/bookcritic/api/auth"
	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/validator"
)

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var signin model.UserSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&signin); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	user, err := h.store.GetUser(&model.FindUser{Email: &signin.Email})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Wrong email and wrong password respond identically.
	if user == nil {
		log.Warn("User not found", zap.String("email", signin.Email))
		response.Unauthorized(w, r)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Password)); err != nil {
		log.Warn("Failed to compare password", zap.Error(err))
		response.Unauthorized(w, r)
		return
	}

	if user.RowStatus == model.Archived {
		log.Warn("Archived user attempted to sign in", zap.String("email", signin.Email))
		response.Unauthorized(w, r)
		return
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	accessToken, err := h.doSignIn(w, r, user, expireTime)
	if err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &response.SessionResponse{
		User:  response.UserResponse(user),
		Token: accessToken,
	})
}

func (h *Handler) doSignIn(w http.ResponseWriter, r *http.Request, user *model.User, expireTime time.Time) (string, error) {
	accessToken, err := auth.GenerateAccessToken(user.Username, user.ID, expireTime, []byte(h.jwtSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	if err := h.store.SetLastLogin(user.ID); err != nil {
		return "", errors.Wrap(err, "failed to update last login")
	}

	cookie := buildAccessTokenCookie(accessToken, expireTime, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	return accessToken, nil
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	generalSetting, err := h.store.GetSystemGeneralSetting()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("Failed to get general system setting", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
	}

	// Check if signup is disabled
	if generalSetting != nil && generalSetting.DisableSignup {
		log.Debug("Signup is disabled")
		response.Forbidden(w, r)
		return
	}

	signup := &model.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(signup); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateSignupRequest(h.store, signup); err != nil {
		log.Warn("Failed to validate signup request", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// The first account becomes the host.
	newRole := model.RoleUser
	hostType := model.RoleHost
	existedHostUser, err := h.store.GetUser(&model.FindUser{Role: &hostType})
	if err != nil {
		log.Error("Failed to get users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if existedHostUser == nil {
		newRole = model.RoleHost
	}

	user := model.User{
		Username:     signup.Username,
		Email:        signup.Email,
		Nickname:     signup.Nickname,
		PasswordHash: string(passwordHash),
		Role:         newRole,
	}

	newUser, err := h.store.CreateUser(&user)
	if err != nil {
		log.Error("Failed to signup user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Store user in cache
	h.store.UserCache.Store(newUser.ID, newUser)

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	accessToken, err := h.doSignIn(w, r, newUser, expireTime)
	if err != nil {
		log.Error("Failed to sign in new user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, &response.SessionResponse{
		User:  response.UserResponse(newUser),
		Token: accessToken,
	})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	// Expire the cookie, bearer clients drop the token themselves.
	cookie := buildAccessTokenCookie("", time.Time{}, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	response.NoContent(w, r)
}

// me returns the authenticated user, the validate-on-load call of clients.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)

	req := &model.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	update := &model.UpdateUser{
		ID:        userID,
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
	}
	user, err := h.store.UpdateUser(update)
	if err != nil {
		log.Error("Failed to update user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func buildAccessTokenCookie(accessToken string, expireTime time.Time, origin string) string {
	attrs := []string{
		fmt.Sprintf("%s=%s", auth.AccessTokenCookieName, accessToken),
		"Path=/",
		"HttpOnly",
	}
	if expireTime.IsZero() {
		attrs = append(attrs, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	} else {
		attrs = append(attrs, "Expires="+expireTime.Format(time.RFC1123))
	}

	if strings.HasPrefix(origin, "https://") {
		attrs = append(attrs, "Secure")
		attrs = append(attrs, "SameSite=None")
	} else {
		attrs = append(attrs, "SameSite=Lax")
	}
	return strings.Join(attrs, "; ")
}

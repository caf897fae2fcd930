package response

import (
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// UserResponse strips the password hash before the user leaves the server.
func UserResponse(user *model.User) *model.User {
	return &model.User{
		ID:          user.ID,
		RowStatus:   user.RowStatus,
		CreatedTs:   user.CreatedTs,
		UpdatedTs:   user.UpdatedTs,
		Username:    user.Username,
		Role:        user.Role,
		Email:       user.Email,
		Nickname:    user.Nickname,
		AvatarURL:   user.AvatarURL,
		LastLoginTs: user.LastLoginTs,
		ReviewCount: user.ReviewCount,
	}
}

func UserListResponse(users []*model.User) []*model.User {
	var response []*model.User
	for _, user := range users {
		response = append(response, UserResponse(user))
	}
	return response
}

// SessionResponse is the signin/signup payload: the sanitized user plus
// the bearer token clients persist under their token storage key.
type SessionResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

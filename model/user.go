package model

// Role is the type of a role.
type Role string

const (
	// RoleHost is the HOST role, assigned to the first signed up user.
	RoleHost Role = "HOST"
	// RoleAdmin is the ADMIN role.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the USER role.
	RoleUser Role = "USER"
)

func (e Role) String() string {
	switch e {
	case RoleHost:
		return "HOST"
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	}
	return "USER"
}

// IsAdmin reports whether the role can use moderation endpoints.
func (e Role) IsAdmin() bool {
	return e == RoleHost || e == RoleAdmin
}

type User struct {
	ID int32 `json:"id"`

	RowStatus RowStatus `json:"row_status"`
	CreatedTs int64     `json:"created_ts"`
	UpdatedTs int64     `json:"updated_ts"`

	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	PasswordHash string `json:"password_hash"`
	AvatarURL    string `json:"avatar_url"`
	LastLoginTs  int64  `json:"last_login_ts"`

	// ReviewCount is denormalized, maintained by the rating worker.
	ReviewCount int `json:"review_count"`
}

// UserSummary is the shape embedded in reviews.
type UserSummary struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Nickname: u.Nickname,
	}
}

type FindUser struct {
	ID        *int32     `json:"id"`
	RowStatus *RowStatus `json:"row_status"`
	Username  *string    `json:"username"`
	Role      *Role      `json:"role"`
	Email     *string    `json:"email"`

	// Skip and Take are used in list users.
	Skip *int
	Take *int
}

type UpdateUser struct {
	ID int32

	RowStatus *RowStatus
	Role      *Role
	Nickname  *string
	AvatarURL *string
}

type UserSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type UserSigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Nickname  *string `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
}

// AdminUserUpdateRequest is the moderation surface: archive, restore
// or change the role of an account.
type AdminUserUpdateRequest struct {
	RowStatus *RowStatus `json:"row_status"`
	Role      *Role      `json:"role"`
}

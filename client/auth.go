package client

import (
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

type sessionResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// SignUp registers an account and stores the session.
func (c *Client) SignUp(req *model.UserSignupRequest) (*model.User, error) {
	var resp sessionResponse
	if err := c.do(http.MethodPost, "/signup", req, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SignIn authenticates and stores the session.
func (c *Client) SignIn(req *model.UserSigninRequest) (*model.User, error) {
	var resp sessionResponse
	if err := c.do(http.MethodPost, "/signin", req, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.User, resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// SignOut clears the session. The server call is best effort, the
// local credentials are dropped either way.
func (c *Client) SignOut() error {
	err := c.do(http.MethodPost, "/signout", nil, nil)
	c.session.Clear()
	return err
}

// Me returns the authenticated user.
func (c *Client) Me() (*model.User, error) {
	var user model.User
	if err := c.do(http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe updates the authenticated user's profile.
func (c *Client) UpdateMe(req *model.UserUpdateRequest) (*model.User, error) {
	var user model.User
	if err := c.do(http.MethodPatch, "/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Validate performs the single validate-on-load call against the stored
// token. A failed validation clears the credentials, no retry.
func (c *Client) Validate() (*model.User, error) {
	if !c.session.IsAuthenticated() {
		return nil, nil
	}
	user, err := c.Me()
	if err != nil {
		c.session.Clear()
		return nil, err
	}
	if err := c.session.Set(user, c.session.GetToken()); err != nil {
		return nil, err
	}
	return user, nil
}

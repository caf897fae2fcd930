package client

import (
	"fmt"
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// UserPage is the moderation console user listing.
type UserPage struct {
	Users []*model.User `json:"users"`
	Total int           `json:"total"`
}

// Stats is the moderation console overview.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	ArchivedUsers int `json:"archived_users"`
	TotalBooks    int `json:"total_books"`
	TotalReviews  int `json:"total_reviews"`
}

func (c *Client) AdminListUsers(page PageRequest) (*UserPage, error) {
	var users UserPage
	if err := c.do(http.MethodGet, "/admin/users?"+page.values().Encode(), nil, &users); err != nil {
		return nil, err
	}
	return &users, nil
}

func (c *Client) AdminUpdateUser(userID int32, req *model.AdminUserUpdateRequest) (*model.User, error) {
	var user model.User
	if err := c.do(http.MethodPatch, fmt.Sprintf("/admin/users/%d", userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminStats() (*Stats, error) {
	var stats Stats
	if err := c.do(http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminMetrics() ([]metrics.Metric, error) {
	var list []metrics.Metric
	if err := c.do(http.MethodGet, "/admin/metrics", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

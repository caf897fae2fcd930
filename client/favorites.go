package client

import (
	"fmt"
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (c *Client) ListFavorites(page PageRequest) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	if err := c.do(http.MethodGet, "/favorites?"+page.values().Encode(), nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (c *Client) AddFavorite(bookID int32) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := c.do(http.MethodPost, fmt.Sprintf("/favorites/%d", bookID), nil, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (c *Client) RemoveFavorite(bookID int32) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/favorites/%d", bookID), nil, nil)
}

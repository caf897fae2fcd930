package client

import (
	"fmt"
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (c *Client) ListReading(page PageRequest, state model.ReadingState) ([]*model.ReadingStatus, error) {
	values := page.values()
	if state != "" {
		values.Set("state", string(state))
	}

	var statuses []*model.ReadingStatus
	if err := c.do(http.MethodGet, "/reading?"+values.Encode(), nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) SetReading(bookID int32, state model.ReadingState) (*model.ReadingStatus, error) {
	var status model.ReadingStatus
	req := &model.ReadingUpdateRequest{State: state}
	if err := c.do(http.MethodPut, fmt.Sprintf("/reading/%d", bookID), req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) RemoveReading(bookID int32) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/reading/%d", bookID), nil, nil)
}

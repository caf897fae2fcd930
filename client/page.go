package client

import (
	"fmt"
	"net/url"
)

// PageRequest is one-based pagination translated to the skip and take
// query parameters of the API.
type PageRequest struct {
	Page int
	Size int
}

const defaultPageSize = 20

func (p PageRequest) values() url.Values {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.Size
	if size <= 0 {
		size = defaultPageSize
	}

	values := url.Values{}
	values.Set("skip", fmt.Sprintf("%d", (page-1)*size))
	values.Set("take", fmt.Sprintf("%d", size))
	return values
}

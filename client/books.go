package client

import (
	"fmt"
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// BookSearch is the catalogue browse request: free-text query, genre
// filter, ordering plus pagination.
type BookSearch struct {
	Query   string
	Genre   string
	OrderBy string
	PageRequest
}

func (c *Client) ListBooks(search BookSearch) (*model.BookList, error) {
	values := search.values()
	if search.Query != "" {
		values.Set("q", search.Query)
	}
	if search.Genre != "" {
		values.Set("genre", search.Genre)
	}
	if search.OrderBy != "" {
		values.Set("order_by", search.OrderBy)
	}

	var list model.BookList
	if err := c.do(http.MethodGet, "/books?"+values.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetBook(id int32) (*model.Book, error) {
	var book model.Book
	if err := c.do(http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) ListGenres() ([]string, error) {
	var genres []string
	if err := c.do(http.MethodGet, "/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) CreateBook(req *model.BookCreateRequest) (*model.Book, error) {
	var book model.Book
	if err := c.do(http.MethodPost, "/books", req, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *Client) UpdateBook(id int32, req *model.BookUpdateRequest) (*model.Book, error) {
	var book model.Book
	if err := c.do(http.MethodPatch, fmt.Sprintf("/books/%d", id), req, &book); err != nil {
		return nil, err
	}
	c.books.invalidate(id)
	return &book, nil
}

func (c *Client) DeleteBook(id int32) error {
	if err := c.do(http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil); err != nil {
		return err
	}
	c.books.invalidate(id)
	return nil
}

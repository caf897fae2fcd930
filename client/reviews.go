package client

import (
	"fmt"
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/validator"
)

func (c *Client) ListBookReviews(bookID int32, page PageRequest) (*model.ReviewList, error) {
	var list model.ReviewList
	path := fmt.Sprintf("/books/%d/reviews?%s", bookID, page.values().Encode())
	if err := c.do(http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) ListUserReviews(userID int32, page PageRequest) (*model.ReviewList, error) {
	var list model.ReviewList
	path := fmt.Sprintf("/users/%d/reviews?%s", userID, page.values().Encode())
	if err := c.do(http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateReview validates the form locally before hitting the API, so
// the user gets the exact field error without a round trip.
func (c *Client) CreateReview(bookID int32, req *model.ReviewCreateRequest) (*model.Review, error) {
	if err := validator.ValidateReviewCreateRequest(req); err != nil {
		return nil, &APIError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}

	var review model.Review
	if err := c.do(http.MethodPost, fmt.Sprintf("/books/%d/reviews", bookID), req, &review); err != nil {
		return nil, err
	}
	c.books.invalidate(bookID)
	return &review, nil
}

func (c *Client) UpdateReview(reviewID int32, req *model.ReviewUpdateRequest) (*model.Review, error) {
	if err := validator.ValidateReviewUpdateRequest(req); err != nil {
		return nil, &APIError{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}

	var review model.Review
	if err := c.do(http.MethodPatch, fmt.Sprintf("/reviews/%d", reviewID), req, &review); err != nil {
		return nil, err
	}
	c.books.invalidate(review.BookID)
	return &review, nil
}

func (c *Client) DeleteReview(reviewID int32) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/reviews/%d", reviewID), nil, nil)
}

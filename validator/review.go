package validator

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// ReviewContentMinLength is the minimum review length.
const ReviewContentMinLength = 10

// ValidateReviewForm checks a review submission before it reaches the store.
// A zero rating means the user never picked one.
func ValidateReviewForm(rating int, content string) error {
	if rating == 0 {
		return errors.New("Please select a rating")
	}
	if rating < model.RatingMin || rating > model.RatingMax {
		return errors.Errorf("Rating must be between %d and %d", model.RatingMin, model.RatingMax)
	}
	if len(strings.TrimSpace(content)) < ReviewContentMinLength {
		return errors.Errorf("Review must be at least %d characters long", ReviewContentMinLength)
	}
	return nil
}

func ValidateReviewCreateRequest(req *model.ReviewCreateRequest) error {
	if req == nil {
		return errors.New("review is nil")
	}
	return ValidateReviewForm(req.Rating, req.Content)
}

func ValidateReviewUpdateRequest(req *model.ReviewUpdateRequest) error {
	if req == nil {
		return errors.New("review is nil")
	}
	if req.Rating == nil && req.Content == nil {
		return errors.New("nothing to update")
	}
	if req.Rating != nil {
		if *req.Rating == 0 {
			return errors.New("Please select a rating")
		}
		if *req.Rating < model.RatingMin || *req.Rating > model.RatingMax {
			return errors.Errorf("Rating must be between %d and %d", model.RatingMin, model.RatingMax)
		}
	}
	if req.Content != nil && len(strings.TrimSpace(*req.Content)) < ReviewContentMinLength {
		return errors.Errorf("Review must be at least %d characters long", ReviewContentMinLength)
	}
	return nil
}

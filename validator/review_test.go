package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func TestValidateReviewForm_NoRating(t *testing.T) {
	err := ValidateReviewForm(0, "This book was a great read overall.")
	assert.Error(t, err)
	assert.Equal(t, "Please select a rating", err.Error())
}

func TestValidateReviewForm_RatingOutOfRange(t *testing.T) {
	err := ValidateReviewForm(6, "This book was a great read overall.")
	assert.Error(t, err)
	assert.Equal(t, "Rating must be between 1 and 5", err.Error())
}

func TestValidateReviewForm_ContentTooShort(t *testing.T) {
	err := ValidateReviewForm(4, "Too short")
	assert.Error(t, err)
	assert.Equal(t, "Review must be at least 10 characters long", err.Error())
}

func TestValidateReviewForm_WhitespaceDoesNotCount(t *testing.T) {
	err := ValidateReviewForm(4, "   short    ")
	assert.Error(t, err)
}

func TestValidateReviewForm_Valid(t *testing.T) {
	err := ValidateReviewForm(5, "A thoughtful, well paced story.")
	assert.NoError(t, err)
}

func TestValidateReviewUpdateRequest(t *testing.T) {
	assert.Error(t, ValidateReviewUpdateRequest(&model.ReviewUpdateRequest{}))

	zero := 0
	assert.Equal(t, "Please select a rating",
		ValidateReviewUpdateRequest(&model.ReviewUpdateRequest{Rating: &zero}).Error())

	rating := 3
	assert.NoError(t, ValidateReviewUpdateRequest(&model.ReviewUpdateRequest{Rating: &rating}))

	short := "short"
	assert.Error(t, ValidateReviewUpdateRequest(&model.ReviewUpdateRequest{Content: &short}))
}

package v1

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/validator"
)

func (h *Handler) listBookReviews(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "bookID")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	skip, take := request.Pagination(r)
	find := &model.FindReview{
		BookID: &bookID,
		Skip:   &skip,
		Take:   &take,
	}
	reviews, err := h.store.ListReviews(find)
	if err != nil {
		log.Error("Failed to list reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	total, err := h.store.CountReviews(find)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.ReviewList{Reviews: reviews, Total: total})
}

func (h *Handler) listUserReviews(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteInt32Param(r, "userID")
	skip, take := request.Pagination(r)
	find := &model.FindReview{
		UserID: &userID,
		Skip:   &skip,
		Take:   &take,
	}
	reviews, err := h.store.ListReviews(find)
	if err != nil {
		log.Error("Failed to list user reviews", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	total, err := h.store.CountReviews(find)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.ReviewList{Reviews: reviews, Total: total})
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteInt32Param(r, "bookID")

	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}

	req := &model.ReviewCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateReviewCreateRequest(req); err != nil {
		log.Warn("Invalid review", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	review, err := h.store.CreateReview(&model.Review{
		BookID:  bookID,
		UserID:  userID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		log.Error("Failed to create review", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	log.Debug("Review created",
		zap.String("username", request.GetUserName(r)),
		zap.Int32("book_id", bookID),
		zap.Int("rating", req.Rating))

	h.pushAggregateJobs(bookID, userID)
	response.Created(w, r, review)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := request.RouteInt32Param(r, "reviewID")
	review, err := h.store.GetReview(&model.FindReview{ID: &reviewID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if review == nil {
		response.NotFound(w, r)
		return
	}

	// Only the author edits a review.
	if review.UserID != request.GetUserID(r) {
		response.Forbidden(w, r)
		return
	}

	req := &model.ReviewUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateReviewUpdateRequest(req); err != nil {
		log.Warn("Invalid review update", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	updated, err := h.store.UpdateReview(reviewID, req)
	if err != nil {
		log.Error("Failed to update review", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.pushAggregateJobs(review.BookID, review.UserID)
	response.OK(w, r, updated)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := request.RouteInt32Param(r, "reviewID")
	review, err := h.store.GetReview(&model.FindReview{ID: &reviewID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if review == nil {
		response.NotFound(w, r)
		return
	}

	// The author or a moderator removes a review.
	if review.UserID != request.GetUserID(r) && !request.GetUserRole(r).IsAdmin() {
		response.Forbidden(w, r)
		return
	}

	if err := h.store.RemoveReview(reviewID); err != nil {
		log.Error("Failed to delete review", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.pushAggregateJobs(review.BookID, review.UserID)
	response.NoContent(w, r)
}

// pushAggregateJobs queues the denormalized column refresh after a review change.
func (h *Handler) pushAggregateJobs(bookID, userID int32) {
	h.aggregatePool.Push(model.Job{Type: model.JobTypeBookAggregate, BookID: bookID})
	h.aggregatePool.Push(model.Job{Type: model.JobTypeUserAggregate, UserID: userID})
}

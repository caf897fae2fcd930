package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// UserListResponse is the moderation console user page.
type UserListResponse struct {
	Users []*model.User `json:"users"`
	Total int           `json:"total"`
}

// StatsResponse is the moderation console overview counters.
type StatsResponse struct {
	TotalUsers    int `json:"total_users"`
	ArchivedUsers int `json:"archived_users"`
	TotalBooks    int `json:"total_books"`
	TotalReviews  int `json:"total_reviews"`
}

func (h *Handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	skip, take := request.Pagination(r)
	find := &model.FindUser{
		Skip: &skip,
		Take: &take,
	}
	if v := request.QueryStringParam(r, "row_status", ""); v != "" {
		rowStatus := model.RowStatus(v)
		find.RowStatus = &rowStatus
	}

	users, err := h.store.ListUsers(find)
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	total, err := h.store.CountUsers(find)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &UserListResponse{
		Users: response.UserListResponse(users),
		Total: total,
	})
}

func (h *Handler) adminUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := request.RouteInt32Param(r, "userID")
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.NotFound(w, r)
		return
	}

	req := &model.AdminUserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if req.RowStatus != nil && *req.RowStatus != model.Normal && *req.RowStatus != model.Archived {
		response.BadRequest(w, r, errors.Errorf("invalid row status: %s", *req.RowStatus))
		return
	}
	if req.Role != nil && *req.Role != model.RoleAdmin && *req.Role != model.RoleUser {
		response.BadRequest(w, r, errors.Errorf("invalid role: %s", *req.Role))
		return
	}

	// The host account is not demotable or archivable.
	if user.Role == model.RoleHost {
		response.Forbidden(w, r)
		return
	}

	updated, err := h.store.UpdateUser(&model.UpdateUser{
		ID:        userID,
		RowStatus: req.RowStatus,
		Role:      req.Role,
	})
	if err != nil {
		log.Error("Failed to update user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, response.UserResponse(updated))
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.store.CountUsers(&model.FindUser{})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	archived := model.Archived
	archivedUsers, err := h.store.CountUsers(&model.FindUser{RowStatus: &archived})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	totalBooks, err := h.store.CountBooks(&model.FindBook{})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	totalReviews, err := h.store.CountReviews(&model.FindReview{})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &StatsResponse{
		TotalUsers:    totalUsers,
		ArchivedUsers: archivedUsers,
		TotalBooks:    totalBooks,
		TotalReviews:  totalReviews,
	})
}

func (h *Handler) adminMetrics(w http.ResponseWriter, r *http.Request) {
	// The collector is nil when metrics_collector is disabled.
	if h.collector == nil {
		response.OK(w, r, []metrics.Metric{})
		return
	}
	response.OK(w, r, h.collector.Snapshot())
}

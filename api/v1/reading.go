package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (h *Handler) listReading(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	skip, take := request.Pagination(r)
	find := &model.FindReadingStatus{
		UserID: &userID,
		Skip:   &skip,
		Take:   &take,
	}
	if v := request.QueryStringParam(r, "state", ""); v != "" {
		state := model.ReadingState(v)
		if !state.Valid() {
			response.BadRequest(w, r, errors.Errorf("invalid reading state: %s", v))
			return
		}
		find.State = &state
	}

	statuses, err := h.store.ListReadingStatuses(find)
	if err != nil {
		log.Error("Failed to list reading statuses", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, statuses)
}

func (h *Handler) setReading(w http.ResponseWriter, r *http.Request) {
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

	req := &model.ReadingUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if !req.State.Valid() {
		response.BadRequest(w, r, errors.Errorf("invalid reading state: %s", req.State))
		return
	}

	status, err := h.store.SetReadingStatus(userID, bookID, req.State)
	if err != nil {
		log.Error("Failed to set reading status", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, status)
}

func (h *Handler) removeReading(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteInt32Param(r, "bookID")

	if err := h.store.RemoveReadingStatus(userID, bookID); err != nil {
		log.Warn("Failed to remove reading status", zap.Error(err))
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}

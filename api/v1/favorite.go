package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/http/request"
	"github.com/deepeshsaheb-tal/bookcritic/http/response"
	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	skip, take := request.Pagination(r)
	favorites, err := h.store.ListFavorites(&model.FindFavorite{
		UserID: &userID,
		Skip:   &skip,
		Take:   &take,
	})
	if err != nil {
		log.Error("Failed to list favorites", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, favorites)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
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

	favorite, err := h.store.AddFavorite(userID, bookID)
	if err != nil {
		log.Error("Failed to add favorite", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, favorite)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	bookID := request.RouteInt32Param(r, "bookID")

	if err := h.store.RemoveFavorite(userID, bookID); err != nil {
		log.Warn("Failed to remove favorite", zap.Error(err))
		response.NotFound(w, r)
		return
	}
	response.NoContent(w, r)
}

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

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	skip, take := request.Pagination(r)
	find := &model.FindBook{
		Skip: &skip,
		Take: &take,
	}
	if v := request.QueryStringParam(r, "q", ""); v != "" {
		find.Query = &v
	}
	if v := request.QueryStringParam(r, "genre", ""); v != "" {
		find.Genre = &v
	}
	if v := request.QueryStringParam(r, "order_by", ""); v != "" {
		find.OrderBy = &v
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Failed to list books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	total, err := h.store.CountBooks(find)
	if err != nil {
		log.Error("Failed to count books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, &model.BookList{Books: books, Total: total})
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt32Param(r, "bookID")
	book, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		log.Error("Failed to get book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	if !request.GetUserRole(r).IsAdmin() {
		response.Forbidden(w, r)
		return
	}

	req := &model.BookCreateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateBookCreateRequest(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.CreateBook(&model.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Description: req.Description,
		PublishDate: req.PublishDate,
		CoverURL:    req.CoverURL,
		Genres:      req.Genres,
	})
	if err != nil {
		log.Error("Failed to create book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.Created(w, r, book)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	if !request.GetUserRole(r).IsAdmin() {
		response.Forbidden(w, r)
		return
	}

	bookID := request.RouteInt32Param(r, "bookID")
	existed, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existed == nil {
		response.NotFound(w, r)
		return
	}

	req := &model.BookUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	book, err := h.store.UpdateBook(bookID, req)
	if err != nil {
		log.Error("Failed to update book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if !request.GetUserRole(r).IsAdmin() {
		response.Forbidden(w, r)
		return
	}

	bookID := request.RouteInt32Param(r, "bookID")
	existed, err := h.store.GetBook(&model.FindBook{ID: &bookID})
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	if existed == nil {
		response.NotFound(w, r)
		return
	}

	if err := h.store.RemoveBook(bookID); err != nil {
		log.Error("Failed to delete book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.store.ListGenres()
	if err != nil {
		log.Error("Failed to list genres", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, genres)
}

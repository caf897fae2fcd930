package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/middleware"
	"github.com/deepeshsaheb-tal/bookcritic/store"
	"github.com/deepeshsaheb-tal/bookcritic/worker"
)

type Handler struct {
	store         *store.Store
	aggregatePool worker.WorkPool
	collector     *metrics.Collector
	router        *mux.Router
	jwtSecret     string
}

// Server mounts the versioned API on the router.
func Server(router *mux.Router, store *store.Store, pool worker.WorkPool, collector *metrics.Collector, jwtSecret string) *Handler {
	handler := &Handler{
		store:         store,
		aggregatePool: pool,
		collector:     collector,
		router:        router,
		jwtSecret:     jwtSecret,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	mw := middleware.NewMiddleware(store, collector)
	sr.Use(mw.HandleCORS)
	sr.Use(mw.LoggingRequest)
	sr.Use(NewAuthInterceptor(store, jwtSecret).AuthenticationInterceptor)
	sr.Methods(http.MethodOptions)

	// Auth
	sr.HandleFunc("/signup", handler.signUp).Methods(http.MethodPost)
	sr.HandleFunc("/signin", handler.signIn).Methods(http.MethodPost)
	sr.HandleFunc("/signout", handler.signOut).Methods(http.MethodPost)
	sr.HandleFunc("/me", handler.me).Methods(http.MethodGet)
	sr.HandleFunc("/me", handler.updateMe).Methods(http.MethodPatch)

	// Books
	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{bookID}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{bookID}", handler.updateBook).Methods(http.MethodPatch)
	sr.HandleFunc("/books/{bookID}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/genres", handler.listGenres).Methods(http.MethodGet)

	// Reviews
	sr.HandleFunc("/books/{bookID}/reviews", handler.listBookReviews).Methods(http.MethodGet)
	sr.HandleFunc("/books/{bookID}/reviews", handler.createReview).Methods(http.MethodPost)
	sr.HandleFunc("/reviews/{reviewID}", handler.updateReview).Methods(http.MethodPatch)
	sr.HandleFunc("/reviews/{reviewID}", handler.deleteReview).Methods(http.MethodDelete)
	sr.HandleFunc("/users/{userID}/reviews", handler.listUserReviews).Methods(http.MethodGet)

	// Favorites
	sr.HandleFunc("/favorites", handler.listFavorites).Methods(http.MethodGet)
	sr.HandleFunc("/favorites/{bookID}", handler.addFavorite).Methods(http.MethodPost)
	sr.HandleFunc("/favorites/{bookID}", handler.removeFavorite).Methods(http.MethodDelete)

	// Reading list
	sr.HandleFunc("/reading", handler.listReading).Methods(http.MethodGet)
	sr.HandleFunc("/reading/{bookID}", handler.setReading).Methods(http.MethodPut)
	sr.HandleFunc("/reading/{bookID}", handler.removeReading).Methods(http.MethodDelete)

	// Admin console
	sr.HandleFunc("/admin/users", handler.adminListUsers).Methods(http.MethodGet)
	sr.HandleFunc("/admin/users/{userID}", handler.adminUpdateUser).Methods(http.MethodPatch)
	sr.HandleFunc("/admin/stats", handler.adminStats).Methods(http.MethodGet)
	sr.HandleFunc("/admin/metrics", handler.adminMetrics).Methods(http.MethodGet)

	return handler
}

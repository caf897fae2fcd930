package v1

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepeshsaheb-tal/bookcritic/config"
	"github.com/deepeshsaheb-tal/bookcritic/metrics"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/store"
)

func init() {
	config.Opts = config.GetDefaultOptions()
}

// syncPool runs aggregate jobs inline so tests see the recomputed
// columns without waiting on workers.
type syncPool struct {
	store *store.Store
}

func (p *syncPool) Push(job model.Job) {
	switch job.Type {
	case model.JobTypeBookAggregate:
		p.store.RecomputeBookAggregates(job.BookID)
	case model.JobTypeUserAggregate:
		p.store.RecomputeUserReviewCount(job.UserID)
	}
}

func (p *syncPool) GetQueue() chan model.Job {
	return nil
}

const testJWTSecret = "test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	return newTestServerWithCollector(t, metrics.NewCollector())
}

func newTestServerWithCollector(t *testing.T, collector *metrics.Collector) (*httptest.Server, *store.Store) {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "api_test.db")
	db, err := sql.Open("sqlite", filename)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../store/db/migration/LATEST_SCHEMA.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	s := store.NewStore(db)
	router := mux.NewRouter()
	Server(router, s, &syncPool{store: s}, collector, testJWTSecret)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, s
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type sessionPayload struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func signUpUser(t *testing.T, serverURL, username string) *sessionPayload {
	t.Helper()
	resp := doJSON(t, http.MethodPost, serverURL+"/api/v1/signup", "", &model.UserSignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Nickname: username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payload := decode[sessionPayload](t, resp)
	require.NotEmpty(t, payload.Token)
	return &payload
}

func createTestBook(t *testing.T, s *store.Store, title string, genres ...string) *model.Book {
	t.Helper()
	book, err := s.CreateBook(&model.Book{
		Title:  title,
		Author: "Test Author",
		Genres: genres,
	})
	require.NoError(t, err)
	return book
}

func TestSignUpAndSignIn(t *testing.T) {
	server, _ := newTestServer(t)

	// The first account becomes the host.
	host := signUpUser(t, server.URL, "first")
	assert.Equal(t, model.RoleHost, host.User.Role)
	assert.Empty(t, host.User.PasswordHash)

	second := signUpUser(t, server.URL, "second")
	assert.Equal(t, model.RoleUser, second.User.Role)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/signin", "", &model.UserSigninRequest{
		Email:    "first@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/signin", "", &model.UserSigninRequest{
		Email:    "first@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown email responds like a wrong password.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/signin", "", &model.UserSigninRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe(t *testing.T) {
	server, _ := newTestServer(t)
	session := signUpUser(t, server.URL, "reader")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/me", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decode[model.User](t, resp)
	assert.Equal(t, "reader", user.Username)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublicBookBrowsing(t *testing.T) {
	server, s := newTestServer(t)
	createTestBook(t, s, "The Go Programming Language", "Programming")
	createTestBook(t, s, "A Tale of Two Cities", "Fiction")

	// No token needed for catalogue reads.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/books", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[model.BookList](t, resp)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Books, 2)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/books?q=go+programming", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[model.BookList](t, resp)
	assert.Equal(t, 1, list.Total)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/books?genre=Fiction", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[model.BookList](t, resp)
	require.Len(t, list.Books, 1)
	assert.Equal(t, "A Tale of Two Cities", list.Books[0].Title)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/genres", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	genres := decode[[]string](t, resp)
	assert.Equal(t, []string{"Fiction", "Programming"}, genres)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/books/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookPagination(t *testing.T) {
	server, s := newTestServer(t)
	for i := 0; i < 25; i++ {
		createTestBook(t, s, fmt.Sprintf("Book %02d", i))
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/books?skip=20&take=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[model.BookList](t, resp)
	assert.Equal(t, 25, list.Total)
	assert.Len(t, list.Books, 5)
}

func TestBookMutationsRequireAdmin(t *testing.T) {
	server, _ := newTestServer(t)
	admin := signUpUser(t, server.URL, "admin")
	reader := signUpUser(t, server.URL, "reader")

	create := &model.BookCreateRequest{Title: "New Book", Author: "Somebody", Genres: []string{"Essays"}}

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/books", reader.Token, create)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/books", admin.Token, create)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	book := decode[model.Book](t, resp)
	assert.Equal(t, []string{"Essays"}, book.Genres)

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/books", admin.Token, &model.BookCreateRequest{Author: "No Title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	newTitle := "Renamed Book"
	resp = doJSON(t, http.MethodPatch, server.URL+fmt.Sprintf("/api/v1/books/%d", book.ID), admin.Token, &model.BookUpdateRequest{Title: &newTitle})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[model.Book](t, resp)
	assert.Equal(t, "Renamed Book", updated.Title)

	resp = doJSON(t, http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/books/%d", book.ID), reader.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/books/%d", book.ID), admin.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestReviewLifecycle(t *testing.T) {
	server, s := newTestServer(t)
	first := signUpUser(t, server.URL, "first")
	second := signUpUser(t, server.URL, "second")
	book := createTestBook(t, s, "Reviewed Book")

	reviewsPath := server.URL + fmt.Sprintf("/api/v1/books/%d/reviews", book.ID)

	// Invalid forms are rejected with the exact field messages.
	resp := doJSON(t, http.MethodPost, reviewsPath, second.Token, &model.ReviewCreateRequest{Rating: 0, Content: "Long enough review content."})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[map[string]string](t, resp)
	assert.Equal(t, "Please select a rating", errBody["error_message"])

	resp = doJSON(t, http.MethodPost, reviewsPath, second.Token, &model.ReviewCreateRequest{Rating: 4, Content: "short"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody = decode[map[string]string](t, resp)
	assert.Equal(t, "Review must be at least 10 characters long", errBody["error_message"])

	resp = doJSON(t, http.MethodPost, reviewsPath, second.Token, &model.ReviewCreateRequest{Rating: 5, Content: "An excellent read, highly recommended."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decode[model.Review](t, resp)
	require.NotNil(t, review.User)
	assert.Equal(t, "second", review.User.Username)

	// One review per user per book.
	resp = doJSON(t, http.MethodPost, reviewsPath, second.Token, &model.ReviewCreateRequest{Rating: 3, Content: "Trying to review this twice."})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, reviewsPath, first.Token, &model.ReviewCreateRequest{Rating: 2, Content: "Did not enjoy this one at all."})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The sync pool recomputed the denormalized columns.
	resp = doJSON(t, http.MethodGet, server.URL+fmt.Sprintf("/api/v1/books/%d", book.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	refreshed := decode[model.Book](t, resp)
	assert.Equal(t, 3.5, refreshed.AverageRating)
	assert.Equal(t, 2, refreshed.TotalReviews)

	// Only the author edits a review.
	newRating := 3
	resp = doJSON(t, http.MethodPatch, server.URL+fmt.Sprintf("/api/v1/reviews/%d", review.ID), first.Token, &model.ReviewUpdateRequest{Rating: &newRating})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodPatch, server.URL+fmt.Sprintf("/api/v1/reviews/%d", review.ID), second.Token, &model.ReviewUpdateRequest{Rating: &newRating})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[model.Review](t, resp)
	assert.Equal(t, 3, updated.Rating)

	resp = doJSON(t, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[model.ReviewList](t, resp)
	assert.Equal(t, 2, list.Total)

	resp = doJSON(t, http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/reviews/%d", review.ID), second.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestFavorites(t *testing.T) {
	server, s := newTestServer(t)
	session := signUpUser(t, server.URL, "reader")
	book := createTestBook(t, s, "Favorite Book")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, server.URL+fmt.Sprintf("/api/v1/favorites/%d", book.ID), session.Token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/favorites", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	favorites := decode[[]*model.Favorite](t, resp)
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].Book)
	assert.Equal(t, "Favorite Book", favorites[0].Book.Title)

	resp = doJSON(t, http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/favorites/%d", book.ID), session.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, server.URL+fmt.Sprintf("/api/v1/favorites/%d", book.ID), session.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReadingList(t *testing.T) {
	server, s := newTestServer(t)
	session := signUpUser(t, server.URL, "reader")
	book := createTestBook(t, s, "Current Book")

	readingPath := server.URL + fmt.Sprintf("/api/v1/reading/%d", book.ID)

	resp := doJSON(t, http.MethodPut, readingPath, session.Token, &model.ReadingUpdateRequest{State: "NOT_A_STATE"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, readingPath, session.Token, &model.ReadingUpdateRequest{State: model.ReadingWant})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, readingPath, session.Token, &model.ReadingUpdateRequest{State: model.ReadingFinished})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[model.ReadingStatus](t, resp)
	assert.Equal(t, model.ReadingFinished, status.State)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/reading?state=FINISHED", session.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	statuses := decode[[]*model.ReadingStatus](t, resp)
	assert.Len(t, statuses, 1)

	resp = doJSON(t, http.MethodDelete, readingPath, session.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAdminConsole(t *testing.T) {
	server, s := newTestServer(t)
	admin := signUpUser(t, server.URL, "admin")
	reader := signUpUser(t, server.URL, "reader")
	createTestBook(t, s, "Some Book")

	// Non-admin accounts are rejected at the admin prefix.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/users", reader.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[UserListResponse](t, resp)
	assert.Equal(t, 2, users.Total)
	for _, u := range users.Users {
		assert.Empty(t, u.PasswordHash)
	}

	// Archive the reader account.
	archived := model.Archived
	resp = doJSON(t, http.MethodPatch, server.URL+fmt.Sprintf("/api/v1/admin/users/%d", reader.User.ID), admin.Token, &model.AdminUserUpdateRequest{RowStatus: &archived})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Archived users can no longer authenticate.
	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/me", reader.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The host account is not archivable.
	resp = doJSON(t, http.MethodPatch, server.URL+fmt.Sprintf("/api/v1/admin/users/%d", admin.User.ID), admin.Token, &model.AdminUserUpdateRequest{RowStatus: &archived})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[StatsResponse](t, resp)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ArchivedUsers)
	assert.Equal(t, 1, stats.TotalBooks)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/metrics", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot := decode[[]metrics.Metric](t, resp)
	// The logging middleware observed at least the request duration.
	require.NotEmpty(t, snapshot)
}

func TestAdminMetricsWithCollectorDisabled(t *testing.T) {
	server, _ := newTestServerWithCollector(t, nil)
	admin := signUpUser(t, server.URL, "admin")

	resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/metrics", admin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snapshot := decode[[]metrics.Metric](t, resp)
	assert.Empty(t, snapshot)
}

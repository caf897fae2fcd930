package request

import (
	"net/http/httptest"
	"testing"

	"github.com/deepeshsaheb-tal/bookcritic/config"
)

func init() {
	config.GetDefaultOptions()
}

func TestQueryIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/books?skip=40&take=abc", nil)
	if got := QueryIntParam(r, "skip", 0); got != 40 {
		t.Errorf("Expected 40, got %d", got)
	}
	if got := QueryIntParam(r, "take", 20); got != 20 {
		t.Errorf("Expected default 20 for malformed value, got %d", got)
	}
	if got := QueryIntParam(r, "missing", 7); got != 7 {
		t.Errorf("Expected default 7, got %d", got)
	}
}

func TestPaginationClampsTake(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/books?skip=10&take=100000", nil)
	skip, take := Pagination(r)
	if skip != 10 {
		t.Errorf("Expected skip 10, got %d", skip)
	}
	if take != config.Opts.MaxPageSize {
		t.Errorf("Expected take clamped to %d, got %d", config.Opts.MaxPageSize, take)
	}

	r = httptest.NewRequest("GET", "/api/v1/books", nil)
	skip, take = Pagination(r)
	if skip != 0 || take != config.Opts.PageSize {
		t.Errorf("Expected defaults, got skip=%d take=%d", skip, take)
	}
}

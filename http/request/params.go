package request

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/deepeshsaheb-tal/bookcritic/config"
)

// RouteIntParam returns an URL route parameter as int.
func RouteIntParam(r *http.Request, param string) int {
	vars := mux.Vars(r)
	value, err := strconv.Atoi(vars[param])
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// RouteInt32Param returns an URL route parameter as int32.
func RouteInt32Param(r *http.Request, param string) int32 {
	return int32(RouteIntParam(r, param))
}

// QueryStringParam returns a query string parameter, or the default value if absent.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue
	}
	return value
}

// QueryIntParam returns a query string parameter as int, or the default value
// if absent or malformed.
func QueryIntParam(r *http.Request, param string, defaultValue int) int {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}

// Pagination reads the conventional skip and take query parameters,
// clamping take to the configured maximum page size.
func Pagination(r *http.Request) (skip, take int) {
	skip = QueryIntParam(r, "skip", 0)
	take = QueryIntParam(r, "take", config.Opts.PageSize)
	if take <= 0 {
		take = config.Opts.PageSize
	}
	if take > config.Opts.MaxPageSize {
		take = config.Opts.MaxPageSize
	}
	return skip, take
}

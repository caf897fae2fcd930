package v1

import (
	"net/http"

	"github.com/deepeshsaheb-tal/bookcritic/util"
)

var authenticationAllowlist = map[string]bool{
	"/api/v1/signup": true,
	"/api/v1/signin": true,
}

// Read access to the catalogue is public, browsing needs no account.
var publicReadPrefixes = []string{
	"/api/v1/books",
	"/api/v1/genres",
}

// isUnauthorizeAllowed returns whether the request is exempted from authentication.
func isUnauthorizeAllowed(r *http.Request) bool {
	if authenticationAllowlist[r.URL.Path] {
		return true
	}
	if r.Method == http.MethodGet && util.HasPrefixes(r.URL.Path, publicReadPrefixes...) {
		return true
	}
	return false
}

var allowedPathPrefixOnlyForAdmin = []string{
	"/api/v1/admin",
}

// isOnlyForAdminAllowedPath returns true if the path is allowed to be called only by admin.
func isOnlyForAdminAllowedPath(path string) bool {
	return util.HasPrefixes(path, allowedPathPrefixOnlyForAdmin...)
}

package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// bearerToken extracts the presented token from the Authorization header,
// falling back to the token query parameter. An empty result means no token.
func bearerToken(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName)); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, common.BearerScheme) {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(common.TokenQueryParam))
}

package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on authenticated requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// TokenQueryParam is the fallback query parameter for the token.
	TokenQueryParam = "token"
)

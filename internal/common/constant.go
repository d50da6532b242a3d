package common

// Contract points shared with the server. Both sides must agree on these;
// changing one without the other breaks authentication.
const (
	// AuthHeaderName is the HTTP header carrying the bearer token.
	AuthHeaderName = "Authorization"

	// AuthScheme is the credential scheme used in AuthHeaderName.
	AuthScheme = "Bearer"

	// TokenQueryParam is the query parameter the OAuth flow delivers the
	// issued token in when redirecting back to the client.
	TokenQueryParam = "token"
)

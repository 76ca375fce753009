package auth

// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
// The refresh token never travels anywhere else in the terminal design;
// the access token stays in the response body and client memory.
const RefreshCookieName = "refresh_token"

// LegacyAccessCookieName is the cookie the pre-rewrite clients stored the
// access token in. The auth gate still accepts it during migration.
const LegacyAccessCookieName = "authenticator"

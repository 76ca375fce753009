package middleware

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"printbridge/internal/auth"
	apperrors "printbridge/internal/errors"
	"printbridge/internal/service"
)

// HeaderAccessToken is the response header carrying a silently refreshed
// access token so the client can replace its stored copy.
const HeaderAccessToken = "X-Access-Token"

const identityKey = "auth_identity"

// Identity is the resolved caller attached to the request context by the
// auth gate. There is no process-wide identity cache; each request carries
// its own.
type Identity struct {
	ID    uint
	Email string
	Role  string
}

// CurrentIdentity returns the identity set by the auth gate.
func CurrentIdentity(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok
}

func setIdentity(c echo.Context, id *Identity) {
	c.Set(identityKey, id)
}

// Authenticate returns the auth gate middleware. The access token is
// looked up in the Authorization header, the token query parameter and the
// legacy access cookie, first match wins. A verified token authorizes the
// request. An expired token, or no token at all, triggers a silent
// refresh from the refresh cookie: the refresh path re-resolves the user,
// rejects disabled accounts, mints a fresh access token and exposes it in
// the X-Access-Token response header. A tampered token never refreshes.
// On any unrecovered failure the downstream handler is not invoked.
func Authenticate(tokens *auth.TokenService, authSvc service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContinueOnIgnoredError: true,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ," +
			"query:token," +
			"cookie:" + auth.LegacyAccessCookieName,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return tokens.VerifyAccess(raw)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get("user").(*auth.AccessClaims); ok {
				setIdentity(c, &Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			expired := errors.Is(err, auth.ErrTokenExpired)
			if !expired && hasAccessCredential(c) {
				// a present but unverifiable token is tampering, not expiry
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "invalid token",
					Code:  "INVALID_TOKEN",
				})
			}
			return silentRefresh(c, authSvc)
		},
	})
}

// silentRefresh recovers an expired or missing access token from the
// refresh cookie. Returning nil lets the middleware continue to the
// downstream handler as authenticated.
func silentRefresh(c echo.Context, authSvc service.AuthService) error {
	cookie, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "no valid token provided",
			Code:  "NO_TOKEN",
		})
	}

	accessToken, user, err := authSvc.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(HeaderAccessToken, accessToken)
	setIdentity(c, &Identity{ID: user.ID, Email: user.Email, Role: user.Role})
	return nil
}

// hasAccessCredential reports whether the request presented an access
// token in any of the gate's lookup locations.
func hasAccessCredential(c echo.Context) bool {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ") {
		return true
	}
	if c.QueryParam("token") != "" {
		return true
	}
	if cookie, err := c.Cookie(auth.LegacyAccessCookieName); err == nil && cookie.Value != "" {
		return true
	}
	return false
}

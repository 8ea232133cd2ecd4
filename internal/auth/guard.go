package auth

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	apperrors "techcorp/internal/errors"
)

// DenyReason is the machine-readable outcome of a failed guard check. The
// web layer translates it into a redirect or a 403 body.
type DenyReason string

// Deny reasons.
const (
	DenyUnauthorized         DenyReason = "unauthorized"
	DenyAdminRequired        DenyReason = "admin_required"
	DenyRegistrationRequired DenyReason = "registration_required"
)

const identityContextKey = "identity"

// Predicate decides whether an identity may pass a guard, and names the
// reason reported when it may not.
type Predicate struct {
	Reason DenyReason
	allows func(ident *Identity) bool
}

// IsAuthenticated passes any non-anonymous identity.
func IsAuthenticated() Predicate {
	return Predicate{
		Reason: DenyUnauthorized,
		allows: func(ident *Identity) bool {
			return ident != nil
		},
	}
}

// HasRole passes identities whose role satisfies the required one (admin
// satisfies everything).
func HasRole(required Role) Predicate {
	reason := DenyRegistrationRequired
	if required == RoleAdmin {
		reason = DenyAdminRequired
	}
	return Predicate{
		Reason: reason,
		allows: func(ident *Identity) bool {
			if ident == nil {
				return RoleAnonymous.Satisfies(required)
			}
			return ident.Role.Satisfies(required)
		},
	}
}

// Guard resolves the session cookie into an identity and enforces role
// predicates on routes. Route handlers read the identity from the request
// context; they never touch the credential or session stores themselves.
type Guard struct {
	sessions   *SessionManager
	cookieName string
	loginPath  string
}

// NewGuard creates a guard over the session manager. cookieName is the
// session cookie; denied page requests are redirected to loginPath.
func NewGuard(sessions *SessionManager, cookieName string) *Guard {
	return &Guard{
		sessions:   sessions,
		cookieName: cookieName,
		loginPath:  "/login",
	}
}

// WithIdentity resolves the session cookie (if any) and attaches the
// resulting identity to the request context. Requests without a resolvable
// session proceed as anonymous. A session store outage fails the request.
func (g *Guard) WithIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(g.cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ident, err := g.sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				c.Logger().Errorf("resolve session: %v", err)
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if ident != nil {
				c.Set(identityContextKey, ident)
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached to the request, or nil for
// anonymous requests.
func CurrentIdentity(c echo.Context) *Identity {
	ident, _ := c.Get(identityContextKey).(*Identity)
	return ident
}

// RequirePage enforces the predicate on a browser-facing route, redirecting
// denied requests to the login page with the reason as a flash code.
func (g *Guard) RequirePage(p Predicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p.allows(CurrentIdentity(c)) {
				return next(c)
			}
			target := g.loginPath + "?error=" + url.QueryEscape(string(p.Reason))
			return c.Redirect(http.StatusFound, target)
		}
	}
}

// RequireAPI enforces the predicate on an API-facing route, answering denied
// requests with a 403 carrying the reason code.
func (g *Guard) RequireAPI(p Predicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p.allows(CurrentIdentity(c)) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: ReasonMessage(p.Reason),
				Code:  string(p.Reason),
			})
		}
	}
}

// ReasonMessage translates a deny reason into the human-readable message the
// presentation layer shows.
func ReasonMessage(reason DenyReason) string {
	switch reason {
	case DenyAdminRequired:
		return "Admin access required."
	case DenyRegistrationRequired:
		return "You must be a registered user to access that page."
	default:
		return "You must be logged in to access that page."
	}
}

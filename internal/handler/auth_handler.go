package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"techcorp/internal/auth"
	apperrors "techcorp/internal/errors"
	"techcorp/internal/service"
)

// AuthHandler handles login, registration, and logout. These are
// browser-facing routes: failures redirect back with a flash code rather
// than rendering an error body.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
	}
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
}

// LoginPage translates the flash code carried on the redirect into the
// message the login view shows.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	var errorMessage string
	switch c.QueryParam("error") {
	case "unauthorized":
		errorMessage = auth.ReasonMessage(auth.DenyUnauthorized)
	case "admin_required":
		errorMessage = auth.ReasonMessage(auth.DenyAdminRequired)
	case "registration_required":
		errorMessage = auth.ReasonMessage(auth.DenyRegistrationRequired)
	case "invalid":
		errorMessage = "Invalid username or password."
	case "server_error":
		errorMessage = "Something went wrong. Please try again later."
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Login - TechCorp Solutions",
		"error":   errorMessage,
		"success": c.QueryParam("success"),
	})
}

// Login verifies the submitted credentials and opens a session. Both unknown
// usernames and wrong passwords land on the same redirect.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/login?error=invalid")
	}

	session, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			return c.Redirect(http.StatusFound, "/login?error=invalid")
		}
		c.Logger().Errorf("login: %v", err)
		return c.Redirect(http.StatusFound, "/login?error=server_error")
	}

	c.SetCookie(h.sessionCookie(session.ID, session.ExpiresAt))
	return c.Redirect(http.StatusFound, "/")
}

// RegisterPage echoes the registration flash code.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"title": "Register - TechCorp Solutions",
		"error": c.QueryParam("error"),
	})
}

// Register creates a new account from the registration form. Duplicate
// username/email are reported verbatim so the user can pick another.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return registerRedirect(c, "All fields are required")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return registerRedirect(c, "All fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return registerRedirect(c, "Passwords do not match")
	}

	_, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch err {
		case apperrors.ErrDuplicateUsername, apperrors.ErrDuplicateEmail:
			return registerRedirect(c, err.Error())
		}
		c.Logger().Errorf("register: %v", err)
		return registerRedirect(c, "Registration failed")
	}

	return c.Redirect(http.StatusFound, "/login?success="+url.QueryEscape("Registration successful"))
}

// Logout destroys the current session and clears the cookie. Safe to call
// without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Errorf("logout: %v", err)
		}
	}

	c.SetCookie(h.clearedCookie())
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) sessionCookie(sessionID string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func registerRedirect(c echo.Context, message string) error {
	return c.Redirect(http.StatusFound, "/register?error="+url.QueryEscape(message))
}

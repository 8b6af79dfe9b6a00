// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_portal/internal/feature/auth/domain/entity"
	"auth_portal/internal/feature/auth/usecase"
)

const (
	// TokenCookie is the cookie carrying the signed session token.
	TokenCookie = "auth_token"

	// ContextSession is the Gin context key holding the decoded session.
	ContextSession = "authSession"
)

// AuthUsecase defines the user service operations the handlers rely on.
// Following Go convention, the interface is defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register validates the form and creates a new user.
	Register(ctx context.Context, username, password, confirm string) (*entity.User, error)
	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
}

// SessionManager issues and reads signed session tokens.
type SessionManager interface {
	Start(user *entity.User) (string, error)
	Current(token string) (*entity.Session, bool)
}

// AuthHandler serves the registration, login, welcome and logout pages.
type AuthHandler struct {
	auth          AuthUsecase
	sessions      SessionManager
	cookieMaxAge  int
	secureCookies bool
}

// NewAuthHandler creates a new instance of AuthHandler.
// cookieMaxAge is the session cookie lifetime in seconds and should match
// the token TTL; secureCookies restricts cookies to HTTPS.
func NewAuthHandler(auth AuthUsecase, sessions SessionManager, cookieMaxAge int, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessions:      sessions,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

// currentSession decodes the caller's session from the token cookie.
func (h *AuthHandler) currentSession(c *gin.Context) (*entity.Session, bool) {
	token, err := c.Cookie(TokenCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Current(token)
}

// render draws a page with any queued flash messages.
func (h *AuthHandler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["username"]; !ok {
		data["username"] = ""
	}
	data["flashes"] = takeFlashes(c)
	c.HTML(status, name, data)
}

// Index routes the caller to the welcome page when logged in, otherwise
// to the login page.
func (h *AuthHandler) Index(c *gin.Context) {
	if _, ok := h.currentSession(c); ok {
		c.Redirect(http.StatusFound, "/welcome")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowRegister displays the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

// Register processes the registration form.
// Validation problems and duplicate usernames redisplay the form with a
// specific message; store failures show a generic message and log the
// cause; success redirects to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	user, err := h.auth.Register(c.Request.Context(), username, password, confirm)

	var vErr *usecase.ValidationError
	switch {
	case err == nil:
		slog.Info("user registered", "username", user.Username, "remote_addr", c.ClientIP())
		addFlash(c, "success", "Registration successful! You can now log in.")
		c.Redirect(http.StatusFound, "/login")

	case errors.As(err, &vErr):
		slog.Warn("registration validation failed", "reason", vErr.Message, "remote_addr", c.ClientIP())
		addFlash(c, "error", vErr.Message)
		h.render(c, http.StatusOK, "register.html", gin.H{"username": username})

	case errors.Is(err, usecase.ErrDuplicateUsername):
		slog.Warn("registration rejected, username taken", "username", username, "remote_addr", c.ClientIP())
		addFlash(c, "error", "Username already exists! Please choose a different one.")
		h.render(c, http.StatusOK, "register.html", gin.H{"username": username})

	default:
		slog.Error("registration failed", "error", err, "remote_addr", c.ClientIP())
		addFlash(c, "error", "Registration failed. Please try again.")
		h.render(c, http.StatusOK, "register.html", gin.H{"username": username})
	}
}

// ShowLogin displays the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

// Login processes the login form. Every failure shows the same generic
// message so usernames cannot be probed; success starts a session and
// redirects to the welcome page.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "remote_addr", c.ClientIP())
		addFlash(c, "error", "Invalid username or password!")
		h.render(c, http.StatusOK, "login.html", gin.H{"username": username})
		return
	}

	token, err := h.sessions.Start(user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "username", user.Username)
		addFlash(c, "error", "An internal error occurred. Please try again.")
		h.render(c, http.StatusInternalServerError, "login.html", gin.H{"username": username})
		return
	}

	c.SetCookie(TokenCookie, token, h.cookieMaxAge, "/", "", h.secureCookies, true)
	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	addFlash(c, "success", fmt.Sprintf("Welcome back, %s!", user.Username))
	c.Redirect(http.StatusFound, "/welcome")
}

// Welcome renders the protected page for the authenticated caller.
// LoginRequired has already stored the session in the context.
func (h *AuthHandler) Welcome(c *gin.Context) {
	sess := c.MustGet(ContextSession).(*entity.Session)
	h.render(c, http.StatusOK, "welcome.html", gin.H{"username": sess.Username})
}

// Logout ends the session by deleting the token cookie and redirects to
// the login page. Logging out without a session is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := h.currentSession(c); ok {
		slog.Info("user logged out", "username", sess.Username, "remote_addr", c.ClientIP())
	}
	c.SetCookie(TokenCookie, "", -1, "/", "", h.secureCookies, true)
	addFlash(c, "info", "You have been logged out successfully.")
	c.Redirect(http.StatusFound, "/login")
}

// LoginRequired returns a middleware that restricts a route to
// authenticated callers. Anonymous callers are sent to the login page
// with a notice.
func (h *AuthHandler) LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.currentSession(c)
		if !ok {
			addFlash(c, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextSession, sess)
		c.Next()
	}
}

// NotFound renders the login page with a 404 status for unknown routes.
func (h *AuthHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "login.html", nil)
}

// Recovered handles panics surfaced by the recovery middleware. Store
// operations run in per-call transactions that GORM has already rolled
// back by the time a panic propagates here.
func (h *AuthHandler) Recovered(c *gin.Context, err any) {
	slog.Error("internal error", "error", err, "path", c.Request.URL.Path)
	addFlash(c, "error", "An internal error occurred. Please try again.")
	h.render(c, http.StatusInternalServerError, "login.html", nil)
	c.Abort()
}
